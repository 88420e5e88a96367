package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Izazzubayer/Pathly/internal/database"
	"github.com/Izazzubayer/Pathly/internal/directions"
	"github.com/Izazzubayer/Pathly/internal/logger"
	"github.com/Izazzubayer/Pathly/internal/planner"
	"github.com/Izazzubayer/Pathly/internal/resolver"
)

// Handler provides common handler utilities and dependencies
type Handler struct {
	DB        database.DataStore
	Optimizer *planner.Optimizer
	Enricher  *directions.Enricher // nil when directions are disabled
	Resolver  resolver.Resolver    // nil when place resolution is disabled
	Log       *logger.Logger

	locks *itineraryLocks
}

// New creates a Handler. enricher and res may be nil.
func New(db database.DataStore, opt *planner.Optimizer, enricher *directions.Enricher, res resolver.Resolver, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		DB:        db,
		Optimizer: opt,
		Enricher:  enricher,
		Resolver:  res,
		Log:       log.Named("http"),
		locks:     newItineraryLocks(),
	}
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response
func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	h.writeJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func (h *Handler) handleNotFound(w http.ResponseWriter, message string) {
	h.writeError(w, http.StatusNotFound, "NOT_FOUND", message, nil)
}

func (h *Handler) handleValidationError(w http.ResponseWriter, message string) {
	h.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", message, nil)
}

// handlePlanningError maps planner errors to 422, anything else to 500
func (h *Handler) handlePlanningError(w http.ResponseWriter, err error) {
	var invalid *planner.InvalidInputError
	if errors.As(err, &invalid) {
		h.writeError(w, http.StatusUnprocessableEntity, "PLANNING_FAILED", invalid.Reason, nil)
		return
	}
	h.handleInternalError(w, err)
}

func (h *Handler) handleInternalError(w http.ResponseWriter, err error) {
	h.Log.Error("internal error", "error", err)
	h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An error occurred. Please try again.", nil)
}

func (h *Handler) checkNotFound(err error) bool {
	return errors.Is(err, database.ErrNotFound)
}

// decodeJSON decodes the request body into v, writing a validation error on failure
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.Log.Debug("invalid json", "method", r.Method, "path", r.URL.Path, "error", err)
		h.handleValidationError(w, "Invalid request body")
		return false
	}
	return true
}

// dayParam parses the {day} path value
func (h *Handler) dayParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	day, err := strconv.Atoi(r.PathValue("day"))
	if err != nil || day < 1 {
		h.handleValidationError(w, "Invalid day number")
		return 0, false
	}
	return day, true
}

// queryInt parses an optional integer query parameter
func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

// HandleHealthCheck handles GET /api/v1/health
func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(r.Context()); err != nil {
		h.Log.Error("health check failed", "error", err)
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "database": "error"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "database": "ok"})
}

package handlers

import (
	"net/http"

	"github.com/Izazzubayer/Pathly/internal/directions"
	"github.com/Izazzubayer/Pathly/internal/geo"
	"github.com/Izazzubayer/Pathly/internal/models"
	"github.com/Izazzubayer/Pathly/internal/planner"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// CreateItineraryRequest is a PlanRequest plus request-level switches
type CreateItineraryRequest struct {
	models.PlanRequest
	Directions bool `json:"directions"`
}

// ItineraryResponse is the body returned for a single itinerary
type ItineraryResponse struct {
	Itinerary  *models.Itinerary `json:"itinerary"`
	Warnings   []string          `json:"warnings"`
	Bounds     *geo.Bounds       `json:"bounds,omitempty"`
	Directions *directions.Stats `json:"directions,omitempty"`
}

// ListItinerariesResponse is the body of GET /api/v1/itineraries
type ListItinerariesResponse struct {
	Itineraries []models.ItinerarySummary `json:"itineraries"`
	Total       int                       `json:"total"`
	Limit       int                       `json:"limit"`
	Offset      int                       `json:"offset"`
}

func newItineraryResponse(stored *models.StoredItinerary) ItineraryResponse {
	warnings := stored.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return ItineraryResponse{
		Itinerary: &stored.Itinerary,
		Warnings:  warnings,
		Bounds:    geo.ItineraryBounds(&stored.Itinerary, planner.StartingPoint(&stored.Request)),
	}
}

// HandleCreateItinerary handles POST /api/v1/itineraries
func (h *Handler) HandleCreateItinerary(w http.ResponseWriter, r *http.Request) {
	var req CreateItineraryRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	h.Log.Info("create itinerary",
		"destination", req.TripDetails.Destination,
		"days", req.TripDetails.Duration,
		"anchors", len(req.Anchors),
		"optional", len(req.OptionalPlaces),
		"directions", req.Directions)

	result, err := h.Optimizer.Optimize(r.Context(), &req.PlanRequest)
	if err != nil {
		h.handlePlanningError(w, err)
		return
	}

	warnings := result.Warnings
	var stats *directions.Stats
	if req.Directions {
		if h.Enricher == nil {
			warnings = append(warnings, "directions are disabled on this server; legs use straight-line estimates")
		} else {
			s, err := h.Enricher.EnrichItinerary(r.Context(), result.Itinerary)
			if err != nil {
				h.handleInternalError(w, err)
				return
			}
			stats = &s
		}
	}

	stored := &models.StoredItinerary{
		Itinerary: *result.Itinerary,
		Request:   req.PlanRequest,
		Warnings:  warnings,
	}
	if err := h.DB.Itineraries().Create(r.Context(), stored); err != nil {
		h.handleInternalError(w, err)
		return
	}

	h.Log.Info("itinerary created", "id", stored.Itinerary.ID, "score", stored.Itinerary.OptimizationScore, "warnings", len(warnings))

	resp := newItineraryResponse(stored)
	resp.Directions = stats
	h.writeJSON(w, http.StatusCreated, resp)
}

// HandleListItineraries handles GET /api/v1/itineraries
func (h *Handler) HandleListItineraries(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultListLimit)
	if err != nil || limit < 1 {
		h.handleValidationError(w, "Invalid limit")
		return
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	offset, err := queryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		h.handleValidationError(w, "Invalid offset")
		return
	}

	summaries, total, err := h.DB.Itineraries().List(r.Context(), limit, offset)
	if err != nil {
		h.handleInternalError(w, err)
		return
	}
	if summaries == nil {
		summaries = []models.ItinerarySummary{}
	}

	h.writeJSON(w, http.StatusOK, ListItinerariesResponse{
		Itineraries: summaries,
		Total:       total,
		Limit:       limit,
		Offset:      offset,
	})
}

// HandleGetItinerary handles GET /api/v1/itineraries/{id}
func (h *Handler) HandleGetItinerary(w http.ResponseWriter, r *http.Request) {
	stored, ok := h.loadItinerary(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, newItineraryResponse(stored))
}

// HandleDeleteItinerary handles DELETE /api/v1/itineraries/{id}
func (h *Handler) HandleDeleteItinerary(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	unlock := h.locks.lock(id)
	err := h.DB.Itineraries().Delete(r.Context(), id)
	unlock()

	if err != nil {
		if h.checkNotFound(err) {
			h.handleNotFound(w, "Itinerary not found")
			return
		}
		h.handleInternalError(w, err)
		return
	}

	h.locks.forget(id)
	h.Log.Info("itinerary deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// loadItinerary fetches the {id} itinerary, writing 404/500 on failure
func (h *Handler) loadItinerary(w http.ResponseWriter, r *http.Request) (*models.StoredItinerary, bool) {
	stored, err := h.DB.Itineraries().GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if h.checkNotFound(err) {
			h.handleNotFound(w, "Itinerary not found")
			return nil, false
		}
		h.handleInternalError(w, err)
		return nil, false
	}
	return stored, true
}

// mutate applies edit to the {id} itinerary under its write lock, persists
// the result and writes it back.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, op string, edit func(it *models.Itinerary, hotel models.Coordinates) error) {
	id := r.PathValue("id")
	unlock := h.locks.lock(id)
	defer unlock()

	stored, ok := h.loadItinerary(w, r)
	if !ok {
		return
	}

	if err := edit(&stored.Itinerary, planner.StartingPoint(&stored.Request)); err != nil {
		h.Log.Debug("edit rejected", "op", op, "id", id, "error", err)
		h.handlePlanningError(w, err)
		return
	}

	if err := h.DB.Itineraries().Update(r.Context(), stored); err != nil {
		if h.checkNotFound(err) {
			h.handleNotFound(w, "Itinerary not found")
			return
		}
		h.handleInternalError(w, err)
		return
	}

	h.Log.Info("itinerary edited", "op", op, "id", id, "score", stored.Itinerary.OptimizationScore)
	h.writeJSON(w, http.StatusOK, newItineraryResponse(stored))
}

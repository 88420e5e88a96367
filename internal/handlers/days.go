package handlers

import (
	"net/http"

	"github.com/Izazzubayer/Pathly/internal/models"
)

// ReorderRequest moves the stop at From to To within a day (0-based)
type ReorderRequest struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

// MoveRequest moves a stop to another day
type MoveRequest struct {
	PlaceID   string `json:"place_id"`
	TargetDay int    `json:"target_day"`
}

// HandleRegenerateDay handles POST /api/v1/itineraries/{id}/days/{day}/regenerate
func (h *Handler) HandleRegenerateDay(w http.ResponseWriter, r *http.Request) {
	day, ok := h.dayParam(w, r)
	if !ok {
		return
	}

	h.mutate(w, r, "regenerate", func(it *models.Itinerary, hotel models.Coordinates) error {
		return h.Optimizer.RegenerateDay(it, hotel, day)
	})
}

// HandleReorderPlace handles POST /api/v1/itineraries/{id}/days/{day}/reorder
func (h *Handler) HandleReorderPlace(w http.ResponseWriter, r *http.Request) {
	day, ok := h.dayParam(w, r)
	if !ok {
		return
	}

	var req ReorderRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.From == nil || req.To == nil {
		h.handleValidationError(w, "from and to are required")
		return
	}

	h.mutate(w, r, "reorder", func(it *models.Itinerary, hotel models.Coordinates) error {
		return h.Optimizer.ReorderPlace(it, hotel, day, *req.From, *req.To)
	})
}

// HandleMovePlace handles POST /api/v1/itineraries/{id}/days/{day}/move
func (h *Handler) HandleMovePlace(w http.ResponseWriter, r *http.Request) {
	day, ok := h.dayParam(w, r)
	if !ok {
		return
	}

	var req MoveRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.PlaceID == "" {
		h.handleValidationError(w, "place_id is required")
		return
	}
	if req.TargetDay < 1 {
		h.handleValidationError(w, "target_day must be at least 1")
		return
	}

	h.mutate(w, r, "move", func(it *models.Itinerary, hotel models.Coordinates) error {
		return h.Optimizer.MovePlace(it, hotel, day, req.PlaceID, req.TargetDay)
	})
}

// HandleRemovePlace handles DELETE /api/v1/itineraries/{id}/days/{day}/places/{placeID}
func (h *Handler) HandleRemovePlace(w http.ResponseWriter, r *http.Request) {
	day, ok := h.dayParam(w, r)
	if !ok {
		return
	}
	placeID := r.PathValue("placeID")

	h.mutate(w, r, "remove", func(it *models.Itinerary, hotel models.Coordinates) error {
		return h.Optimizer.RemovePlace(it, hotel, day, placeID)
	})
}

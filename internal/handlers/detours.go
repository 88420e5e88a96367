package handlers

import (
	"net/http"

	"github.com/samber/lo"

	"github.com/Izazzubayer/Pathly/internal/detour"
	"github.com/Izazzubayer/Pathly/internal/models"
	"github.com/Izazzubayer/Pathly/internal/planner"
)

// DetoursRequest scores candidates against an ad-hoc leg
type DetoursRequest struct {
	Candidates []models.Place    `json:"candidates"`
	From       *models.Place     `json:"from"`
	To         *models.Place     `json:"to"`
	Vibe       models.TravelVibe `json:"vibe"`
}

// DetoursResponse lists ranked detour scores for one leg
type DetoursResponse struct {
	From   models.Place   `json:"from"`
	To     models.Place   `json:"to"`
	Scores []detour.Score `json:"scores"`
}

// HandleLegDetours handles GET /api/v1/itineraries/{id}/days/{day}/detours?leg=N
func (h *Handler) HandleLegDetours(w http.ResponseWriter, r *http.Request) {
	dayNumber, ok := h.dayParam(w, r)
	if !ok {
		return
	}

	legIndex, err := queryInt(r, "leg", 0)
	if err != nil || legIndex < 0 {
		h.handleValidationError(w, "Invalid leg")
		return
	}

	stored, ok := h.loadItinerary(w, r)
	if !ok {
		return
	}

	day := stored.Itinerary.Day(dayNumber)
	if day == nil {
		h.handleNotFound(w, "Day not found")
		return
	}
	if legIndex+1 >= len(day.Places) {
		h.handleValidationError(w, "Leg is out of range for this day")
		return
	}

	scheduled := planner.ScheduledPlaceIDs(&stored.Itinerary)
	candidates := lo.Reject(stored.Request.OptionalPlaces, func(p models.Place, _ int) bool {
		return scheduled[p.ID]
	})

	leg := detour.Leg{From: day.Places[legIndex].Place, To: day.Places[legIndex+1].Place}
	scores := detour.RankLeg(candidates, leg, stored.Itinerary.UserContext.Vibe)

	h.Log.Debug("leg detours", "id", stored.Itinerary.ID, "day", dayNumber, "leg", legIndex, "candidates", len(candidates))
	h.writeJSON(w, http.StatusOK, DetoursResponse{From: leg.From, To: leg.To, Scores: nonNilScores(scores)})
}

// HandleScoreDetours handles POST /api/v1/detours
func (h *Handler) HandleScoreDetours(w http.ResponseWriter, r *http.Request) {
	var req DetoursRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.From == nil || req.To == nil {
		h.handleValidationError(w, "from and to are required")
		return
	}
	if req.Vibe == "" {
		req.Vibe = models.VibeBalanced
	}

	leg := detour.Leg{From: *req.From, To: *req.To}
	scores := detour.RankLeg(req.Candidates, leg, req.Vibe)

	h.writeJSON(w, http.StatusOK, DetoursResponse{From: leg.From, To: leg.To, Scores: nonNilScores(scores)})
}

func nonNilScores(scores []detour.Score) []detour.Score {
	if scores == nil {
		return []detour.Score{}
	}
	return scores
}

package handlers

import (
	"net/http"

	"github.com/Izazzubayer/Pathly/internal/resolver"
)

const maxResolveCandidates = 50

// ResolvePlacesRequest is the body of POST /api/v1/places/resolve
type ResolvePlacesRequest struct {
	Candidates []resolver.Candidate `json:"candidates"`
}

// ResolvePlacesResponse carries one resolution per candidate, in request order
type ResolvePlacesResponse struct {
	Results  []resolver.Resolution `json:"results"`
	Resolved int                   `json:"resolved"`
	Failed   int                   `json:"failed"`
}

// HandleResolvePlaces handles POST /api/v1/places/resolve
func (h *Handler) HandleResolvePlaces(w http.ResponseWriter, r *http.Request) {
	if h.Resolver == nil {
		h.writeError(w, http.StatusServiceUnavailable, "RESOLVE_FAILED", "Place resolution is not configured", nil)
		return
	}

	var req ResolvePlacesRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if len(req.Candidates) == 0 {
		h.handleValidationError(w, "At least one candidate is required")
		return
	}
	if len(req.Candidates) > maxResolveCandidates {
		h.handleValidationError(w, "Too many candidates")
		return
	}

	results, err := h.Resolver.ResolveAll(r.Context(), req.Candidates)
	if err != nil {
		h.handleInternalError(w, err)
		return
	}

	resp := ResolvePlacesResponse{Results: results}
	for _, res := range results {
		if res.Place != nil {
			resp.Resolved++
		} else {
			resp.Failed++
		}
	}

	if resp.Resolved == 0 {
		h.writeError(w, http.StatusUnprocessableEntity, "RESOLVE_FAILED", "No candidate could be resolved", resp)
		return
	}

	h.Log.Info("places resolved", "candidates", len(req.Candidates), "resolved", resp.Resolved, "failed", resp.Failed)
	h.writeJSON(w, http.StatusOK, resp)
}

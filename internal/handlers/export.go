package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/Izazzubayer/Pathly/internal/export"
	"github.com/Izazzubayer/Pathly/internal/planner"
)

// HandleExportItinerary handles GET /api/v1/itineraries/{id}/export?format=text|json|geojson
func (h *Handler) HandleExportItinerary(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.handleValidationError(w, err.Error())
		return
	}

	stored, ok := h.loadItinerary(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, &stored.Itinerary, planner.StartingPoint(&stored.Request)); err != nil {
		h.handleInternalError(w, err)
		return
	}

	filename := fmt.Sprintf("itinerary-%s.%s", stored.Itinerary.ID, format.Extension())
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

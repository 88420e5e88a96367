package export

import (
	"encoding/json"
	"io"

	"github.com/Izazzubayer/Pathly/internal/models"
)

// JSON writes the itinerary as indented JSON
func JSON(w io.Writer, it *models.Itinerary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(it)
}

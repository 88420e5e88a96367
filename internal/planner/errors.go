package planner

import (
	"fmt"

	"github.com/Izazzubayer/Pathly/internal/geo"
	"github.com/Izazzubayer/Pathly/internal/models"
)

// InvalidInputError is returned when a request cannot produce a complete itinerary
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

func invalidf(format string, args ...interface{}) error {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}

// UnresolvedLocationWarning flags a place whose coordinates look like an
// unresolved placeholder. Planning continues; its distances are unreliable.
type UnresolvedLocationWarning struct {
	PlaceID string
	Name    string
}

func (w UnresolvedLocationWarning) String() string {
	return fmt.Sprintf("place %q (%s) has no resolved location; distances involving it are unreliable", w.Name, w.PlaceID)
}

// CheckLocations returns a warning for every place with a degenerate location
func CheckLocations(places []models.Place) []UnresolvedLocationWarning {
	var warnings []UnresolvedLocationWarning
	for _, p := range places {
		if geo.IsDegenerate(p.Location) {
			warnings = append(warnings, UnresolvedLocationWarning{PlaceID: p.ID, Name: p.Name})
		}
	}
	return warnings
}

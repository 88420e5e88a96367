// Package resolver turns raw place mentions into resolved places using a
// Nominatim search backend.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/Izazzubayer/Pathly/internal/models"
)

// Source is where a raw place mention came from
type Source string

const (
	SourceInstagramReel Source = "instagram-reel"
	SourceInstagramPost Source = "instagram-post"
	SourceURL           Source = "url"
	SourceText          Source = "text"
)

// Candidate is an unresolved place mention
type Candidate struct {
	Name           string `json:"name"`
	Source         Source `json:"source"`
	City           string `json:"city,omitempty"`
	HasLocationTag bool   `json:"has_location_tag"`
}

// Query is the free-text search string for the candidate
func (c Candidate) Query() string {
	name := strings.TrimSpace(c.Name)
	if c.City == "" {
		return name
	}
	return name + ", " + strings.TrimSpace(c.City)
}

// Resolution is the outcome for one candidate. Exactly one of Place and Error is set.
type Resolution struct {
	Candidate Candidate     `json:"candidate"`
	Place     *models.Place `json:"place,omitempty"`
	Reason    string        `json:"reason,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// Resolver resolves place candidates
type Resolver interface {
	Resolve(ctx context.Context, c Candidate) (*models.Place, error)
	ResolveAll(ctx context.Context, candidates []Candidate) ([]Resolution, error)
}

// ErrResolveFailed is returned when a candidate cannot be resolved
type ErrResolveFailed struct {
	Name   string
	Reason string

	retryable bool
}

func (e *ErrResolveFailed) Error() string {
	return fmt.Sprintf("resolve failed for %q: %s", e.Name, e.Reason)
}

// Confidence grades a resolution
func Confidence(source Source, hasLocationTag, exactMatch bool) models.ConfidenceLevel {
	if hasLocationTag || exactMatch {
		return models.ConfidenceHigh
	}
	if source == SourceText || source == SourceInstagramPost {
		return models.ConfidenceMedium
	}
	return models.ConfidenceLow
}

// ConfidenceReason is a short human-readable explanation of Confidence
func ConfidenceReason(source Source, hasLocationTag, exactMatch bool) string {
	switch {
	case hasLocationTag:
		return "From location tag"
	case exactMatch:
		return "Exact match found"
	case source == SourceText:
		return "From text reference"
	case source == SourceInstagramPost || source == SourceInstagramReel:
		return "From Instagram content"
	default:
		return "Inferred from context"
	}
}

var amenityTypes = map[string]models.ActivityType{
	"restaurant":       models.ActivityRestaurant,
	"fast_food":        models.ActivityRestaurant,
	"food_court":       models.ActivityRestaurant,
	"cafe":             models.ActivityCafe,
	"ice_cream":        models.ActivityCafe,
	"bar":              models.ActivityBar,
	"pub":              models.ActivityBar,
	"biergarten":       models.ActivityBar,
	"nightclub":        models.ActivityClub,
	"place_of_worship": models.ActivityTemple,
	"monastery":        models.ActivityTemple,
	"marketplace":      models.ActivityMarket,
	"arts_centre":      models.ActivityMuseum,
}

var tourismTypes = map[string]models.ActivityType{
	"attraction": models.ActivityAttraction,
	"theme_park": models.ActivityAttraction,
	"zoo":        models.ActivityAttraction,
	"aquarium":   models.ActivityAttraction,
	"viewpoint":  models.ActivityViewpoint,
	"museum":     models.ActivityMuseum,
	"gallery":    models.ActivityMuseum,
}

var leisureTypes = map[string]models.ActivityType{
	"park":           models.ActivityNature,
	"garden":         models.ActivityNature,
	"nature_reserve": models.ActivityNature,
	"beach_resort":   models.ActivityBeach,
	"dance":          models.ActivityClub,
}

// ActivityFromOSM maps an OSM category and type to an activity type
func ActivityFromOSM(category, osmType string) models.ActivityType {
	switch category {
	case "amenity":
		if a, ok := amenityTypes[osmType]; ok {
			return a
		}
	case "tourism":
		if a, ok := tourismTypes[osmType]; ok {
			return a
		}
	case "leisure":
		if a, ok := leisureTypes[osmType]; ok {
			return a
		}
	case "natural":
		if osmType == "beach" {
			return models.ActivityBeach
		}
		return models.ActivityNature
	case "shop":
		return models.ActivityShopping
	case "historic":
		return models.ActivityAttraction
	case "building":
		switch osmType {
		case "temple", "church", "mosque", "shrine", "cathedral":
			return models.ActivityTemple
		}
	}
	return models.ActivityOther
}

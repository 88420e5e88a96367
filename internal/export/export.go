// Package export renders itineraries for sharing: plain text, JSON and GeoJSON.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/Izazzubayer/Pathly/internal/models"
)

// Format is an export rendering
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatGeoJSON Format = "geojson"
)

// ParseFormat accepts a format name, defaulting to text when empty
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatGeoJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// ContentType is the HTTP media type of a format
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatGeoJSON:
		return "application/geo+json"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension is the file extension used for downloads
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatGeoJSON:
		return "geojson"
	default:
		return "txt"
	}
}

// Write renders it in format f. hotel is only used by GeoJSON and may be zero.
func Write(w io.Writer, f Format, it *models.Itinerary, hotel models.Coordinates) error {
	switch f {
	case FormatJSON:
		return JSON(w, it)
	case FormatGeoJSON:
		return GeoJSON(w, it, hotel)
	default:
		return Text(w, it)
	}
}

package geo

import (
	"github.com/paulmach/orb"

	"github.com/Izazzubayer/Pathly/internal/models"
)

// Bounds is a lat/lng bounding box used to fit a map to a set of points
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Point converts coordinates to an orb point (lng, lat order)
func Point(c models.Coordinates) orb.Point {
	return orb.Point{c.Lng, c.Lat}
}

// LineString builds a straight-line orb geometry through the given points
func LineString(points ...models.Coordinates) orb.LineString {
	ls := make(orb.LineString, 0, len(points))
	for _, p := range points {
		ls = append(ls, Point(p))
	}
	return ls
}

// CalculateBounds returns the bounding box of points, or nil when empty
func CalculateBounds(points []models.Coordinates) *Bounds {
	if len(points) == 0 {
		return nil
	}

	mp := make(orb.MultiPoint, 0, len(points))
	for _, p := range points {
		mp = append(mp, Point(p))
	}
	b := mp.Bound()

	return &Bounds{
		North: b.Max.Lat(),
		South: b.Min.Lat(),
		East:  b.Max.Lon(),
		West:  b.Min.Lon(),
	}
}

// ItineraryBounds covers the hotel and every scheduled stop
func ItineraryBounds(it *models.Itinerary, hotel models.Coordinates) *Bounds {
	points := []models.Coordinates{}
	if !hotel.IsZero() {
		points = append(points, hotel)
	}
	for _, day := range it.Days {
		for _, p := range day.Places {
			points = append(points, p.Place.Location)
		}
	}
	return CalculateBounds(points)
}

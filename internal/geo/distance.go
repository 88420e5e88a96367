// Package geo holds the pure geographic primitives used by the planner.
package geo

import (
	"math"

	"github.com/Izazzubayer/Pathly/internal/models"
)

// EarthRadiusMeters is the mean Earth radius used by Distance
const EarthRadiusMeters = 6371000.0

// Travel speeds in km/h
var speedsKmh = map[models.TravelMode]float64{
	models.TravelWalking: 5,
	models.TravelDriving: 25,
	models.TravelTransit: 20,
}

// Typical visit length in minutes
var activityDurations = map[models.ActivityType]int{
	models.ActivityRestaurant: 60,
	models.ActivityCafe:       45,
	models.ActivityBar:        60,
	models.ActivityClub:       120,
	models.ActivityAttraction: 90,
	models.ActivityViewpoint:  30,
	models.ActivityBeach:      180,
	models.ActivityMarket:     60,
	models.ActivityTemple:     45,
	models.ActivityMuseum:     90,
	models.ActivityShopping:   90,
	models.ActivityNature:     120,
	models.ActivityOther:      60,
}

// Distance returns the great-circle distance between two points in meters
func Distance(p1, p2 models.Coordinates) float64 {
	dLat := toRad(p2.Lat - p1.Lat)
	dLng := toRad(p2.Lng - p1.Lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(p1.Lat))*math.Cos(toRad(p2.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// TravelTime estimates minutes to cover distanceMeters, rounded up.
// Unknown modes are treated as walking.
func TravelTime(distanceMeters float64, mode models.TravelMode) int {
	speed, ok := speedsKmh[mode]
	if !ok {
		speed = speedsKmh[models.TravelWalking]
	}
	return int(math.Ceil(distanceMeters * 60 / (speed * 1000)))
}

// ActivityDuration returns the expected visit length in minutes for an activity type
func ActivityDuration(t models.ActivityType) int {
	if d, ok := activityDurations[t]; ok {
		return d
	}
	return activityDurations[models.ActivityOther]
}

// IsDegenerate reports whether a location looks like an unresolved placeholder
func IsDegenerate(c models.Coordinates) bool {
	return c.IsZero() || math.IsNaN(c.Lat) || math.IsNaN(c.Lng) ||
		c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180
}

// PathDistance sums the leg distances along a sequence of points
func PathDistance(points []models.Coordinates) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}

package planner

import (
	"time"

	"github.com/Izazzubayer/Pathly/internal/models"
)

func place(id string, lat, lng float64, activity models.ActivityType) models.Place {
	return models.Place{
		ID:           id,
		Name:         id,
		Location:     models.Coordinates{Lat: lat, Lng: lng},
		ActivityType: activity,
		Confidence:   models.ConfidenceMedium,
	}
}

func anchor(id string, lat, lng float64, activity models.ActivityType, priority int) models.Anchor {
	return models.NewAnchor(place(id, lat, lng, activity), priority)
}

func lockedAnchor(id string, lat, lng float64, date time.Time) models.Anchor {
	a := anchor(id, lat, lng, models.ActivityAttraction, 0)
	a.TimeLock = &models.TimeLock{Date: date}
	return a
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, id(it))
	}
	return out
}

func placeIDs(places []models.Place) []string {
	return ids(places, func(p models.Place) string { return p.ID })
}

func stopIDs(places []models.ItineraryPlace) []string {
	return ids(places, func(ip models.ItineraryPlace) string { return ip.Place.ID })
}

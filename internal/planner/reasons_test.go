package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Izazzubayer/Pathly/internal/models"
)

func TestStopReason(t *testing.T) {
	assert.Equal(t, "First stop of the day", stopReason(1, 25))
	assert.Equal(t, "Added because it's 12 min from previous stop", stopReason(2, 12))
}

func TestTimeOfDay(t *testing.T) {
	tests := map[string]models.TimeSlotType{
		"06:00": models.SlotMorning,
		"11:59": models.SlotMorning,
		"12:00": models.SlotAfternoon,
		"16:59": models.SlotAfternoon,
		"17:00": models.SlotEvening,
		"21:00": models.SlotNight,
		"25:10": models.SlotNight,
		"05:30": models.SlotNight,
	}
	for clock, want := range tests {
		assert.Equal(t, want, timeOfDay(clock), clock)
	}
}

func TestHighlights(t *testing.T) {
	ip := models.ItineraryPlace{
		Place: models.Place{
			ID:           "wat-pho",
			Name:         "Wat Pho",
			ActivityType: models.ActivityTemple,
			Confidence:   models.ConfidenceHigh,
		},
		OrderInDay:  1,
		ArrivalTime: "09:20",
	}

	got := Highlights(ip, models.UserContext{Vibe: models.VibeCultural})

	assert.Equal(t, []string{
		"Perfect for your cultural travel style",
		"Great for morning activities",
		"A great way to start your day",
		"Highly recommended location",
	}, got)
}

func TestHighlightsProximity(t *testing.T) {
	ip := models.ItineraryPlace{
		Place:                models.Place{ID: "x", Name: "Mall", ActivityType: models.ActivityShopping},
		OrderInDay:           2,
		ArrivalTime:          "20:00",
		DistanceFromPrevious: 850,
	}
	assert.Equal(t, []string{"Only 0.9 km from your previous stop"}, Highlights(ip, models.UserContext{Vibe: models.VibeChill}))

	ip.DistanceFromPrevious = 3240
	assert.Equal(t, []string{"Just 3.2 km away"}, Highlights(ip, models.UserContext{Vibe: models.VibeChill}))

	ip.DistanceFromPrevious = 7000
	assert.Empty(t, Highlights(ip, models.UserContext{Vibe: models.VibeChill}))
}

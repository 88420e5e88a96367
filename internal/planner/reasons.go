package planner

import (
	"fmt"
	"math"

	"github.com/Izazzubayer/Pathly/internal/models"
	"github.com/Izazzubayer/Pathly/internal/vibe"
)

const firstStopReason = "First stop of the day"

func stopReason(orderInDay, travelMinutes int) string {
	if orderInDay == 1 {
		return firstStopReason
	}
	return fmt.Sprintf("Added because it's %d min from previous stop", travelMinutes)
}

// timeOfDay buckets a clock string by its hour
func timeOfDay(clock string) models.TimeSlotType {
	h := clockHour(clock)
	switch {
	case h >= 6 && h < 12:
		return models.SlotMorning
	case h >= 12 && h < 17:
		return models.SlotAfternoon
	case h >= 17 && h < 21:
		return models.SlotEvening
	default:
		return models.SlotNight
	}
}

func suitsTimeOfDay(activity models.ActivityType, slot models.TimeSlotType) bool {
	for _, t := range slotAffinity[activity] {
		if t == slot {
			return true
		}
	}
	return false
}

// Highlights lists the short selling points shown next to a scheduled stop
func Highlights(ip models.ItineraryPlace, uc models.UserContext) []string {
	var out []string

	if ip.OrderInDay > 1 {
		km := math.Round(ip.DistanceFromPrevious/100) / 10
		switch {
		case km < 2:
			out = append(out, fmt.Sprintf("Only %.1f km from your previous stop", km))
		case km < 5:
			out = append(out, fmt.Sprintf("Just %.1f km away", km))
		}
	}

	if uc.Vibe != "" && vibe.Score(ip.Place, uc.Vibe) > 0.5 {
		out = append(out, fmt.Sprintf("Perfect for your %s travel style", uc.Vibe))
	}

	if slot := timeOfDay(ip.ArrivalTime); suitsTimeOfDay(ip.Place.ActivityType, slot) {
		out = append(out, fmt.Sprintf("Great for %s activities", slot))
	}

	if ip.OrderInDay == 1 {
		out = append(out, "A great way to start your day")
	}

	if ip.Place.Confidence == models.ConfidenceHigh {
		out = append(out, "Highly recommended location")
	}

	return out
}

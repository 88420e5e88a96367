// Package testutil holds fixtures and in-memory fakes shared by tests.
package testutil

import (
	"time"

	"github.com/Izazzubayer/Pathly/internal/models"
)

// BangkokHotel sits in the old town near the river
var BangkokHotel = models.Coordinates{Lat: 13.7400, Lng: 100.4900}

func bkk(id, name string, lat, lng float64, activity models.ActivityType) models.Place {
	return models.Place{
		ID:           id,
		Name:         name,
		Location:     models.Coordinates{Lat: lat, Lng: lng},
		ActivityType: activity,
		Confidence:   models.ConfidenceHigh,
	}
}

// BangkokAnchors returns three must-visit places in two neighbourhoods
func BangkokAnchors() []models.Anchor {
	return []models.Anchor{
		models.NewAnchor(bkk("wat-pho", "Wat Pho", 13.7465, 100.4927, models.ActivityTemple), 0),
		models.NewAnchor(bkk("grand-palace", "Grand Palace", 13.7500, 100.4913, models.ActivityAttraction), 1),
		models.NewAnchor(bkk("chatuchak", "Chatuchak Market", 13.7999, 100.5500, models.ActivityMarket), 2),
	}
}

// BangkokOptional returns optional places near the anchors
func BangkokOptional() []models.Place {
	return []models.Place{
		bkk("museum-siam", "Museum Siam", 13.7442, 100.4940, models.ActivityMuseum),
		bkk("tha-tien", "Tha Tien Cafe", 13.7460, 100.4915, models.ActivityCafe),
		bkk("or-tor-kor", "Or Tor Kor Market", 13.7985, 100.5480, models.ActivityMarket),
		bkk("jjg-bar", "JJ Green Night Bar", 13.8040, 100.5530, models.ActivityBar),
	}
}

// BangkokRequest returns a valid two-day plan request
func BangkokRequest() *models.PlanRequest {
	hotel := BangkokHotel
	return &models.PlanRequest{
		Anchors:        BangkokAnchors(),
		OptionalPlaces: BangkokOptional(),
		Hotel:          &hotel,
		TripDetails: models.TripDetails{
			Destination: "Bangkok",
			StartDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
			Duration:    2,
			HotelName:   "Riva Surya",
		},
		UserContext: models.UserContext{
			Companion: models.CompanionCouple,
			Vibe:      models.VibeCultural,
			Energy:    models.EnergyMedium,
			Budget:    models.BudgetModerate,
			Mobility:  models.MobilityModerate,
		},
	}
}

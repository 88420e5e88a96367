// Package detour scores optional places against a leg of an existing route.
package detour

import (
	"math"
	"sort"

	"github.com/Izazzubayer/Pathly/internal/geo"
	"github.com/Izazzubayer/Pathly/internal/models"
	"github.com/Izazzubayer/Pathly/internal/vibe"
)

// Status thresholds in minutes of extra walking. Upper bounds are exclusive.
const (
	OnRouteThreshold = 5.0
	DetourThreshold  = 15.0
)

const (
	timeWeight      = 0.6
	relevanceWeight = 40.0
)

// Leg is the pair of consecutive stops a candidate would be inserted between
type Leg struct {
	From models.Place `json:"from"`
	To   models.Place `json:"to"`
}

// Score describes the cost and relevance of inserting a place into a leg.
// Lower OverallScore is better.
type Score struct {
	Place          models.Place       `json:"place"`
	Status         models.PlaceStatus `json:"status"`
	ExtraTime      float64            `json:"extra_time"`
	ExtraDistance  float64            `json:"extra_distance"`
	RelevanceScore float64            `json:"relevance_score"`
	OverallScore   float64            `json:"overall_score"`
	VibeMatch      string             `json:"vibe_match"`
}

// ScorePlace computes the detour cost of visiting place between leg.From and leg.To
func ScorePlace(place models.Place, leg Leg, travelVibe models.TravelVibe) Score {
	direct := geo.Distance(leg.From.Location, leg.To.Location)
	via := geo.Distance(leg.From.Location, place.Location) + geo.Distance(place.Location, leg.To.Location)
	extraDistance := via - direct

	extraTime := float64(geo.TravelTime(math.Max(0, extraDistance), models.TravelWalking))
	relevance := vibe.Match(place, travelVibe)

	return Score{
		Place:          place,
		Status:         Classify(extraTime),
		ExtraTime:      extraTime,
		ExtraDistance:  extraDistance,
		RelevanceScore: relevance,
		OverallScore:   extraTime*timeWeight - relevance*relevanceWeight,
		VibeMatch:      vibe.Description(place, travelVibe),
	}
}

// Classify maps extra minutes to a status
func Classify(extraTime float64) models.PlaceStatus {
	switch {
	case extraTime < OnRouteThreshold:
		return models.StatusOnRoute
	case extraTime < DetourThreshold:
		return models.StatusDetour
	default:
		return models.StatusOptional
	}
}

// RankLeg scores every candidate against leg and sorts best first.
// Ties keep candidate order.
func RankLeg(candidates []models.Place, leg Leg, travelVibe models.TravelVibe) []Score {
	scores := make([]Score, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == leg.From.ID || c.ID == leg.To.ID {
			continue
		}
		scores = append(scores, ScorePlace(c, leg, travelVibe))
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].OverallScore < scores[j].OverallScore
	})
	return scores
}

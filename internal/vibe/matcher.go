// Package vibe scores how well a place fits the traveller's chosen vibe.
package vibe

import (
	"math"
	"strings"

	"github.com/Izazzubayer/Pathly/internal/models"
)

// BalancedScore is the flat relevance every place gets under the balanced vibe
const BalancedScore = 0.7

const keywordWeight = 0.3

// detourKeywords drive detour relevance
var detourKeywords = map[models.TravelVibe][]string{
	models.VibeRomantic: {"intimate", "sunset", "scenic", "quiet", "dinner"},
	models.VibeParty:    {"nightlife", "club", "bar", "music", "dance"},
	models.VibeCultural: {"temple", "museum", "history", "art", "local"},
	models.VibeChill:    {"beach", "spa", "cafe", "relax", "slow"},
}

// profileKeywords is the wider vocabulary used for highlights and descriptions
var profileKeywords = map[models.TravelVibe][]string{
	models.VibeRomantic: {"intimate", "sunset", "scenic", "quiet", "dinner", "romantic", "couple"},
	models.VibeParty:    {"nightlife", "club", "bar", "music", "dance", "party", "vibrant"},
	models.VibeCultural: {"temple", "museum", "history", "art", "local", "cultural", "heritage"},
	models.VibeChill:    {"beach", "spa", "cafe", "relax", "slow", "chill", "peaceful"},
}

var activityBoosts = map[models.TravelVibe]map[models.ActivityType]float64{
	models.VibeRomantic: {models.ActivityRestaurant: 0.3, models.ActivityViewpoint: 0.2, models.ActivityBeach: 0.2},
	models.VibeParty:    {models.ActivityClub: 0.4, models.ActivityBar: 0.3},
	models.VibeCultural: {models.ActivityTemple: 0.3, models.ActivityMuseum: 0.3, models.ActivityAttraction: 0.2},
	models.VibeChill:    {models.ActivityCafe: 0.3, models.ActivityBeach: 0.3, models.ActivityNature: 0.2},
}

// Match is the keyword relevance of a place's name and type to vibe, in [0,1].
// Balanced always scores BalancedScore.
func Match(place models.Place, vibe models.TravelVibe) float64 {
	if vibe == models.VibeBalanced {
		return BalancedScore
	}
	text := strings.ToLower(place.Name + " " + string(place.ActivityType))
	return keywordScore(text, detourKeywords[vibe])
}

// Score is Match over a wider vocabulary (name, type and address) plus an
// activity-type boost, capped at 1.
func Score(place models.Place, vibe models.TravelVibe) float64 {
	if vibe == models.VibeBalanced {
		return BalancedScore
	}
	text := strings.ToLower(place.Name + " " + string(place.ActivityType) + " " + place.Address)
	base := keywordScore(text, profileKeywords[vibe])
	return math.Min(1, base+activityBoosts[vibe][place.ActivityType])
}

// Description turns Score into a short label
func Description(place models.Place, vibe models.TravelVibe) string {
	score := Score(place, vibe)
	switch {
	case score >= 0.7:
		return "Perfect match for your vibe"
	case score >= 0.4:
		return "Matches your travel style"
	default:
		return "Might interest you"
	}
}

func keywordScore(text string, keywords []string) float64 {
	hits := 0
	for _, k := range keywords {
		if strings.Contains(text, k) {
			hits++
		}
	}
	return math.Min(1, float64(hits)*keywordWeight)
}

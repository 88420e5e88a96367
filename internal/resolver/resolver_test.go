package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Izazzubayer/Pathly/internal/models"
)

func TestConfidence(t *testing.T) {
	tests := []struct {
		name     string
		source   Source
		tag      bool
		exact    bool
		expected models.ConfidenceLevel
	}{
		{"location tag", SourceInstagramReel, true, false, models.ConfidenceHigh},
		{"exact match", SourceURL, false, true, models.ConfidenceHigh},
		{"text reference", SourceText, false, false, models.ConfidenceMedium},
		{"instagram post", SourceInstagramPost, false, false, models.ConfidenceMedium},
		{"reel inferred", SourceInstagramReel, false, false, models.ConfidenceLow},
		{"url inferred", SourceURL, false, false, models.ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Confidence(tt.source, tt.tag, tt.exact))
		})
	}
}

func TestConfidenceReason(t *testing.T) {
	assert.Equal(t, "From location tag", ConfidenceReason(SourceText, true, true))
	assert.Equal(t, "Exact match found", ConfidenceReason(SourceURL, false, true))
	assert.Equal(t, "From text reference", ConfidenceReason(SourceText, false, false))
	assert.Equal(t, "From Instagram content", ConfidenceReason(SourceInstagramReel, false, false))
	assert.Equal(t, "Inferred from context", ConfidenceReason(SourceURL, false, false))
}

func TestActivityFromOSM(t *testing.T) {
	tests := []struct {
		category, osmType string
		expected          models.ActivityType
	}{
		{"amenity", "restaurant", models.ActivityRestaurant},
		{"amenity", "cafe", models.ActivityCafe},
		{"amenity", "pub", models.ActivityBar},
		{"amenity", "nightclub", models.ActivityClub},
		{"amenity", "place_of_worship", models.ActivityTemple},
		{"amenity", "marketplace", models.ActivityMarket},
		{"amenity", "bank", models.ActivityOther},
		{"tourism", "museum", models.ActivityMuseum},
		{"tourism", "viewpoint", models.ActivityViewpoint},
		{"tourism", "attraction", models.ActivityAttraction},
		{"tourism", "hotel", models.ActivityOther},
		{"natural", "beach", models.ActivityBeach},
		{"natural", "peak", models.ActivityNature},
		{"leisure", "park", models.ActivityNature},
		{"shop", "mall", models.ActivityShopping},
		{"historic", "castle", models.ActivityAttraction},
		{"building", "temple", models.ActivityTemple},
		{"highway", "residential", models.ActivityOther},
	}

	for _, tt := range tests {
		t.Run(tt.category+"/"+tt.osmType, func(t *testing.T) {
			assert.Equal(t, tt.expected, ActivityFromOSM(tt.category, tt.osmType))
		})
	}
}

func TestCandidateQuery(t *testing.T) {
	assert.Equal(t, "Wat Pho", Candidate{Name: " Wat Pho "}.Query())
	assert.Equal(t, "Wat Pho, Bangkok", Candidate{Name: "Wat Pho", City: "Bangkok"}.Query())
}

package models

import (
	"time"

	"github.com/paulmach/orb"
)

// TravelMode is how a leg between two stops is covered
type TravelMode string

const (
	TravelWalking TravelMode = "walking"
	TravelDriving TravelMode = "driving"
	TravelTransit TravelMode = "transit"
)

// PlaceStatus marks how a stop relates to the planned route
type PlaceStatus string

const (
	StatusOnRoute  PlaceStatus = "on-route"
	StatusDetour   PlaceStatus = "detour"
	StatusOptional PlaceStatus = "optional"
)

// TimeSlotType is a time-of-day bucket
type TimeSlotType string

const (
	SlotMorning   TimeSlotType = "morning"
	SlotAfternoon TimeSlotType = "afternoon"
	SlotEvening   TimeSlotType = "evening"
	SlotNight     TimeSlotType = "night"
)

// SlotOrder is the display order of time slots within a day
var SlotOrder = []TimeSlotType{SlotMorning, SlotAfternoon, SlotEvening, SlotNight}

// Cluster is a geographic grouping produced by a single optimization run
type Cluster struct {
	ID       int         `json:"id"`
	Centroid Coordinates `json:"centroid"`
	Places   []Place     `json:"places"`
	Radius   float64     `json:"radius"`
}

// ItineraryPlace is a place scheduled on a specific day
type ItineraryPlace struct {
	Place                Place       `json:"place"`
	IsAnchor             bool        `json:"is_anchor"`
	OrderInDay           int         `json:"order_in_day"`
	ArrivalTime          string      `json:"arrival_time"`
	DepartureTime        string      `json:"departure_time"`
	Duration             int         `json:"duration"`
	DistanceFromPrevious float64     `json:"distance_from_previous"`
	DurationFromPrevious int         `json:"duration_from_previous"`
	TravelMode           TravelMode  `json:"travel_mode"`
	Status               PlaceStatus `json:"status"`
	Reason               string      `json:"reason,omitempty"`
	Highlights           []string    `json:"highlights,omitempty"`
}

// RouteSegment is a directed edge between consecutive stops of a day
type RouteSegment struct {
	From     ItineraryPlace `json:"from"`
	To       ItineraryPlace `json:"to"`
	Distance float64        `json:"distance"`
	Duration int            `json:"duration"`
	Mode     TravelMode     `json:"mode"`

	// Filled by directions enrichment only
	Geometry     orb.LineString `json:"geometry,omitempty"`
	RoadDistance float64        `json:"road_distance,omitempty"`
	RoadDuration float64        `json:"road_duration,omitempty"`
}

// TimeSlot groups a day's places into a time-of-day window
type TimeSlot struct {
	Type      TimeSlotType     `json:"type"`
	StartTime string           `json:"start_time"`
	EndTime   string           `json:"end_time"`
	Places    []ItineraryPlace `json:"places"`
}

// ItineraryDay is one day of the plan
type ItineraryDay struct {
	DayNumber     int              `json:"day_number"`
	Date          time.Time        `json:"date"`
	Slots         []TimeSlot       `json:"slots"`
	Places        []ItineraryPlace `json:"places"`
	Routes        []RouteSegment   `json:"routes"`
	TotalDistance float64          `json:"total_distance"`
	TotalDuration int              `json:"total_duration"`
}

// Itinerary is the result of an optimization run
type Itinerary struct {
	ID                string         `json:"id"`
	CreatedAt         time.Time      `json:"created_at"`
	TripDetails       TripDetails    `json:"trip_details"`
	UserContext       UserContext    `json:"user_context"`
	Days              []ItineraryDay `json:"days"`
	TotalDistance     float64        `json:"total_distance"`
	TotalDuration     int            `json:"total_duration"`
	OptimizationScore int            `json:"optimization_score"`
}

// Day returns the day with the given number, or nil
func (it *Itinerary) Day(dayNumber int) *ItineraryDay {
	for i := range it.Days {
		if it.Days[i].DayNumber == dayNumber {
			return &it.Days[i]
		}
	}
	return nil
}

// StoredItinerary is an itinerary persisted together with the request that produced it
type StoredItinerary struct {
	Itinerary Itinerary   `json:"itinerary"`
	Request   PlanRequest `json:"request"`
	Warnings  []string    `json:"warnings"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// ItinerarySummary is the list view of a stored itinerary
type ItinerarySummary struct {
	ID                string    `json:"id"`
	Destination       string    `json:"destination"`
	Days              int       `json:"days"`
	OptimizationScore int       `json:"optimization_score"`
	TotalDistance     float64   `json:"total_distance"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// RouteCacheEntry is a cached road route between two points
type RouteCacheEntry struct {
	Profile        string         `json:"profile"`
	Origin         Coordinates    `json:"origin"`
	Destination    Coordinates    `json:"destination"`
	DistanceMeters float64        `json:"distance_meters"`
	DurationSecs   float64        `json:"duration_secs"`
	Geometry       orb.LineString `json:"geometry"`
}

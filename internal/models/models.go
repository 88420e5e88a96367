package models

import (
	"math"
	"time"
)

// Coordinates represents a geographic point
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsZero reports whether both components are exactly zero
func (c Coordinates) IsZero() bool {
	return c.Lat == 0 && c.Lng == 0
}

// RoundCoordinate rounds a coordinate component to 5 decimal places (~1m)
func RoundCoordinate(v float64) float64 {
	return math.Round(v*100000) / 100000
}

// ActivityType is the closed set of place categories
type ActivityType string

const (
	ActivityRestaurant ActivityType = "restaurant"
	ActivityCafe       ActivityType = "cafe"
	ActivityBar        ActivityType = "bar"
	ActivityClub       ActivityType = "club"
	ActivityAttraction ActivityType = "attraction"
	ActivityViewpoint  ActivityType = "viewpoint"
	ActivityBeach      ActivityType = "beach"
	ActivityMarket     ActivityType = "market"
	ActivityTemple     ActivityType = "temple"
	ActivityMuseum     ActivityType = "museum"
	ActivityShopping   ActivityType = "shopping"
	ActivityNature     ActivityType = "nature"
	ActivityOther      ActivityType = "other"
)

// ConfidenceLevel describes how sure the resolver was about a place
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// Place is a resolved location. Identity is ID.
type Place struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Address      string          `json:"address,omitempty"`
	Location     Coordinates     `json:"location"`
	ActivityType ActivityType    `json:"activity_type"`
	Confidence   ConfidenceLevel `json:"confidence"`
	UserVerified bool            `json:"user_verified"`
	Rating       *float64        `json:"rating,omitempty"`
}

// TimeLock pins an anchor to a calendar day and, advisory only, a time of day
type TimeLock struct {
	Date     time.Time `json:"date"`
	Time     string    `json:"time,omitempty"`
	Flexible bool      `json:"flexible"`
}

// Anchor is a place the user promoted to must-visit
type Anchor struct {
	Place
	IsAnchor bool      `json:"is_anchor"`
	TimeLock *TimeLock `json:"time_lock,omitempty"`
	Priority int       `json:"priority"`
}

// NewAnchor promotes a place to an anchor
func NewAnchor(p Place, priority int) Anchor {
	return Anchor{Place: p, IsAnchor: true, Priority: priority}
}

// TripDetails describes the trip window. Duration is the authoritative day count.
type TripDetails struct {
	Destination   string       `json:"destination"`
	StartDate     time.Time    `json:"start_date"`
	EndDate       time.Time    `json:"end_date"`
	Duration      int          `json:"duration"`
	HotelName     string       `json:"hotel_name,omitempty"`
	HotelLocation *Coordinates `json:"hotel_location,omitempty"`
}

// DateForDay returns the calendar date of a 1-based day number
func (t TripDetails) DateForDay(dayNumber int) time.Time {
	return t.StartDate.AddDate(0, 0, dayNumber-1)
}

type (
	TravelCompanion string
	TravelVibe      string
	EnergyLevel     string
	BudgetLevel     string
	MobilityLevel   string
)

const (
	CompanionSolo    TravelCompanion = "solo"
	CompanionCouple  TravelCompanion = "couple"
	CompanionFriends TravelCompanion = "friends"
	CompanionFamily  TravelCompanion = "family"

	VibeRomantic TravelVibe = "romantic"
	VibeParty    TravelVibe = "party"
	VibeCultural TravelVibe = "cultural"
	VibeChill    TravelVibe = "chill"
	VibeBalanced TravelVibe = "balanced"

	EnergyLow    EnergyLevel = "low"
	EnergyMedium EnergyLevel = "medium"
	EnergyHigh   EnergyLevel = "high"

	BudgetBudget   BudgetLevel = "budget"
	BudgetModerate BudgetLevel = "moderate"
	BudgetFlexible BudgetLevel = "flexible"
	BudgetLuxury   BudgetLevel = "luxury"

	MobilityLimited  MobilityLevel = "limited"
	MobilityModerate MobilityLevel = "moderate"
	MobilityHigh     MobilityLevel = "high"
)

// UserContext holds the traveller's preferences for one planning run
type UserContext struct {
	Companion TravelCompanion `json:"companion"`
	Vibe      TravelVibe      `json:"vibe"`
	Energy    EnergyLevel     `json:"energy"`
	Budget    BudgetLevel     `json:"budget"`
	Mobility  MobilityLevel   `json:"mobility"`
}

// PlanRequest is the full input of an optimization run
type PlanRequest struct {
	Anchors        []Anchor     `json:"anchors"`
	OptionalPlaces []Place      `json:"optional_places"`
	Hotel          *Coordinates `json:"hotel,omitempty"`
	TripDetails    TripDetails  `json:"trip_details"`
	UserContext    UserContext  `json:"user_context"`
}

// HotelCoords returns the explicit hotel, falling back to the trip's hotel location
func (r *PlanRequest) HotelCoords() Coordinates {
	if r.Hotel != nil {
		return *r.Hotel
	}
	if r.TripDetails.HotelLocation != nil {
		return *r.TripDetails.HotelLocation
	}
	return Coordinates{}
}

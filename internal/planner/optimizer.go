// Package planner turns anchors, optional places and trip constraints into a
// timed, day-by-day itinerary, and applies edits to an existing one.
package planner

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/Izazzubayer/Pathly/internal/clustering"
	"github.com/Izazzubayer/Pathly/internal/geo"
	"github.com/Izazzubayer/Pathly/internal/logger"
	"github.com/Izazzubayer/Pathly/internal/models"
	"github.com/Izazzubayer/Pathly/internal/routing"
)

const DefaultDayStart = "09:00"

// Options tunes an Optimizer. Zero values select the defaults.
type Options struct {
	// DayStart is the clock time of departure from the hotel, "HH:MM"
	DayStart string
	// TravelMode is used for every leg
	TravelMode models.TravelMode
	// Seed fixes clustering; 0 seeds from the clock on every run
	Seed int64
}

// Result is a complete itinerary plus non-fatal issues found while planning
type Result struct {
	Itinerary *models.Itinerary `json:"itinerary"`
	Warnings  []string          `json:"warnings"`
}

// Optimizer runs the planning pipeline. It holds no per-run state and is safe
// for concurrent use.
type Optimizer struct {
	dayStart int
	mode     models.TravelMode
	seed     int64
	log      *logger.Logger

	now   func() time.Time
	newID func() string
}

// New validates opts and returns an Optimizer
func New(opts Options, log *logger.Logger) (*Optimizer, error) {
	if opts.DayStart == "" {
		opts.DayStart = DefaultDayStart
	}
	start, err := parseClock(opts.DayStart)
	if err != nil {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("day start: %v", err)}
	}

	switch opts.TravelMode {
	case "":
		opts.TravelMode = models.TravelWalking
	case models.TravelWalking, models.TravelDriving, models.TravelTransit:
	default:
		return nil, invalidf("unknown travel mode %q", opts.TravelMode)
	}

	if log == nil {
		log = logger.Nop()
	}

	return &Optimizer{
		dayStart: start,
		mode:     opts.TravelMode,
		seed:     opts.Seed,
		log:      log.Named("planner"),
		now:      time.Now,
		newID:    uuid.NewString,
	}, nil
}

func (o *Optimizer) rng() *rand.Rand {
	seed := o.seed
	if seed == 0 {
		seed = o.now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Validate checks the request invariants the pipeline relies on
func Validate(req *models.PlanRequest) error {
	if req == nil {
		return invalidf("request is required")
	}
	trip := req.TripDetails
	if trip.Duration < 1 {
		return invalidf("trip duration must be at least 1 day, got %d", trip.Duration)
	}
	if len(req.Anchors) == 0 {
		return invalidf("at least one anchor is required")
	}
	if !trip.EndDate.IsZero() && !trip.EndDate.After(trip.StartDate) {
		return invalidf("end date %s is not after start date %s",
			trip.EndDate.Format(time.DateOnly), trip.StartDate.Format(time.DateOnly))
	}
	return nil
}

// StartingPoint is where each day of req starts and is measured from: the
// hotel, or the first anchor when no hotel is known.
func StartingPoint(req *models.PlanRequest) models.Coordinates {
	if hotel := req.HotelCoords(); !hotel.IsZero() || len(req.Anchors) == 0 {
		return hotel
	}
	return req.Anchors[0].Location
}

// Optimize builds an itinerary with exactly TripDetails.Duration days. It
// either returns a complete itinerary or an error; ctx is checked between days.
func (o *Optimizer) Optimize(ctx context.Context, req *models.PlanRequest) (*Result, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	trip := req.TripDetails
	uc := req.UserContext

	anchors := lo.UniqBy(req.Anchors, func(a models.Anchor) string { return a.ID })
	anchorIDs := lo.SliceToMap(anchors, func(a models.Anchor) (string, bool) { return a.ID, true })
	optional := lo.UniqBy(lo.Filter(req.OptionalPlaces, func(p models.Place, _ int) bool {
		return !anchorIDs[p.ID]
	}), func(p models.Place) string { return p.ID })

	all := append(lo.Map(anchors, func(a models.Anchor, _ int) models.Place { return a.Place }), optional...)

	var warnings []string
	for _, w := range CheckLocations(all) {
		warnings = append(warnings, w.String())
	}

	hotel := StartingPoint(req)
	if req.HotelCoords().IsZero() {
		warnings = append(warnings, fmt.Sprintf("no hotel location given; days start from %q", anchors[0].Name))
	}

	o.log.Info("optimizing itinerary",
		"destination", trip.Destination,
		"days", trip.Duration,
		"anchors", len(anchors),
		"optional", len(optional))

	clusters := clustering.Cluster(all, trip.Duration, o.rng())
	o.log.Debug("clustered places", "clusters", len(clusters))

	assignments, dropped := AssignAnchorsToDays(anchors, trip.Duration, trip.StartDate)
	for _, a := range dropped {
		o.log.Warn("time-lock outside trip window", "anchor", a.ID, "date", a.TimeLock.Date.Format(time.DateOnly))
		warnings = append(warnings, fmt.Sprintf("anchor %q is locked to %s, outside the trip; it was not scheduled",
			a.Name, a.TimeLock.Date.Format(time.DateOnly)))
	}

	filled := FillDaysWithOptional(assignments, optional, clusters)

	days := make([]models.ItineraryDay, 0, trip.Duration)
	for d := 1; d <= trip.Duration; d++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ordered := routing.Sequence(filled[d], hotel)
		day := o.scheduleDay(d, trip.DateForDay(d), toStops(ordered, anchorIDs), hotel, uc)
		o.log.Debug("day planned", "day", d, "stops", len(day.Places), "distance_m", math.Round(day.TotalDistance))
		days = append(days, day)
	}

	it := &models.Itinerary{
		ID:          o.newID(),
		CreatedAt:   o.now().UTC(),
		TripDetails: trip,
		UserContext: uc,
		Days:        days,
	}
	RecomputeTotals(it)

	o.log.Info("itinerary optimized",
		"id", it.ID,
		"distance_m", math.Round(it.TotalDistance),
		"duration_min", it.TotalDuration,
		"score", it.OptimizationScore,
		"warnings", len(warnings))

	return &Result{Itinerary: it, Warnings: warnings}, nil
}

// RegenerateDay re-sequences and re-times one day of it from hotel, keeping
// the same places, then recomputes itinerary totals.
func (o *Optimizer) RegenerateDay(it *models.Itinerary, hotel models.Coordinates, dayNumber int) error {
	day := it.Day(dayNumber)
	if day == nil {
		return invalidf("day %d does not exist", dayNumber)
	}

	anchorIDs := make(map[string]bool, len(day.Places))
	places := make([]models.Place, 0, len(day.Places))
	for _, ip := range day.Places {
		places = append(places, ip.Place)
		anchorIDs[ip.Place.ID] = ip.IsAnchor
	}

	ordered := routing.Sequence(places, hotel)
	*day = o.scheduleDay(dayNumber, day.Date, toStops(ordered, anchorIDs), hotel, it.UserContext)
	RecomputeTotals(it)

	o.log.Info("day regenerated", "id", it.ID, "day", dayNumber, "stops", len(day.Places))
	return nil
}

// stop is a place waiting to be timed into a day
type stop struct {
	place  models.Place
	anchor bool
}

func toStops(places []models.Place, anchorIDs map[string]bool) []stop {
	return lo.Map(places, func(p models.Place, _ int) stop {
		return stop{place: p, anchor: anchorIDs[p.ID]}
	})
}

func stopsOf(places []models.ItineraryPlace) []stop {
	return lo.Map(places, func(ip models.ItineraryPlace, _ int) stop {
		return stop{place: ip.Place, anchor: ip.IsAnchor}
	})
}

// scheduleDay walks stops in order from hotel, advancing a clock by travel
// time and activity duration, and builds the day's places, routes, slots and totals.
func (o *Optimizer) scheduleDay(dayNumber int, date time.Time, stops []stop, hotel models.Coordinates, uc models.UserContext) models.ItineraryDay {
	day := models.ItineraryDay{
		DayNumber: dayNumber,
		Date:      date,
		Slots:     []models.TimeSlot{},
		Places:    make([]models.ItineraryPlace, 0, len(stops)),
		Routes:    []models.RouteSegment{},
	}

	clock := o.dayStart
	previous := hotel

	for i, s := range stops {
		dist := geo.Distance(previous, s.place.Location)
		travel := geo.TravelTime(dist, o.mode)
		stay := geo.ActivityDuration(s.place.ActivityType)

		arrival := clock + travel
		departure := arrival + stay

		ip := models.ItineraryPlace{
			Place:                s.place,
			IsAnchor:             s.anchor,
			OrderInDay:           i + 1,
			ArrivalTime:          formatClock(arrival),
			DepartureTime:        formatClock(departure),
			Duration:             stay,
			DistanceFromPrevious: dist,
			DurationFromPrevious: travel,
			TravelMode:           o.mode,
			Status:               models.StatusOnRoute,
			Reason:               stopReason(i+1, travel),
		}
		ip.Highlights = Highlights(ip, uc)

		if i > 0 {
			day.Routes = append(day.Routes, models.RouteSegment{
				From:     day.Places[i-1],
				To:       ip,
				Distance: dist,
				Duration: travel,
				Mode:     o.mode,
			})
		}

		day.Places = append(day.Places, ip)
		day.TotalDistance += dist
		day.TotalDuration += stay + travel

		clock = departure
		previous = s.place.Location
	}

	return AssignTimeSlots(day, uc)
}

// RecomputeTotals sums day totals into the itinerary and refreshes its score
func RecomputeTotals(it *models.Itinerary) {
	it.TotalDistance = lo.SumBy(it.Days, func(d models.ItineraryDay) float64 { return d.TotalDistance })
	it.TotalDuration = lo.SumBy(it.Days, func(d models.ItineraryDay) int { return d.TotalDuration })
	it.OptimizationScore = OptimizationScore(it.TotalDistance, len(it.Days))
}

// OptimizationScore is 100 minus the average kilometres walked per day, clamped to [0,100]
func OptimizationScore(totalDistanceMeters float64, dayCount int) int {
	if dayCount < 1 {
		return 0
	}
	avgKm := totalDistanceMeters / 1000 / float64(dayCount)
	score := int(math.Round(100 - avgKm))
	return lo.Clamp(score, 0, 100)
}

package planner

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Izazzubayer/Pathly/internal/geo"
	"github.com/Izazzubayer/Pathly/internal/logger"
	"github.com/Izazzubayer/Pathly/internal/models"
)

var hotel = models.Coordinates{Lat: 13.74, Lng: 100.49}

func newTestOptimizer(t *testing.T, opts Options) *Optimizer {
	t.Helper()
	if opts.Seed == 0 {
		opts.Seed = 7
	}
	o, err := New(opts, logger.Nop())
	require.NoError(t, err)
	o.now = func() time.Time { return time.Date(2024, 2, 20, 10, 0, 0, 0, time.UTC) }
	o.newID = func() string { return "it-test" }
	return o
}

func request(duration int, anchors []models.Anchor, optional ...models.Place) *models.PlanRequest {
	h := hotel
	return &models.PlanRequest{
		Anchors:        anchors,
		OptionalPlaces: optional,
		Hotel:          &h,
		TripDetails: models.TripDetails{
			Destination: "Bangkok",
			StartDate:   date(2024, 3, 1),
			Duration:    duration,
		},
		UserContext: models.UserContext{Vibe: models.VibeCultural, Energy: models.EnergyMedium},
	}
}

func TestOptimizeSingleAnchorOneDay(t *testing.T) {
	o := newTestOptimizer(t, Options{})
	a := anchor("A", 13.75, 100.50, models.ActivityAttraction, 0)

	res, err := o.Optimize(context.Background(), request(1, []models.Anchor{a}))
	require.NoError(t, err)

	it := res.Itinerary
	require.Len(t, it.Days, 1)
	day := it.Days[0]
	assert.Equal(t, []string{"A"}, stopIDs(day.Places))
	assert.Empty(t, day.Routes)

	want := geo.Distance(hotel, a.Location)
	assert.InDelta(t, want, day.TotalDistance, 1e-6)
	assert.InDelta(t, want, it.TotalDistance, 1e-6)
	assert.GreaterOrEqual(t, it.OptimizationScore, 0)
	assert.LessOrEqual(t, it.OptimizationScore, 100)

	first := day.Places[0]
	travel := geo.TravelTime(want, models.TravelWalking)
	assert.True(t, first.IsAnchor)
	assert.Equal(t, 1, first.OrderInDay)
	assert.Equal(t, formatClock(540+travel), first.ArrivalTime)
	assert.Equal(t, formatClock(540+travel+90), first.DepartureTime)
	assert.Equal(t, "First stop of the day", first.Reason)
	assert.Equal(t, models.StatusOnRoute, first.Status)
	assert.Equal(t, travel+90, day.TotalDuration)
	assert.Contains(t, first.Highlights, "A great way to start your day")

	assert.Equal(t, "it-test", it.ID)
	assert.Equal(t, date(2024, 3, 1), day.Date)
	assert.Empty(t, res.Warnings)
}

func TestOptimizeTimeLockedAnchorLandsOnDay(t *testing.T) {
	o := newTestOptimizer(t, Options{})
	anchors := []models.Anchor{
		lockedAnchor("locked", 13.75, 100.50, date(2024, 3, 3)),
		anchor("free", 13.76, 100.51, models.ActivityCafe, 0),
	}

	res, err := o.Optimize(context.Background(), request(3, anchors))
	require.NoError(t, err)

	require.Len(t, res.Itinerary.Days, 3)
	assert.Contains(t, stopIDs(res.Itinerary.Day(3).Places), "locked")
	assert.NotContains(t, stopIDs(res.Itinerary.Day(1).Places), "locked")
	assert.NotContains(t, stopIDs(res.Itinerary.Day(2).Places), "locked")
}

func TestOptimizeRejectsInvalidInput(t *testing.T) {
	o := newTestOptimizer(t, Options{})
	a := anchor("A", 13.75, 100.50, models.ActivityAttraction, 0)

	badRange := request(2, []models.Anchor{a})
	badRange.TripDetails.EndDate = date(2024, 3, 1)

	tests := []struct {
		name string
		req  *models.PlanRequest
	}{
		{"nil request", nil},
		{"empty anchors", request(2, nil)},
		{"zero duration", request(0, []models.Anchor{a})},
		{"negative duration", request(-1, []models.Anchor{a})},
		{"end not after start", badRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := o.Optimize(context.Background(), tt.req)
			require.Error(t, err)
			assert.Nil(t, res)

			var invalid *InvalidInputError
			assert.True(t, errors.As(err, &invalid))
		})
	}
}

func TestOptimizeDayCountAndTotals(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for trial := 0; trial < 25; trial++ {
		duration := 1 + rng.Intn(5)
		var anchors []models.Anchor
		for i := 0; i < 1+rng.Intn(6); i++ {
			anchors = append(anchors, anchor(fmt.Sprintf("a%d", i), 13.7+rng.Float64()*0.1, 100.4+rng.Float64()*0.1, models.ActivityMuseum, rng.Intn(3)))
		}
		var optional []models.Place
		for i := 0; i < rng.Intn(10); i++ {
			optional = append(optional, place(fmt.Sprintf("o%d", i), 13.7+rng.Float64()*0.1, 100.4+rng.Float64()*0.1, models.ActivityCafe))
		}

		o := newTestOptimizer(t, Options{Seed: int64(trial + 1)})
		res, err := o.Optimize(context.Background(), request(duration, anchors, optional...))
		require.NoError(t, err)
		it := res.Itinerary

		require.Len(t, it.Days, duration)

		seen := map[string]int{}
		var dist float64
		var dur int
		for i, day := range it.Days {
			assert.Equal(t, i+1, day.DayNumber)
			assert.Equal(t, slotPlaceCount(day), len(day.Places))
			if len(day.Places) > 0 {
				assert.Len(t, day.Routes, len(day.Places)-1)
			}
			for j, ip := range day.Places {
				seen[ip.Place.ID]++
				assert.Equal(t, j+1, ip.OrderInDay)
			}
			dist += day.TotalDistance
			dur += day.TotalDuration
		}
		assert.InDelta(t, dist, it.TotalDistance, 1e-6)
		assert.Equal(t, dur, it.TotalDuration)

		for _, a := range anchors {
			assert.Equal(t, 1, seen[a.ID], "anchor %s", a.ID)
		}
		for id, n := range seen {
			assert.Equal(t, 1, n, "place %s scheduled %d times", id, n)
		}
	}
}

func TestOptimizeTimesChain(t *testing.T) {
	o := newTestOptimizer(t, Options{DayStart: "08:30"})
	anchors := []models.Anchor{
		anchor("a", 13.75, 100.50, models.ActivityTemple, 0),
		anchor("b", 13.76, 100.50, models.ActivityMuseum, 0),
		anchor("c", 13.77, 100.51, models.ActivityRestaurant, 0),
	}

	res, err := o.Optimize(context.Background(), request(1, anchors))
	require.NoError(t, err)

	day := res.Itinerary.Days[0]
	require.Len(t, day.Places, 3)

	clock := 510
	for i, ip := range day.Places {
		clock += ip.DurationFromPrevious
		assert.Equal(t, formatClock(clock), ip.ArrivalTime, "stop %d", i)
		clock += ip.Duration
		assert.Equal(t, formatClock(clock), ip.DepartureTime, "stop %d", i)

		if i > 0 {
			assert.Equal(t, fmt.Sprintf("Added because it's %d min from previous stop", ip.DurationFromPrevious), ip.Reason)
			assert.Equal(t, day.Places[i-1].Place.ID, day.Routes[i-1].From.Place.ID)
			assert.Equal(t, ip.Place.ID, day.Routes[i-1].To.Place.ID)
			assert.Equal(t, ip.DistanceFromPrevious, day.Routes[i-1].Distance)
		}
	}
}

func TestOptimizeDeterministicWithSeed(t *testing.T) {
	anchors := []models.Anchor{
		anchor("a", 13.75, 100.50, models.ActivityTemple, 0),
		anchor("b", 13.85, 100.60, models.ActivityMuseum, 0),
	}
	optional := []models.Place{
		place("o1", 13.751, 100.501, models.ActivityCafe),
		place("o2", 13.851, 100.601, models.ActivityBar),
		place("o3", 13.80, 100.55, models.ActivityMarket),
	}

	first, err := newTestOptimizer(t, Options{Seed: 42}).Optimize(context.Background(), request(2, anchors, optional...))
	require.NoError(t, err)
	second, err := newTestOptimizer(t, Options{Seed: 42}).Optimize(context.Background(), request(2, anchors, optional...))
	require.NoError(t, err)

	assert.Equal(t, first.Itinerary, second.Itinerary)
}

func TestOptimizeWarnings(t *testing.T) {
	o := newTestOptimizer(t, Options{})
	anchors := []models.Anchor{
		anchor("a", 13.75, 100.50, models.ActivityTemple, 0),
		lockedAnchor("late", 13.76, 100.50, date(2024, 4, 1)),
	}
	optional := []models.Place{place("ghost", 0, 0, models.ActivityOther)}

	res, err := o.Optimize(context.Background(), request(2, anchors, optional...))
	require.NoError(t, err)

	require.Len(t, res.Warnings, 2)
	assert.Contains(t, res.Warnings[0], "ghost")
	assert.Contains(t, res.Warnings[1], "late")
	assert.NotContains(t, stopIDs(res.Itinerary.Day(1).Places), "late")
	assert.NotContains(t, stopIDs(res.Itinerary.Day(2).Places), "late")
}

func TestOptimizeWithoutHotelStartsAtFirstAnchor(t *testing.T) {
	o := newTestOptimizer(t, Options{})
	req := request(1, []models.Anchor{anchor("a", 13.75, 100.50, models.ActivityTemple, 0)})
	req.Hotel = nil

	res, err := o.Optimize(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, 0.0, res.Itinerary.Days[0].Places[0].DistanceFromPrevious)
}

func TestStartingPoint(t *testing.T) {
	req := request(1, []models.Anchor{anchor("a", 13.75, 100.50, models.ActivityTemple, 0)})
	assert.Equal(t, hotel, StartingPoint(req))

	req.Hotel = nil
	assert.Equal(t, models.Coordinates{Lat: 13.75, Lng: 100.50}, StartingPoint(req))

	req.Anchors = nil
	assert.True(t, StartingPoint(req).IsZero())
}

func TestOptimizeDeduplicatesPlaces(t *testing.T) {
	o := newTestOptimizer(t, Options{})
	a := anchor("a", 13.75, 100.50, models.ActivityTemple, 0)

	res, err := o.Optimize(context.Background(), request(1, []models.Anchor{a, a}, a.Place, place("o", 13.7501, 100.5001, models.ActivityCafe)))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a", "o"}, stopIDs(res.Itinerary.Days[0].Places))
}

func TestOptimizeHonoursCancellation(t *testing.T) {
	o := newTestOptimizer(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := o.Optimize(ctx, request(1, []models.Anchor{anchor("a", 13.75, 100.50, models.ActivityTemple, 0)}))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
}

func TestNewValidatesOptions(t *testing.T) {
	_, err := New(Options{DayStart: "nine"}, nil)
	var invalid *InvalidInputError
	assert.True(t, errors.As(err, &invalid))

	_, err = New(Options{TravelMode: "teleport"}, nil)
	assert.Error(t, err)

	o, err := New(Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 540, o.dayStart)
	assert.Equal(t, models.TravelWalking, o.mode)
}

func TestOptimizeDrivingMode(t *testing.T) {
	walk := newTestOptimizer(t, Options{})
	drive := newTestOptimizer(t, Options{TravelMode: models.TravelDriving})
	req := request(1, []models.Anchor{anchor("a", 13.80, 100.55, models.ActivityTemple, 0)})

	w, err := walk.Optimize(context.Background(), req)
	require.NoError(t, err)
	d, err := drive.Optimize(context.Background(), req)
	require.NoError(t, err)

	assert.Less(t, d.Itinerary.Days[0].Places[0].DurationFromPrevious, w.Itinerary.Days[0].Places[0].DurationFromPrevious)
	assert.Equal(t, models.TravelDriving, d.Itinerary.Days[0].Places[0].TravelMode)
}

func TestOptimizationScore(t *testing.T) {
	assert.Equal(t, 100, OptimizationScore(0, 3))
	assert.Equal(t, 95, OptimizationScore(15000, 3))
	assert.Equal(t, 0, OptimizationScore(500000, 2))
	assert.Equal(t, 0, OptimizationScore(1000, 0))
}

func TestRegenerateDay(t *testing.T) {
	o := newTestOptimizer(t, Options{})
	anchors := []models.Anchor{
		anchor("a", 13.75, 100.50, models.ActivityTemple, 0),
		anchor("b", 13.76, 100.51, models.ActivityMuseum, 0),
		anchor("c", 13.77, 100.52, models.ActivityRestaurant, 0),
	}
	res, err := o.Optimize(context.Background(), request(1, anchors))
	require.NoError(t, err)
	it := res.Itinerary
	before := stopIDs(it.Days[0].Places)

	// scramble the day and regenerate
	places := it.Days[0].Places
	places[0], places[2] = places[2], places[0]
	require.NoError(t, o.RegenerateDay(it, hotel, 1))

	assert.Equal(t, before, stopIDs(it.Days[0].Places))
	for _, ip := range it.Days[0].Places {
		assert.True(t, ip.IsAnchor)
	}
	assert.InDelta(t, it.Days[0].TotalDistance, it.TotalDistance, 1e-6)

	var invalid *InvalidInputError
	assert.True(t, errors.As(o.RegenerateDay(it, hotel, 4), &invalid))
}

package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Izazzubayer/Pathly/internal/database"
	"github.com/Izazzubayer/Pathly/internal/logger"
	"github.com/Izazzubayer/Pathly/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func storedItinerary(id string, created time.Time) *models.StoredItinerary {
	hotel := models.Coordinates{Lat: 13.74, Lng: 100.49}
	watPho := models.NewAnchor(models.Place{
		ID: "wat-pho", Name: "Wat Pho", ActivityType: models.ActivityTemple,
		Location: models.Coordinates{Lat: 13.7465, Lng: 100.4927},
	}, 0)

	return &models.StoredItinerary{
		Request: models.PlanRequest{
			Anchors:     []models.Anchor{watPho},
			Hotel:       &hotel,
			TripDetails: models.TripDetails{Destination: "Bangkok", Duration: 1},
			UserContext: models.UserContext{Vibe: models.VibeCultural},
		},
		Itinerary: models.Itinerary{
			ID:          id,
			CreatedAt:   created,
			TripDetails: models.TripDetails{Destination: "Bangkok", Duration: 1},
			Days: []models.ItineraryDay{{
				DayNumber: 1,
				Places: []models.ItineraryPlace{{
					Place: watPho.Place, IsAnchor: true, OrderInDay: 1,
					ArrivalTime: "09:12", DepartureTime: "09:57", Duration: 45,
				}},
				TotalDistance: 880,
				TotalDuration: 57,
			}},
			TotalDistance:     880,
			TotalDuration:     57,
			OptimizationScore: 99,
		},
		Warnings: []string{"something odd"},
	}
}

func TestNewStore(t *testing.T) {
	store := setupTestStore(t)
	assert.NotNil(t, store.Itineraries())
	assert.NotNil(t, store.RouteCache())
	assert.NoError(t, store.HealthCheck(context.Background()))
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	store, err := New(path, nil)
	require.NoError(t, err)
	require.NoError(t, store.Itineraries().Create(ctx, storedItinerary("it-1", time.Now().UTC())))
	require.NoError(t, store.Close())

	store, err = New(path, nil)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Itineraries().GetByID(ctx, "it-1")
	require.NoError(t, err)
	assert.Equal(t, "it-1", got.Itinerary.ID)
}

func TestReopenRejectsUnknownSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.db")

	store, err := New(path, nil)
	require.NoError(t, err)
	_, err = store.db.Exec("UPDATE schema_version SET version = ?", schemaVersion+1)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = New(path, nil)
	assert.ErrorContains(t, err, "unsupported schema version 2")
}

func TestHealthCheckAfterClose(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "closed.db"), nil)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	assert.Error(t, store.HealthCheck(context.Background()))
}

func TestInMemoryStore(t *testing.T) {
	store, err := New(":memory:", nil)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Itineraries().Create(ctx, storedItinerary("mem", time.Now().UTC())))
	_, err = store.Itineraries().GetByID(ctx, "mem")
	assert.NoError(t, err)
}

func TestItineraryCreateAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	in := storedItinerary("it-1", time.Date(2024, 2, 20, 8, 0, 0, 0, time.UTC))

	require.NoError(t, store.Itineraries().Create(ctx, in))
	assert.False(t, in.UpdatedAt.IsZero())

	got, err := store.Itineraries().GetByID(ctx, "it-1")
	require.NoError(t, err)

	assert.Equal(t, in.Itinerary.ID, got.Itinerary.ID)
	assert.Equal(t, in.Itinerary.Days[0].Places[0].Place.Name, got.Itinerary.Days[0].Places[0].Place.Name)
	assert.Equal(t, 99, got.Itinerary.OptimizationScore)
	assert.Equal(t, []string{"something odd"}, got.Warnings)
	require.Len(t, got.Request.Anchors, 1)
	assert.True(t, got.Request.Anchors[0].IsAnchor)
	require.NotNil(t, got.Request.Hotel)
	assert.Equal(t, 13.74, got.Request.Hotel.Lat)
	assert.WithinDuration(t, in.UpdatedAt, got.UpdatedAt, time.Second)
}

func TestItineraryCreateDuplicate(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Itineraries().Create(ctx, storedItinerary("dup", time.Now().UTC())))
	assert.Error(t, store.Itineraries().Create(ctx, storedItinerary("dup", time.Now().UTC())))
}

func TestItineraryGetNotFound(t *testing.T) {
	store := setupTestStore(t)

	got, err := store.Itineraries().GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, database.ErrNotFound)
	assert.Nil(t, got)
}

func TestItineraryUpdate(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	in := storedItinerary("it-1", time.Now().UTC())
	require.NoError(t, store.Itineraries().Create(ctx, in))

	in.Itinerary.OptimizationScore = 42
	in.Itinerary.Days[0].Places = nil
	in.Warnings = nil
	require.NoError(t, store.Itineraries().Update(ctx, in))

	got, err := store.Itineraries().GetByID(ctx, "it-1")
	require.NoError(t, err)
	assert.Equal(t, 42, got.Itinerary.OptimizationScore)
	assert.Empty(t, got.Itinerary.Days[0].Places)
	assert.Empty(t, got.Warnings)

	list, _, err := store.Itineraries().List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 42, list[0].OptimizationScore)
}

func TestItineraryUpdateNotFound(t *testing.T) {
	store := setupTestStore(t)

	err := store.Itineraries().Update(context.Background(), storedItinerary("ghost", time.Now().UTC()))
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestItineraryDelete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Itineraries().Create(ctx, storedItinerary("it-1", time.Now().UTC())))

	require.NoError(t, store.Itineraries().Delete(ctx, "it-1"))

	_, err := store.Itineraries().GetByID(ctx, "it-1")
	assert.ErrorIs(t, err, database.ErrNotFound)
	assert.ErrorIs(t, store.Itineraries().Delete(ctx, "it-1"), database.ErrNotFound)
}

func TestItineraryListPagination(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, store.Itineraries().Create(ctx, storedItinerary(id, base.Add(time.Duration(i)*time.Hour))))
	}

	page, total, err := store.Itineraries().List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, "new", page[0].ID)
	assert.Equal(t, "mid", page[1].ID)
	assert.Equal(t, "Bangkok", page[0].Destination)
	assert.Equal(t, 1, page[0].Days)

	page, _, err = store.Itineraries().List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "old", page[0].ID)
}

func TestItineraryListEmpty(t *testing.T) {
	store := setupTestStore(t)

	page, total, err := store.Itineraries().List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}

func TestRouteCacheSetGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	origin := models.Coordinates{Lat: 13.7465123, Lng: 100.4927456}
	dest := models.Coordinates{Lat: 13.7442, Lng: 100.4940}
	entry := &models.RouteCacheEntry{
		Profile:        "foot",
		Origin:         origin,
		Destination:    dest,
		DistanceMeters: 410,
		DurationSecs:   300,
		Geometry:       orb.LineString{{100.4927, 13.7465}, {100.4940, 13.7442}},
	}
	require.NoError(t, store.RouteCache().Set(ctx, entry))

	// lookups match on rounded coordinates
	got, err := store.RouteCache().Get(ctx, "foot", models.Coordinates{Lat: 13.746512, Lng: 100.492746}, dest)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 410.0, got.DistanceMeters)
	assert.Equal(t, 300.0, got.DurationSecs)
	assert.Equal(t, entry.Geometry, got.Geometry)
	assert.Equal(t, models.RoundCoordinate(origin.Lat), got.Origin.Lat)

	miss, err := store.RouteCache().Get(ctx, "car", origin, dest)
	require.NoError(t, err)
	assert.Nil(t, miss)
}

func TestRouteCacheReplaceAndClear(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	origin := models.Coordinates{Lat: 1, Lng: 2}
	dest := models.Coordinates{Lat: 3, Lng: 4}

	require.NoError(t, store.RouteCache().Set(ctx, &models.RouteCacheEntry{Profile: "foot", Origin: origin, Destination: dest, DistanceMeters: 10}))
	require.NoError(t, store.RouteCache().Set(ctx, &models.RouteCacheEntry{Profile: "foot", Origin: origin, Destination: dest, DistanceMeters: 20}))

	got, err := store.RouteCache().Get(ctx, "foot", origin, dest)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 20.0, got.DistanceMeters)
	assert.Empty(t, got.Geometry)

	require.NoError(t, store.RouteCache().Clear(ctx))
	got, err = store.RouteCache().Get(ctx, "foot", origin, dest)
	require.NoError(t, err)
	assert.Nil(t, got)
}

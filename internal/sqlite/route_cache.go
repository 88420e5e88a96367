package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Izazzubayer/Pathly/internal/models"
)

type routeCacheRepository struct {
	store *Store
}

func roundedPair(origin, dest models.Coordinates) (float64, float64, float64, float64) {
	return models.RoundCoordinate(origin.Lat),
		models.RoundCoordinate(origin.Lng),
		models.RoundCoordinate(dest.Lat),
		models.RoundCoordinate(dest.Lng)
}

func (r *routeCacheRepository) Get(ctx context.Context, profile string, origin, dest models.Coordinates) (*models.RouteCacheEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	query := `SELECT origin_lat, origin_lng, dest_lat, dest_lng, distance_meters, duration_secs, geometry_json
	          FROM route_cache
	          WHERE profile = ? AND origin_lat = ? AND origin_lng = ? AND dest_lat = ? AND dest_lng = ?`

	oLat, oLng, dLat, dLng := roundedPair(origin, dest)

	entry := models.RouteCacheEntry{Profile: profile}
	var geometry string
	err := r.store.db.QueryRowContext(ctx, query, profile, oLat, oLng, dLat, dLng).Scan(
		&entry.Origin.Lat, &entry.Origin.Lng,
		&entry.Destination.Lat, &entry.Destination.Lng,
		&entry.DistanceMeters, &entry.DurationSecs, &geometry,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get route cache entry: %w", err)
	}

	if err := json.Unmarshal([]byte(geometry), &entry.Geometry); err != nil {
		return nil, fmt.Errorf("failed to decode cached geometry: %w", err)
	}

	return &entry, nil
}

func (r *routeCacheRepository) Set(ctx context.Context, entry *models.RouteCacheEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	geometry, err := json.Marshal(entry.Geometry)
	if err != nil {
		return fmt.Errorf("failed to encode geometry: %w", err)
	}
	if entry.Geometry == nil {
		geometry = []byte("[]")
	}

	query := `INSERT OR REPLACE INTO route_cache
	          (profile, origin_lat, origin_lng, dest_lat, dest_lng, distance_meters, duration_secs, geometry_json)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	oLat, oLng, dLat, dLng := roundedPair(entry.Origin, entry.Destination)

	_, err = r.store.db.ExecContext(ctx, query,
		entry.Profile, oLat, oLng, dLat, dLng,
		entry.DistanceMeters, entry.DurationSecs, string(geometry),
	)
	if err != nil {
		return fmt.Errorf("failed to set route cache entry: %w", err)
	}

	return nil
}

func (r *routeCacheRepository) Clear(ctx context.Context) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, err := r.store.db.ExecContext(ctx, "DELETE FROM route_cache"); err != nil {
		return fmt.Errorf("failed to clear route cache: %w", err)
	}
	return nil
}

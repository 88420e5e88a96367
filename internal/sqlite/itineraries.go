package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Izazzubayer/Pathly/internal/database"
	"github.com/Izazzubayer/Pathly/internal/models"
)

type itineraryRepository struct {
	store *Store
}

func (r *itineraryRepository) List(ctx context.Context, limit, offset int) ([]models.ItinerarySummary, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var total int
	if err := r.store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM itineraries`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count itineraries: %w", err)
	}

	query := `SELECT id, destination, days, optimization_score, total_distance, created_at, updated_at
	          FROM itineraries
	          ORDER BY created_at DESC
	          LIMIT ? OFFSET ?`

	rows, err := r.store.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query itineraries: %w", err)
	}
	defer rows.Close()

	summaries := []models.ItinerarySummary{}
	for rows.Next() {
		var s models.ItinerarySummary
		if err := rows.Scan(&s.ID, &s.Destination, &s.Days, &s.OptimizationScore, &s.TotalDistance, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan itinerary: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating itineraries: %w", err)
	}

	return summaries, total, nil
}

func (r *itineraryRepository) GetByID(ctx context.Context, id string) (*models.StoredItinerary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	query := `SELECT request_json, itinerary_json, warnings_json, updated_at FROM itineraries WHERE id = ?`

	var reqJSON, itJSON, warnJSON string
	var stored models.StoredItinerary
	err := r.store.db.QueryRowContext(ctx, query, id).Scan(&reqJSON, &itJSON, &warnJSON, &stored.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get itinerary: %w", err)
	}

	if err := json.Unmarshal([]byte(reqJSON), &stored.Request); err != nil {
		return nil, fmt.Errorf("failed to decode itinerary request: %w", err)
	}
	if err := json.Unmarshal([]byte(itJSON), &stored.Itinerary); err != nil {
		return nil, fmt.Errorf("failed to decode itinerary: %w", err)
	}
	if err := json.Unmarshal([]byte(warnJSON), &stored.Warnings); err != nil {
		return nil, fmt.Errorf("failed to decode itinerary warnings: %w", err)
	}

	return &stored, nil
}

func (r *itineraryRepository) Create(ctx context.Context, s *models.StoredItinerary) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now().UTC()
	}
	createdAt := s.Itinerary.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.UpdatedAt
	}

	reqJSON, itJSON, warnJSON, err := encodeStored(s)
	if err != nil {
		return err
	}

	query := `INSERT INTO itineraries
	          (id, destination, days, optimization_score, total_distance,
	           request_json, itinerary_json, warnings_json, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	it := &s.Itinerary
	_, err = r.store.db.ExecContext(ctx, query,
		it.ID, it.TripDetails.Destination, len(it.Days), it.OptimizationScore, it.TotalDistance,
		reqJSON, itJSON, warnJSON, createdAt.UTC(), s.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create itinerary: %w", err)
	}

	return nil
}

func (r *itineraryRepository) Update(ctx context.Context, s *models.StoredItinerary) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s.UpdatedAt = time.Now().UTC()

	reqJSON, itJSON, warnJSON, err := encodeStored(s)
	if err != nil {
		return err
	}

	query := `UPDATE itineraries
	          SET destination = ?, days = ?, optimization_score = ?, total_distance = ?,
	              request_json = ?, itinerary_json = ?, warnings_json = ?, updated_at = ?
	          WHERE id = ?`

	it := &s.Itinerary
	result, err := r.store.db.ExecContext(ctx, query,
		it.TripDetails.Destination, len(it.Days), it.OptimizationScore, it.TotalDistance,
		reqJSON, itJSON, warnJSON, s.UpdatedAt, it.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update itinerary: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return database.ErrNotFound
	}

	return nil
}

func (r *itineraryRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	result, err := r.store.db.ExecContext(ctx, `DELETE FROM itineraries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete itinerary: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return database.ErrNotFound
	}

	return nil
}

func encodeStored(s *models.StoredItinerary) (string, string, string, error) {
	reqJSON, err := json.Marshal(s.Request)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode itinerary request: %w", err)
	}
	itJSON, err := json.Marshal(s.Itinerary)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode itinerary: %w", err)
	}
	warnings := s.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	warnJSON, err := json.Marshal(warnings)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode itinerary warnings: %w", err)
	}
	return string(reqJSON), string(itJSON), string(warnJSON), nil
}

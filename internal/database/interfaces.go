package database

import (
	"context"

	"github.com/Izazzubayer/Pathly/internal/models"
)

// DataStore is the interface for data persistence
type DataStore interface {
	Close() error
	HealthCheck(ctx context.Context) error
	Itineraries() ItineraryRepository
	RouteCache() RouteCacheRepository
}

// ItineraryRepository persists itineraries together with the request that produced them
type ItineraryRepository interface {
	List(ctx context.Context, limit, offset int) ([]models.ItinerarySummary, int, error)
	GetByID(ctx context.Context, id string) (*models.StoredItinerary, error)
	Create(ctx context.Context, s *models.StoredItinerary) error
	Update(ctx context.Context, s *models.StoredItinerary) error
	Delete(ctx context.Context, id string) error
}

// RouteCacheRepository caches road routes between rounded coordinate pairs.
// Get returns nil, nil on a miss.
type RouteCacheRepository interface {
	Get(ctx context.Context, profile string, origin, dest models.Coordinates) (*models.RouteCacheEntry, error)
	Set(ctx context.Context, entry *models.RouteCacheEntry) error
	Clear(ctx context.Context) error
}

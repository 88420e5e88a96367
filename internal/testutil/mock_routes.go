package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/Izazzubayer/Pathly/internal/models"
)

func pairKey(origin, dest models.Coordinates) string {
	return fmt.Sprintf("%.5f,%.5f->%.5f,%.5f",
		models.RoundCoordinate(origin.Lat), models.RoundCoordinate(origin.Lng),
		models.RoundCoordinate(dest.Lat), models.RoundCoordinate(dest.Lng))
}

// MockRouteCache is an in-memory RouteCacheRepository
type MockRouteCache struct {
	mu      sync.Mutex
	entries map[string]*models.RouteCacheEntry
}

func NewMockRouteCache() *MockRouteCache {
	return &MockRouteCache{entries: make(map[string]*models.RouteCacheEntry)}
}

func (c *MockRouteCache) Get(ctx context.Context, profile string, origin, dest models.Coordinates) (*models.RouteCacheEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[profile+"|"+pairKey(origin, dest)]; ok {
		return entry, nil
	}
	return nil, nil
}

func (c *MockRouteCache) Set(ctx context.Context, entry *models.RouteCacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[entry.Profile+"|"+pairKey(entry.Origin, entry.Destination)] = entry
	return nil
}

func (c *MockRouteCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*models.RouteCacheEntry)
	return nil
}

// Count returns the number of entries in the cache
func (c *MockRouteCache) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

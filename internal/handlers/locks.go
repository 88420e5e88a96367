package handlers

import "sync"

// itineraryLocks serializes writes to a single itinerary. An entry is created
// on first lock and dropped by forget when the itinerary is deleted.
type itineraryLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newItineraryLocks() *itineraryLocks {
	return &itineraryLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for id and returns its release func
func (l *itineraryLocks) lock(id string) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// forget drops the mutex of a deleted itinerary
func (l *itineraryLocks) forget(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.locks, id)
}

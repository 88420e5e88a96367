// Package sqlite implements database.DataStore on an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Izazzubayer/Pathly/internal/database"
	"github.com/Izazzubayer/Pathly/internal/logger"

	_ "modernc.org/sqlite"
)

const schemaVersion = 1

// Store is a SQLite-based data store implementing database.DataStore
type Store struct {
	db  *sql.DB
	mu  sync.RWMutex
	log *logger.Logger

	itineraryRepo  database.ItineraryRepository
	routeCacheRepo database.RouteCacheRepository
}

// New opens (creating if needed) the SQLite store at dbPath
func New(dbPath string, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Named("store")

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	log.Info("opening sqlite database", "path", dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = -64000", // 64MB cache
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	store := &Store{
		db:  db,
		log: log,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	store.itineraryRepo = &itineraryRepository{store: store}
	store.routeCacheRepo = &routeCacheRepository{store: store}

	return store, nil
}

func (s *Store) initSchema() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist, create everything
		return s.createSchema()
	}

	if version != schemaVersion {
		return fmt.Errorf("unsupported schema version %d, want %d", version, schemaVersion)
	}
	return nil
}

func (s *Store) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY
	);
	INSERT INTO schema_version (version) VALUES (1);

	-- Itineraries keep the request that produced them so they can be re-planned
	CREATE TABLE IF NOT EXISTS itineraries (
		id TEXT PRIMARY KEY,
		destination TEXT NOT NULL,
		days INTEGER NOT NULL,
		optimization_score INTEGER NOT NULL,
		total_distance REAL NOT NULL,
		request_json TEXT NOT NULL,
		itinerary_json TEXT NOT NULL,
		warnings_json TEXT NOT NULL DEFAULT '[]',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	-- Road routes from the directions service
	CREATE TABLE IF NOT EXISTS route_cache (
		profile TEXT NOT NULL,
		origin_lat REAL NOT NULL,
		origin_lng REAL NOT NULL,
		dest_lat REAL NOT NULL,
		dest_lng REAL NOT NULL,
		distance_meters REAL NOT NULL,
		duration_secs REAL NOT NULL,
		geometry_json TEXT NOT NULL DEFAULT '[]',
		PRIMARY KEY (profile, origin_lat, origin_lng, dest_lat, dest_lng)
	);

	CREATE INDEX IF NOT EXISTS idx_itineraries_created ON itineraries(created_at DESC);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	s.log.Info("sqlite schema initialized", "version", schemaVersion)
	return nil
}

// Close checkpoints the WAL and closes the database
func (s *Store) Close() error {
	if s.db != nil {
		s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
		return s.db.Close()
	}
	return nil
}

// HealthCheck verifies the database connection
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Itineraries() database.ItineraryRepository { return s.itineraryRepo }
func (s *Store) RouteCache() database.RouteCacheRepository  { return s.routeCacheRepo }

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/cors"

	"github.com/Izazzubayer/Pathly/internal/config"
	"github.com/Izazzubayer/Pathly/internal/database"
	"github.com/Izazzubayer/Pathly/internal/directions"
	"github.com/Izazzubayer/Pathly/internal/handlers"
	"github.com/Izazzubayer/Pathly/internal/logger"
	"github.com/Izazzubayer/Pathly/internal/models"
	"github.com/Izazzubayer/Pathly/internal/planner"
	"github.com/Izazzubayer/Pathly/internal/resolver"
	"github.com/Izazzubayer/Pathly/internal/sqlite"
)

// Server wraps the HTTP server and all dependencies
type Server struct {
	httpServer *http.Server
	handler    *handlers.Handler
	db         database.DataStore
	listener   net.Listener
	addr       string
	log        *logger.Logger
}

// New creates and initializes a new server (does not start it)
func New(cfg *config.Config, log *logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.Nop()
	}

	dataDir := cfg.Data.Dir
	if dataDir == "" {
		dir, err := database.GetAppDir()
		if err != nil {
			return nil, err
		}
		dataDir = dir
	}

	log.Info("initializing data store", "dir", dataDir)
	db, err := sqlite.New(database.DBPath(dataDir), log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize data store: %w", err)
	}

	optimizer, err := planner.New(planner.Options{
		DayStart:   cfg.Planner.DayStart,
		TravelMode: models.TravelMode(cfg.Planner.TravelMode),
		Seed:       cfg.Planner.Seed,
	}, log)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize planner: %w", err)
	}

	var enricher *directions.Enricher
	if cfg.Directions.Enabled {
		osrm := directions.NewOSRMClient(directions.Config{
			BaseURL:   cfg.Directions.BaseURL,
			Profile:   cfg.Directions.Profile,
			Timeout:   cfg.DirectionsTimeout(),
			RateLimit: cfg.Directions.RateLimit,
		}, db.RouteCache(), log)
		enricher = directions.NewEnricher(osrm, cfg.Directions.Concurrency, log)
		log.Info("directions enabled", "base_url", cfg.Directions.BaseURL, "profile", cfg.Directions.Profile)
	}

	res := resolver.NewNominatim(resolver.Config{
		BaseURL:     cfg.Resolver.BaseURL,
		UserAgent:   cfg.Resolver.UserAgent,
		RateLimit:   cfg.Resolver.RateLimit,
		Concurrency: cfg.Resolver.Concurrency,
		MaxRetries:  cfg.Resolver.MaxRetries,
	}, log)

	handler := handlers.New(db, optimizer, enricher, res, log)

	return newServer(cfg.Addr(), handler, db, log), nil
}

func newServer(addr string, handler *handlers.Handler, db database.DataStore, log *logger.Logger) *Server {
	mux := setupRoutes(handler)
	httpLog := log.Named("http")

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      loggingMiddleware(httpLog, corsMiddleware(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		handler:    handler,
		db:         db,
		addr:       addr,
		log:        httpLog,
	}
}

// Start starts the server and returns the actual address (useful for random port)
func (s *Server) Start() (string, error) {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen: %w", err)
	}

	s.listener = listener
	actualAddr := listener.Addr().String()
	s.log.Info("starting server", "addr", actualAddr)

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("server error", "error", err)
		}
	}()

	return actualAddr, nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	return s.db.Close()
}

// setupRoutes configures all HTTP routes
func setupRoutes(h *handlers.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health", h.HandleHealthCheck)

	mux.HandleFunc("POST /api/v1/itineraries", h.HandleCreateItinerary)
	mux.HandleFunc("GET /api/v1/itineraries", h.HandleListItineraries)
	mux.HandleFunc("GET /api/v1/itineraries/{id}", h.HandleGetItinerary)
	mux.HandleFunc("DELETE /api/v1/itineraries/{id}", h.HandleDeleteItinerary)
	mux.HandleFunc("GET /api/v1/itineraries/{id}/export", h.HandleExportItinerary)

	mux.HandleFunc("POST /api/v1/itineraries/{id}/days/{day}/regenerate", h.HandleRegenerateDay)
	mux.HandleFunc("POST /api/v1/itineraries/{id}/days/{day}/reorder", h.HandleReorderPlace)
	mux.HandleFunc("POST /api/v1/itineraries/{id}/days/{day}/move", h.HandleMovePlace)
	mux.HandleFunc("DELETE /api/v1/itineraries/{id}/days/{day}/places/{placeID}", h.HandleRemovePlace)
	mux.HandleFunc("GET /api/v1/itineraries/{id}/days/{day}/detours", h.HandleLegDetours)

	mux.HandleFunc("POST /api/v1/detours", h.HandleScoreDetours)
	mux.HandleFunc("POST /api/v1/places/resolve", h.HandleResolvePlaces)

	return mux
}

func loggingMiddleware(log *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(lrw, r)

		log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", lrw.statusCode,
			"duration", time.Since(start))
	})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// corsMiddleware allows browser clients served from localhost
func corsMiddleware(next http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return isLocalOrigin(origin)
		},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(next)
}

func isLocalOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Scheme != "http" {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1"
}

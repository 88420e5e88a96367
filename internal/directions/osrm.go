// Package directions fetches road routes for itinerary legs from an OSRM server.
package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"golang.org/x/time/rate"

	"github.com/Izazzubayer/Pathly/internal/database"
	"github.com/Izazzubayer/Pathly/internal/logger"
	"github.com/Izazzubayer/Pathly/internal/models"
)

// Route is a road route between two points
type Route struct {
	DistanceMeters float64
	DurationSecs   float64
	Geometry       orb.LineString
}

// Provider returns road routes between coordinates
type Provider interface {
	Route(ctx context.Context, origin, dest models.Coordinates) (*Route, error)
}

// ErrDirectionsFailed is returned when the routing service cannot produce a route
type ErrDirectionsFailed struct {
	Origin models.Coordinates
	Dest   models.Coordinates
	Reason string
}

func (e *ErrDirectionsFailed) Error() string {
	return fmt.Sprintf("directions failed: %s", e.Reason)
}

// Config configures an OSRM client
type Config struct {
	BaseURL   string
	Profile   string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 = unlimited
}

type osrmClient struct {
	baseURL    string
	profile    string
	httpClient *http.Client
	cache      database.RouteCacheRepository
	limiter    *rate.Limiter
	log        *logger.Logger
}

type osrmRouteResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64           `json:"distance"`
		Duration float64           `json:"duration"`
		Geometry *geojson.Geometry `json:"geometry"`
	} `json:"routes"`
}

// NewOSRMClient creates an OSRM route client. cache may be nil.
func NewOSRMClient(cfg Config, cache database.RouteCacheRepository, log *logger.Logger) Provider {
	if cfg.Profile == "" {
		cfg.Profile = "foot"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	return &osrmClient{
		baseURL:    cfg.BaseURL,
		profile:    cfg.Profile,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cache:      cache,
		limiter:    rate.NewLimiter(limit, 1),
		log:        log.Named("osrm"),
	}
}

func samePoint(a, b models.Coordinates) bool {
	return models.RoundCoordinate(a.Lat) == models.RoundCoordinate(b.Lat) &&
		models.RoundCoordinate(a.Lng) == models.RoundCoordinate(b.Lng)
}

func (c *osrmClient) Route(ctx context.Context, origin, dest models.Coordinates) (*Route, error) {
	if samePoint(origin, dest) {
		return &Route{}, nil
	}

	if c.cache != nil {
		cached, err := c.cache.Get(ctx, c.profile, origin, dest)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			return &Route{
				DistanceMeters: cached.DistanceMeters,
				DurationSecs:   cached.DurationSecs,
				Geometry:       cached.Geometry,
			}, nil
		}
	}

	c.log.Debug("cache miss", "origin", origin, "dest", dest, "profile", c.profile)

	route, err := c.fetch(ctx, origin, dest)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		entry := &models.RouteCacheEntry{
			Profile:        c.profile,
			Origin:         origin,
			Destination:    dest,
			DistanceMeters: route.DistanceMeters,
			DurationSecs:   route.DurationSecs,
			Geometry:       route.Geometry,
		}
		if err := c.cache.Set(ctx, entry); err != nil {
			c.log.Warn("failed to cache route", "error", err)
		}
	}

	return route, nil
}

func (c *osrmClient) fetch(ctx context.Context, origin, dest models.Coordinates) (*Route, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	queryURL := fmt.Sprintf("%s/route/v1/%s/%.6f,%.6f;%.6f,%.6f?overview=full&geometries=geojson",
		c.baseURL, c.profile, origin.Lng, origin.Lat, dest.Lng, dest.Lat)

	fail := func(reason string) error {
		return &ErrDirectionsFailed{Origin: origin, Dest: dest, Reason: reason}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return nil, fail(err.Error())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("osrm request failed", "error", err)
		return nil, fail(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Error("osrm api error", "status", resp.StatusCode, "body", string(body))
		return nil, fail(fmt.Sprintf("HTTP %d: %s", resp.StatusCode, string(body)))
	}

	var osrmResp osrmRouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&osrmResp); err != nil {
		return nil, fail(err.Error())
	}

	if osrmResp.Code != "Ok" {
		return nil, fail(fmt.Sprintf("OSRM error: %s %s", osrmResp.Code, osrmResp.Message))
	}
	if len(osrmResp.Routes) == 0 {
		return nil, fail("no route returned")
	}

	r := osrmResp.Routes[0]
	route := &Route{DistanceMeters: r.Distance, DurationSecs: r.Duration}
	if r.Geometry != nil {
		if ls, ok := r.Geometry.Coordinates.(orb.LineString); ok {
			route.Geometry = ls
		}
	}

	c.log.Debug("route fetched", "distance_m", r.Distance, "points", len(route.Geometry))
	return route, nil
}

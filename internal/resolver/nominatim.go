package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/Izazzubayer/Pathly/internal/logger"
	"github.com/Izazzubayer/Pathly/internal/models"
)

// Config configures a Nominatim resolver
type Config struct {
	BaseURL     string
	UserAgent   string
	RateLimit   float64 // requests per second
	Concurrency int
	MaxRetries  int
	Timeout     time.Duration
}

type nominatimResolver struct {
	baseURL     string
	userAgent   string
	httpClient  *http.Client
	limiter     *rate.Limiter
	concurrency int
	maxRetries  int
	backoff     time.Duration
	newID       func() string
	log         *logger.Logger
}

type nominatimResult struct {
	PlaceID     int64  `json:"place_id"`
	OSMType     string `json:"osm_type"`
	OSMID       int64  `json:"osm_id"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// NewNominatim creates a rate-limited Nominatim resolver
func NewNominatim(cfg Config, log *logger.Logger) Resolver {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Pathly/1.0"
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 1
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}

	return &nominatimResolver{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:   cfg.UserAgent,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		limiter:     rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		concurrency: cfg.Concurrency,
		maxRetries:  cfg.MaxRetries,
		backoff:     time.Second,
		newID:       uuid.NewString,
		log:         log.Named("resolver"),
	}
}

// Resolve searches for a candidate, retrying transient failures with
// exponential backoff.
func (r *nominatimResolver) Resolve(ctx context.Context, c Candidate) (*models.Place, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, &ErrResolveFailed{Name: c.Name, Reason: "empty name"}
	}

	var lastErr error
	for i := 0; i < r.maxRetries; i++ {
		place, err := r.search(ctx, c)
		if err == nil {
			r.log.Debug("resolved", "name", c.Name, "attempts", i+1, "id", place.ID)
			return place, nil
		}
		lastErr = err

		var rf *ErrResolveFailed
		if !errors.As(err, &rf) || !rf.retryable {
			return nil, err
		}

		if i < r.maxRetries-1 {
			backoff := r.backoff * time.Duration(1<<uint(i))
			r.log.Warn("retrying", "name", c.Name, "attempt", i+1, "max", r.maxRetries, "backoff", backoff, "error", err)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	r.log.Error("resolve failed", "name", c.Name, "retries", r.maxRetries, "error", lastErr)
	return nil, lastErr
}

// ResolveAll resolves candidates with bounded concurrency. Per-candidate
// failures are reported in the matching Resolution; only cancellation of ctx
// is returned as an error.
func (r *nominatimResolver) ResolveAll(ctx context.Context, candidates []Candidate) ([]Resolution, error) {
	out := make([]Resolution, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, c := range candidates {
		g.Go(func() error {
			out[i].Candidate = c
			place, err := r.Resolve(gctx, c)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				out[i].Error = err.Error()
				return nil
			}
			exact := place.Confidence == models.ConfidenceHigh && !c.HasLocationTag
			out[i].Place = place
			out[i].Reason = ConfidenceReason(c.Source, c.HasLocationTag, exact)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.log.Info("resolution complete", "candidates", len(candidates))
	return out, nil
}

func (r *nominatimResolver) search(ctx context.Context, c Candidate) (*models.Place, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	query := c.Query()
	queryURL := fmt.Sprintf("%s/search?q=%s&format=jsonv2&limit=1", r.baseURL, url.QueryEscape(query))
	r.log.Debug("search request", "query", query, "url", queryURL)

	fail := func(reason string, retryable bool) error {
		return &ErrResolveFailed{Name: c.Name, Reason: reason, retryable: retryable}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return nil, fail(err.Error(), false)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fail(err.Error(), true)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		r.log.Error("nominatim api error", "query", query, "status", resp.StatusCode, "body", string(body))
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, fail(fmt.Sprintf("HTTP %d: %s", resp.StatusCode, string(body)), retryable)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fail(err.Error(), false)
	}
	if len(results) == 0 {
		return nil, fail("no results found", false)
	}

	return r.toPlace(c, results[0])
}

func (r *nominatimResolver) toPlace(c Candidate, res nominatimResult) (*models.Place, error) {
	lat, err := strconv.ParseFloat(res.Lat, 64)
	if err != nil {
		return nil, &ErrResolveFailed{Name: c.Name, Reason: "invalid latitude"}
	}
	lng, err := strconv.ParseFloat(res.Lon, 64)
	if err != nil {
		return nil, &ErrResolveFailed{Name: c.Name, Reason: "invalid longitude"}
	}

	name := res.Name
	if name == "" {
		name = strings.TrimSpace(c.Name)
	}

	id := r.newID()
	if res.OSMID != 0 && res.OSMType != "" {
		id = fmt.Sprintf("osm-%s-%d", res.OSMType, res.OSMID)
	}

	exact := res.Name != "" && strings.EqualFold(strings.TrimSpace(c.Name), res.Name)

	return &models.Place{
		ID:           id,
		Name:         name,
		Address:      res.DisplayName,
		Location:     models.Coordinates{Lat: lat, Lng: lng},
		ActivityType: ActivityFromOSM(res.Category, res.Type),
		Confidence:   Confidence(c.Source, c.HasLocationTag, exact),
	}, nil
}

package directions

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Izazzubayer/Pathly/internal/logger"
	"github.com/Izazzubayer/Pathly/internal/models"
)

// Stats reports the outcome of an enrichment pass
type Stats struct {
	Segments int `json:"segments"`
	Enriched int `json:"enriched"`
	Failed   int `json:"failed"`
}

// Enricher attaches road geometry to the route segments of an itinerary
type Enricher struct {
	provider    Provider
	concurrency int
	log         *logger.Logger
}

func NewEnricher(provider Provider, concurrency int, log *logger.Logger) *Enricher {
	if concurrency < 1 {
		concurrency = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Enricher{provider: provider, concurrency: concurrency, log: log.Named("directions")}
}

// EnrichItinerary fetches a road route for every segment of every day.
// Segments whose lookup fails keep their straight-line estimate; only
// cancellation of ctx is returned as an error.
func (e *Enricher) EnrichItinerary(ctx context.Context, it *models.Itinerary) (Stats, error) {
	var stats Stats
	for i := range it.Days {
		s, err := e.EnrichDay(ctx, &it.Days[i])
		stats.Segments += s.Segments
		stats.Enriched += s.Enriched
		stats.Failed += s.Failed
		if err != nil {
			return stats, err
		}
	}

	e.log.Info("itinerary enriched", "id", it.ID, "segments", stats.Segments, "enriched", stats.Enriched, "failed", stats.Failed)
	return stats, nil
}

// EnrichDay fetches road routes for one day's segments concurrently
func (e *Enricher) EnrichDay(ctx context.Context, day *models.ItineraryDay) (Stats, error) {
	stats := Stats{Segments: len(day.Routes)}
	if len(day.Routes) == 0 {
		return stats, nil
	}

	routes := make([]*Route, len(day.Routes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i := range day.Routes {
		seg := day.Routes[i]
		g.Go(func() error {
			r, err := e.provider.Route(gctx, seg.From.Place.Location, seg.To.Place.Location)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				e.log.Warn("segment lookup failed", "day", day.DayNumber, "from", seg.From.Place.ID, "to", seg.To.Place.ID, "error", err)
				return nil
			}
			routes[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return stats, err
	}

	for i, r := range routes {
		if r == nil {
			stats.Failed++
			continue
		}
		day.Routes[i].Geometry = r.Geometry
		day.Routes[i].RoadDistance = r.DistanceMeters
		day.Routes[i].RoadDuration = r.DurationSecs
		stats.Enriched++
	}

	return stats, nil
}

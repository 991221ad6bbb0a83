// Package search drives the route search: it filters the candidate list
// against the progress store, fans pending routes out across a bounded
// worker pool, walks each route segment by segment with early termination,
// and commits every terminal outcome durably.
package search

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/milesrun/hubhop/internal/flights"
	"github.com/milesrun/hubhop/internal/model"
	"github.com/milesrun/hubhop/internal/refdata"
	"github.com/milesrun/hubhop/internal/store"
)

// Options configures a search run.
type Options struct {
	Workers        int
	RateLimitDelay time.Duration // fixed sleep between a worker's segment queries
	MaxRoutes      int           // routes considered this run; 0 means all
	DepartureDate  string
	Passengers     int
}

// Stats aggregates run-level counters. Counters are updated exactly once per
// terminal route outcome.
type Stats struct {
	Skipped        int64
	Completed      int64
	Discarded      int64
	Errored        int64
	SegmentQueries int64
	// SegmentsSaved counts queries avoided by early termination.
	SegmentsSaved int64
	Elapsed       time.Duration
	// TimeSaved estimates wall time avoided by early termination, from the
	// run's own measured per-segment cost.
	TimeSaved time.Duration
}

// Processed returns the number of routes that reached a terminal state this run.
func (s *Stats) Processed() int64 {
	return s.Completed + s.Discarded + s.Errored
}

// Orchestrator owns one enumerate→search→persist cycle.
type Orchestrator struct {
	store     store.Store
	validator *flights.Validator
	factory   flights.ClientFactory
	opts      Options
	log       *zap.Logger
}

// New creates an Orchestrator. The factory is invoked once per worker; query
// clients are not shared across workers.
func New(st store.Store, validator *flights.Validator, factory flights.ClientFactory, opts Options) *Orchestrator {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Passengers <= 0 {
		opts.Passengers = 1
	}
	return &Orchestrator{
		store:     st,
		validator: validator,
		factory:   factory,
		opts:      opts,
		log:       zap.L().With(zap.String("component", "search.orchestrator")),
	}
}

// pendingRoute carries a route with its position in the ranked list.
type pendingRoute struct {
	route model.Route
	index int
}

// Run searches all pending routes and returns the full persisted result
// collection (this run's completions plus all prior runs'), cheapest first.
// Routes complete in arbitrary order; only the store's ordering is stable.
func (o *Orchestrator) Run(ctx context.Context, routes []model.Route) ([]model.Itinerary, *Stats, error) {
	stats := &Stats{}

	if o.opts.MaxRoutes > 0 && len(routes) > o.opts.MaxRoutes {
		routes = routes[:o.opts.MaxRoutes]
	}

	var pending []pendingRoute
	for i, r := range routes {
		if o.store.IsResolved(r.Signature()) {
			stats.Skipped++
			continue
		}
		pending = append(pending, pendingRoute{route: r, index: i + 1})
	}

	o.log.Info("starting search",
		zap.Int("routes", len(routes)),
		zap.Int64("already_resolved", stats.Skipped),
		zap.Int("pending", len(pending)),
		zap.Int("workers", o.opts.Workers),
		zap.Duration("rate_limit_delay", o.opts.RateLimitDelay),
	)

	if len(pending) == 0 {
		o.log.Info("all routes already resolved")
		results, err := o.store.Results(ctx)
		return results, stats, err
	}

	start := time.Now()

	var completed, discarded, errored, queries, saved atomic.Int64
	var queryTime atomic.Int64 // cumulative nanoseconds spent in segment queries

	queue := make(chan pendingRoute)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(queue)
		for _, pr := range pending {
			select {
			case queue <- pr:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < o.opts.Workers; w++ {
		workerID := fmt.Sprintf("worker-%d", w+1)
		g.Go(func() error {
			client, err := o.factory()
			if err != nil {
				return eris.Wrapf(err, "search: create query client for %s", workerID)
			}
			defer client.Close()

			for pr := range queue {
				outcome := o.searchRoute(gctx, client, workerID, pr, &queries, &queryTime)
				switch outcome.Status {
				case model.ItineraryStatusComplete:
					completed.Add(1)
				case model.ItineraryStatusDiscarded:
					discarded.Add(1)
					saved.Add(int64(len(pr.route) - 1 - outcome.queried))
				case model.ItineraryStatusErrored:
					errored.Add(1)
					saved.Add(int64(len(pr.route) - 1 - outcome.queried))
				}

				processed := completed.Load() + discarded.Load() + errored.Load()
				if processed%10 == 0 || processed <= 20 {
					o.log.Info("progress",
						zap.Int64("completed", completed.Load()),
						zap.Int64("discarded", discarded.Load()),
						zap.Int64("errored", errored.Load()),
						zap.Int64("processed", processed),
						zap.Int("pending", len(pending)),
					)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, stats, eris.Wrap(err, "search: worker pool")
	}

	stats.Completed = completed.Load()
	stats.Discarded = discarded.Load()
	stats.Errored = errored.Load()
	stats.SegmentQueries = queries.Load()
	stats.SegmentsSaved = saved.Load()
	stats.Elapsed = time.Since(start)

	if stats.SegmentQueries > 0 {
		perSegment := time.Duration(queryTime.Load()/stats.SegmentQueries) + o.opts.RateLimitDelay
		stats.TimeSaved = time.Duration(stats.SegmentsSaved) * perSegment
	}

	o.log.Info("search complete",
		zap.Int64("completed", stats.Completed),
		zap.Int64("discarded", stats.Discarded),
		zap.Int64("errored", stats.Errored),
		zap.Duration("elapsed", stats.Elapsed),
		zap.Duration("time_saved", stats.TimeSaved),
	)

	results, err := o.store.Results(ctx)
	if err != nil {
		return nil, stats, eris.Wrap(err, "search: load results")
	}
	return results, stats, nil
}

// routeOutcome is the terminal state of one route's search attempt. aborted
// marks a route interrupted by shutdown: not terminal, not persisted, so a
// later run picks it up again.
type routeOutcome struct {
	Status  model.ItineraryStatus
	queried int // segments actually queried
	aborted bool
}

// searchRoute walks a route's segments in sequence. The first segment with
// no valid offer discards the whole route; a query failure errors it. Either
// way the signature is marked resolved immediately so the route is never
// retried automatically.
func (o *Orchestrator) searchRoute(ctx context.Context, client flights.QueryClient, workerID string, pr pendingRoute, queries, queryTime *atomic.Int64) routeOutcome {
	log := o.log.With(
		zap.String("worker", workerID),
		zap.Int("route_index", pr.index),
	)
	log.Info("searching route", zap.String("route", pr.route.String()))

	sig := pr.route.Signature()
	segments := make([]model.SegmentResult, 0, len(pr.route)-1)
	total := 0.0

	for i := 0; i < len(pr.route)-1; i++ {
		origin := pr.route[i]
		dest := pr.route[i+1]
		originCode := refdata.AirportCode(origin.City)
		destCode := refdata.AirportCode(dest.City)

		segLog := log.With(
			zap.Int("segment", i+1),
			zap.String("origin", originCode),
			zap.String("destination", destCode),
		)
		segLog.Info("querying segment")

		queryStart := time.Now()
		categories, err := client.Query(ctx, originCode, destCode, o.opts.DepartureDate, o.opts.Passengers)
		queries.Add(1)
		queryTime.Add(int64(time.Since(queryStart)))

		if err != nil {
			if ctx.Err() != nil {
				segLog.Info("shutdown during segment query, leaving route pending")
				return routeOutcome{aborted: true}
			}
			segLog.Warn("segment query failed, route errored", zap.Error(err))
			o.markResolved(ctx, sig)
			return routeOutcome{Status: model.ItineraryStatusErrored, queried: i + 1}
		}

		best := o.validator.SelectBest(flights.FlattenOffers(categories))
		if best == nil {
			segLog.Info("no valid offers, discarding route early")
			o.markResolved(ctx, sig)
			return routeOutcome{Status: model.ItineraryStatusDiscarded, queried: i + 1}
		}

		price := flights.ParsePrice(best.Price)
		segments = append(segments, model.SegmentResult{
			Segment:     origin.City + " → " + dest.City,
			Origin:      originCode,
			Destination: destCode,
			Flight:      *best,
			Price:       price,
		})
		total += price
		segLog.Info("segment confirmed",
			zap.String("price", best.Price),
			zap.Strings("route", best.Route),
		)

		// Per-worker rate limiting between segment queries.
		if i < len(pr.route)-2 && o.opts.RateLimitDelay > 0 {
			select {
			case <-time.After(o.opts.RateLimitDelay):
			case <-ctx.Done():
				return routeOutcome{aborted: true}
			}
		}
	}

	it := model.Itinerary{
		RouteIndex:  pr.index,
		Route:       pr.route,
		Segments:    segments,
		TotalPrice:  total,
		Status:      model.ItineraryStatusComplete,
		WorkerID:    workerID,
		CompletedAt: time.Now().UTC(),
	}

	if err := o.store.AppendResult(ctx, it); err != nil {
		// Best-effort persistence: the run continues, this result may be lost.
		log.Error("failed to persist itinerary", zap.Error(err))
	}
	o.markResolved(ctx, sig)

	log.Info("route complete",
		zap.Float64("total_price", total),
		zap.Int("segments", len(segments)),
	)
	return routeOutcome{Status: model.ItineraryStatusComplete, queried: len(pr.route) - 1}
}

func (o *Orchestrator) markResolved(ctx context.Context, sig model.Signature) {
	if err := o.store.MarkResolved(ctx, sig); err != nil {
		o.log.Error("failed to persist progress", zap.Error(err))
	}
}

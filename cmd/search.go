package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/milesrun/hubhop/internal/flights"
	"github.com/milesrun/hubhop/internal/model"
	"github.com/milesrun/hubhop/internal/refdata"
	"github.com/milesrun/hubhop/internal/route"
	"github.com/milesrun/hubhop/internal/search"
	"github.com/milesrun/hubhop/internal/store"
	"github.com/milesrun/hubhop/pkg/gflights"
)

var (
	searchMaxRoutes int
	searchWorkers   int
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one enumerate→search→report cycle",
	Long:  "Generates the ranked route list, skips already-resolved routes, searches the rest across a worker pool, and reports the cheapest complete itineraries.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runSearch(ctx)
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchMaxRoutes, "max-routes", 0, "override max routes to process this run")
	searchCmd.Flags().IntVar(&searchWorkers, "workers", 0, "override worker count")
	rootCmd.AddCommand(searchCmd)

	// Invoking hubhop with no subcommand runs a full search cycle.
	rootCmd.RunE = searchCmd.RunE
}

func runSearch(ctx context.Context) error {
	ds, err := refdata.Load()
	if err != nil {
		return err
	}

	enum := route.NewEnumerator(ds)
	if cfg.Routes.Ceiling > 0 {
		enum.Ceiling = cfg.Routes.Ceiling
	}
	if cfg.Routes.MaxSampled > 0 {
		enum.MaxSampled = cfg.Routes.MaxSampled
	}
	routes := enum.Enumerate()

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := search.Options{
		Workers:        cfg.Search.Workers,
		RateLimitDelay: cfg.Search.RateLimitDelay,
		MaxRoutes:      cfg.Search.MaxRoutes,
		DepartureDate:  cfg.Search.DepartureDate,
		Passengers:     cfg.Search.Passengers,
	}
	if searchMaxRoutes > 0 {
		opts.MaxRoutes = searchMaxRoutes
	}
	if searchWorkers > 0 {
		opts.Workers = searchWorkers
	}

	orch := search.New(st, buildValidator(), scraperFactory(), opts)
	results, stats, err := orch.Run(ctx, routes)
	if err != nil {
		return err
	}

	printSummary(results, stats)
	return nil
}

func buildValidator() *flights.Validator {
	return flights.NewValidator(flights.CarrierSpec{
		Name:    cfg.Airline.Name,
		Aliases: cfg.Airline.Aliases,
		HubCode: cfg.Airline.HubCode,
		HubCity: cfg.Airline.HubCity,
	})
}

// scraperFactory builds one sidecar client per worker; sidecar sessions hold
// browser state and must not be shared.
func scraperFactory() flights.ClientFactory {
	return func() (flights.QueryClient, error) {
		opts := []gflights.Option{
			gflights.WithBaseURL(cfg.Scraper.BaseURL),
			gflights.WithCurrency(cfg.Scraper.Currency),
		}
		if cfg.Scraper.Timeout > 0 {
			opts = append(opts, gflights.WithHTTPClient(&http.Client{Timeout: cfg.Scraper.Timeout}))
		}
		if cfg.Scraper.RatePerSec > 0 {
			opts = append(opts, gflights.WithRateLimit(rate.Limit(cfg.Scraper.RatePerSec), 1))
		}
		if cfg.Scraper.UsePageFilter {
			opts = append(opts, gflights.WithAirlineFilter(cfg.Airline.Name))
		}
		return gflights.NewClient(opts...), nil
	}
}

func printSummary(results []model.Itinerary, stats *search.Stats) {
	complete := filterComplete(results)

	fmt.Printf("\nSearch summary\n")
	fmt.Printf("  completed: %d  discarded: %d  errored: %d  skipped: %d\n",
		stats.Completed, stats.Discarded, stats.Errored, stats.Skipped)
	fmt.Printf("  segment queries: %d  elapsed: %s\n",
		stats.SegmentQueries, stats.Elapsed.Round(time.Second))
	if stats.SegmentsSaved > 0 {
		fmt.Printf("  early termination skipped %d segment queries (~%s saved)\n",
			stats.SegmentsSaved, stats.TimeSaved.Round(time.Second))
	}
	if processed := stats.Processed(); processed > 0 {
		fmt.Printf("  complete-route rate this run: %.1f%%\n",
			float64(stats.Completed)/float64(processed)*100)
	}

	if len(complete) == 0 {
		fmt.Printf("\nNo complete itineraries yet. Run again to process more routes.\n")
		return
	}

	fmt.Printf("\nTop cheapest complete itineraries (%d total):\n", len(complete))
	for i, it := range complete {
		if i == 5 {
			break
		}
		fmt.Printf("\n%d. total %s | easy visa %d/%d\n",
			i+1, formatPrice(it.TotalPrice), it.Route.EasyVisaCount(), len(it.Route))
		fmt.Printf("   %s\n", it.Route.String())
		for _, seg := range it.Segments {
			fmt.Printf("     • %s: %s - %s (via %v)\n",
				seg.Segment, seg.Flight.Price, seg.Flight.Duration, seg.Flight.Route)
		}
	}
}

func filterComplete(results []model.Itinerary) []model.Itinerary {
	var complete []model.Itinerary
	for _, it := range results {
		if it.Status == model.ItineraryStatusComplete {
			complete = append(complete, it)
		}
	}
	return complete
}

func formatPrice(p float64) string {
	digits := strconv.FormatFloat(p, 'f', 0, 64)
	if len(digits) <= 3 {
		return "₹" + digits
	}
	var b strings.Builder
	b.WriteString("₹")
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteString(",")
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteString(",")
		}
	}
	return b.String()
}

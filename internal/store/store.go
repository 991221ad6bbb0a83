// Package store persists search progress (resolved route signatures) and
// completed itineraries across runs. The backing store is swappable; the
// orchestrator only sees this interface.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/milesrun/hubhop/internal/model"
)

// Store is the durable progress/result persistence contract. MarkResolved
// and AppendResult must be safe under concurrent workers; each call is its
// own atomic read-modify-write of the respective collection.
type Store interface {
	// IsResolved reports whether a route signature reached a terminal
	// outcome in this or any previous run.
	IsResolved(sig model.Signature) bool
	// MarkResolved records a signature as terminally resolved. The resolved
	// set grows monotonically.
	MarkResolved(ctx context.Context, sig model.Signature) error
	// ResolvedCount returns the size of the resolved set.
	ResolvedCount() int
	// AppendResult persists a completed itinerary. The stored collection is
	// kept sorted ascending by total price.
	AppendResult(ctx context.Context, it model.Itinerary) error
	// Results returns all persisted itineraries, cheapest first.
	Results(ctx context.Context) ([]model.Itinerary, error)
	// Close releases store resources.
	Close() error
}

// Config selects and configures a store backend.
type Config struct {
	Driver       string `yaml:"driver" mapstructure:"driver"` // file, sqlite, or postgres
	ProgressFile string `yaml:"progress_file" mapstructure:"progress_file"`
	ResultsFile  string `yaml:"results_file" mapstructure:"results_file"`
	Path         string `yaml:"path" mapstructure:"path"` // sqlite database path
	DatabaseURL  string `yaml:"database_url" mapstructure:"database_url"`
}

// Open creates the store named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", "file":
		return NewFile(cfg.ProgressFile, cfg.ResultsFile)
	case "sqlite":
		return NewSQLite(ctx, cfg.Path)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}

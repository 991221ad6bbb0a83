package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/milesrun/hubhop/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it
// for unit tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool

	mu       sync.Mutex
	resolved map[model.Signature]bool
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS resolved_routes (
	signature   TEXT PRIMARY KEY,
	resolved_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS itineraries (
	id           TEXT PRIMARY KEY,
	signature    TEXT NOT NULL,
	status       TEXT NOT NULL,
	total_price  DOUBLE PRECISION NOT NULL,
	data         JSONB NOT NULL,
	completed_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_itineraries_total_price ON itineraries(total_price);
`

// NewPostgres connects a pool, runs the migration, and loads the
// resolved-signature set.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}

	s := &PostgresStore{pool: pool, resolved: make(map[model.Signature]bool)}

	if _, err := pool.Exec(ctx, postgresMigration); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: migrate")
	}
	if err := s.loadResolved(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) loadResolved(ctx context.Context) error {
	rows, err := s.pool.Query(ctx, `SELECT signature FROM resolved_routes`)
	if err != nil {
		return eris.Wrap(err, "postgres: load resolved signatures")
	}
	defer rows.Close()

	for rows.Next() {
		var sig string
		if err := rows.Scan(&sig); err != nil {
			return eris.Wrap(err, "postgres: scan signature")
		}
		s.resolved[model.Signature(sig)] = true
	}
	return eris.Wrap(rows.Err(), "postgres: iterate signatures")
}

func (s *PostgresStore) IsResolved(sig model.Signature) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolved[sig]
}

func (s *PostgresStore) ResolvedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.resolved)
}

func (s *PostgresStore) MarkResolved(ctx context.Context, sig model.Signature) error {
	s.mu.Lock()
	s.resolved[sig] = true
	s.mu.Unlock()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO resolved_routes (signature, resolved_at) VALUES ($1, $2)
		 ON CONFLICT (signature) DO NOTHING`,
		string(sig), time.Now().UTC(),
	)
	return eris.Wrap(err, "postgres: mark resolved")
}

func (s *PostgresStore) AppendResult(ctx context.Context, it model.Itinerary) error {
	data, err := json.Marshal(it)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal itinerary")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO itineraries (id, signature, status, total_price, data, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New().String(), string(it.Route.Signature()), string(it.Status),
		it.TotalPrice, data, it.CompletedAt,
	)
	return eris.Wrap(err, "postgres: insert itinerary")
}

func (s *PostgresStore) Results(ctx context.Context) ([]model.Itinerary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM itineraries ORDER BY total_price ASC, completed_at ASC`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query itineraries")
	}
	defer rows.Close()

	var out []model.Itinerary
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "postgres: scan itinerary")
		}
		var it model.Itinerary
		if err := json.Unmarshal(data, &it); err != nil {
			return nil, eris.Wrap(err, "postgres: parse itinerary")
		}
		out = append(out, it)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate itineraries")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

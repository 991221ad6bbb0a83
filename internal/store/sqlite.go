package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/milesrun/hubhop/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB

	mu       sync.Mutex
	resolved map[model.Signature]bool
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS resolved_routes (
	signature   TEXT PRIMARY KEY,
	resolved_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS itineraries (
	id           TEXT PRIMARY KEY,
	signature    TEXT NOT NULL,
	status       TEXT NOT NULL,
	total_price  REAL NOT NULL,
	data         TEXT NOT NULL,
	completed_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_itineraries_total_price ON itineraries(total_price);
CREATE INDEX IF NOT EXISTS idx_itineraries_signature ON itineraries(signature);
`

// NewSQLite opens a SQLite database at the given path, configures WAL mode,
// runs the migration, and loads the resolved-signature set.
func NewSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	if _, err := db.ExecContext(ctx, sqliteMigration); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "sqlite: migrate")
	}

	s := &SQLiteStore{db: db, resolved: make(map[model.Signature]bool)}

	rows, err := db.QueryContext(ctx, `SELECT signature FROM resolved_routes`)
	if err != nil {
		db.Close()
		return nil, eris.Wrap(err, "sqlite: load resolved signatures")
	}
	defer rows.Close()
	for rows.Next() {
		var sig string
		if err := rows.Scan(&sig); err != nil {
			db.Close()
			return nil, eris.Wrap(err, "sqlite: scan signature")
		}
		s.resolved[model.Signature(sig)] = true
	}
	if err := rows.Err(); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "sqlite: iterate signatures")
	}

	return s, nil
}

func (s *SQLiteStore) IsResolved(sig model.Signature) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolved[sig]
}

func (s *SQLiteStore) ResolvedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.resolved)
}

func (s *SQLiteStore) MarkResolved(ctx context.Context, sig model.Signature) error {
	s.mu.Lock()
	s.resolved[sig] = true
	s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO resolved_routes (signature, resolved_at) VALUES (?, ?)
		 ON CONFLICT(signature) DO NOTHING`,
		string(sig), time.Now().UTC(),
	)
	return eris.Wrap(err, "sqlite: mark resolved")
}

func (s *SQLiteStore) AppendResult(ctx context.Context, it model.Itinerary) error {
	data, err := json.Marshal(it)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal itinerary")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO itineraries (id, signature, status, total_price, data, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), string(it.Route.Signature()), string(it.Status),
		it.TotalPrice, string(data), it.CompletedAt,
	)
	return eris.Wrap(err, "sqlite: insert itinerary")
}

// Results reads back all itineraries ordered by total price; the ORDER BY
// stands in for the file store's sort-on-write.
func (s *SQLiteStore) Results(ctx context.Context) ([]model.Itinerary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM itineraries ORDER BY total_price ASC, completed_at ASC`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query itineraries")
	}
	defer rows.Close()

	var out []model.Itinerary
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan itinerary")
		}
		var it model.Itinerary
		if err := json.Unmarshal([]byte(data), &it); err != nil {
			return nil, eris.Wrap(err, "sqlite: parse itinerary")
		}
		out = append(out, it)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate itineraries")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

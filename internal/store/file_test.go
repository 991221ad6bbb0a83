package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milesrun/hubhop/internal/model"
)

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewFile(filepath.Join(dir, "progress.json"), filepath.Join(dir, "results.json"))
	require.NoError(t, err)
	return s
}

func itineraryWithPrice(city string, price float64) model.Itinerary {
	return model.Itinerary{
		Route: model.Route{
			{Continent: "Asia", CountryCode: "IN", City: city, EasyVisa: true},
		},
		TotalPrice:  price,
		Status:      model.ItineraryStatusComplete,
		CompletedAt: time.Now().UTC(),
	}
}

func TestFileStore_EmptyStart(t *testing.T) {
	s := newFileStore(t)

	assert.Equal(t, 0, s.ResolvedCount())
	assert.False(t, s.IsResolved("anything"))

	results, err := s.Results(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFileStore_MarkResolvedPersists(t *testing.T) {
	dir := t.TempDir()
	progress := filepath.Join(dir, "progress.json")
	results := filepath.Join(dir, "results.json")

	s, err := NewFile(progress, results)
	require.NoError(t, err)

	sig := model.Signature("Cairo|EG|Africa;Delhi|IN|Asia")
	require.NoError(t, s.MarkResolved(context.Background(), sig))
	assert.True(t, s.IsResolved(sig))

	// Reopen and verify the signature survived.
	reopened, err := NewFile(progress, results)
	require.NoError(t, err)
	assert.True(t, reopened.IsResolved(sig))
	assert.Equal(t, 1, reopened.ResolvedCount())

	// The on-disk document carries metadata alongside the signature list.
	data, err := os.ReadFile(progress)
	require.NoError(t, err)
	var doc progressDoc
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, 1, doc.TotalResolved)
	assert.False(t, doc.LastUpdated.IsZero())
}

func TestFileStore_MarkResolvedIdempotent(t *testing.T) {
	s := newFileStore(t)
	sig := model.Signature("a")

	require.NoError(t, s.MarkResolved(context.Background(), sig))
	require.NoError(t, s.MarkResolved(context.Background(), sig))
	assert.Equal(t, 1, s.ResolvedCount())
}

func TestFileStore_ResultsSortedByPrice(t *testing.T) {
	s := newFileStore(t)
	ctx := context.Background()

	require.NoError(t, s.AppendResult(ctx, itineraryWithPrice("Delhi", 57000)))
	require.NoError(t, s.AppendResult(ctx, itineraryWithPrice("Mumbai", 42000)))
	require.NoError(t, s.AppendResult(ctx, itineraryWithPrice("Bangkok", 61000)))

	results, err := s.Results(ctx)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 42000.0, results[0].TotalPrice)
	assert.Equal(t, 57000.0, results[1].TotalPrice)
	assert.Equal(t, 61000.0, results[2].TotalPrice)
}

func TestFileStore_ResultsSortSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	progress := filepath.Join(dir, "progress.json")
	resultsPath := filepath.Join(dir, "results.json")
	ctx := context.Background()

	s, err := NewFile(progress, resultsPath)
	require.NoError(t, err)
	require.NoError(t, s.AppendResult(ctx, itineraryWithPrice("Delhi", 90000)))
	require.NoError(t, s.AppendResult(ctx, itineraryWithPrice("Mumbai", 10000)))

	reopened, err := NewFile(progress, resultsPath)
	require.NoError(t, err)
	require.NoError(t, reopened.AppendResult(ctx, itineraryWithPrice("Bangkok", 50000)))

	results, err := reopened.Results(ctx)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 10000.0, results[0].TotalPrice)
	assert.Equal(t, 50000.0, results[1].TotalPrice)
	assert.Equal(t, 90000.0, results[2].TotalPrice)
}

func TestFileStore_ConcurrentWriters(t *testing.T) {
	s := newFileStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sig := model.Signature(string(rune('a' + n)))
			assert.NoError(t, s.MarkResolved(ctx, sig))
			assert.NoError(t, s.AppendResult(ctx, itineraryWithPrice("City", float64(n*1000))))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, s.ResolvedCount())
	results, err := s.Results(ctx)
	require.NoError(t, err)
	require.Len(t, results, 20)
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i-1].TotalPrice, results[i].TotalPrice)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "mongo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")
}

package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rotisserie/eris"

	"github.com/milesrun/hubhop/internal/model"
)

// progressDoc is the on-disk shape of the progress file. Overwritten
// wholesale on each update.
type progressDoc struct {
	ResolvedSignatures []model.Signature `json:"resolved_signatures"`
	LastUpdated        time.Time         `json:"last_updated"`
	TotalResolved      int               `json:"total_resolved"`
}

// FileStore keeps progress and results in two JSON files. The two
// collections are protected by independent locks; every mutation rewrites
// its file via temp-and-rename so an interrupted process never leaves a
// half-written document.
type FileStore struct {
	progressPath string
	resultsPath  string

	progressMu sync.Mutex
	resolved   map[model.Signature]bool

	resultsMu sync.Mutex
	results   []model.Itinerary
}

// NewFile opens a file-backed store, loading whatever state was last durably
// written. Missing files are a valid empty start.
func NewFile(progressPath, resultsPath string) (*FileStore, error) {
	s := &FileStore{
		progressPath: progressPath,
		resultsPath:  resultsPath,
		resolved:     make(map[model.Signature]bool),
	}

	if err := s.loadProgress(); err != nil {
		return nil, err
	}
	if err := s.loadResults(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) loadProgress() error {
	data, err := os.ReadFile(s.progressPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return eris.Wrap(err, "store: read progress file")
	}

	var doc progressDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return eris.Wrap(err, "store: parse progress file")
	}
	for _, sig := range doc.ResolvedSignatures {
		s.resolved[sig] = true
	}
	return nil
}

func (s *FileStore) loadResults() error {
	data, err := os.ReadFile(s.resultsPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return eris.Wrap(err, "store: read results file")
	}

	if err := json.Unmarshal(data, &s.results); err != nil {
		return eris.Wrap(err, "store: parse results file")
	}
	return nil
}

func (s *FileStore) IsResolved(sig model.Signature) bool {
	s.progressMu.Lock()
	defer s.progressMu.Unlock()
	return s.resolved[sig]
}

func (s *FileStore) ResolvedCount() int {
	s.progressMu.Lock()
	defer s.progressMu.Unlock()
	return len(s.resolved)
}

func (s *FileStore) MarkResolved(_ context.Context, sig model.Signature) error {
	s.progressMu.Lock()
	defer s.progressMu.Unlock()

	s.resolved[sig] = true

	sigs := make([]model.Signature, 0, len(s.resolved))
	for k := range s.resolved {
		sigs = append(sigs, k)
	}
	sort.Slice(sigs, func(i, j int) bool { return sigs[i] < sigs[j] })

	doc := progressDoc{
		ResolvedSignatures: sigs,
		LastUpdated:        time.Now().UTC(),
		TotalResolved:      len(sigs),
	}
	return writeJSON(s.progressPath, doc)
}

func (s *FileStore) AppendResult(_ context.Context, it model.Itinerary) error {
	s.resultsMu.Lock()
	defer s.resultsMu.Unlock()

	s.results = append(s.results, it)
	sort.SliceStable(s.results, func(i, j int) bool {
		return s.results[i].TotalPrice < s.results[j].TotalPrice
	})
	return writeJSON(s.resultsPath, s.results)
}

func (s *FileStore) Results(_ context.Context) ([]model.Itinerary, error) {
	s.resultsMu.Lock()
	defer s.resultsMu.Unlock()

	out := make([]model.Itinerary, len(s.results))
	copy(out, s.results)
	return out, nil
}

func (s *FileStore) Close() error { return nil }

// writeJSON rewrites path atomically via a temp file in the same directory.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "store: marshal %s", path)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return eris.Wrapf(err, "store: create temp for %s", path)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return eris.Wrapf(err, "store: write temp for %s", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return eris.Wrapf(err, "store: close temp for %s", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return eris.Wrapf(err, "store: rename %s", path)
	}
	return nil
}

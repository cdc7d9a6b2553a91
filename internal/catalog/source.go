package catalog

import (
	"context"
	"sync"
)

// Source supplies the full record catalog for one directory. The filter
// engine does not care whether records come from fixtures, storage, or a
// remote feed; a page loads its catalog once and filters it in memory.
type Source interface {
	Records(ctx context.Context) ([]Record, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) ([]Record, error)

func (f SourceFunc) Records(ctx context.Context) ([]Record, error) {
	return f(ctx)
}

// StaticSource serves a fixed catalog. Reads get a copy so callers can sort
// or truncate freely without touching the shared slice.
type StaticSource struct {
	mu      sync.RWMutex
	records []Record
}

// Static returns a Source over a fixed in-memory catalog.
func Static(records []Record) *StaticSource {
	return &StaticSource{records: records}
}

func (s *StaticSource) Records(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Replace swaps the whole catalog atomically. Partial updates do not exist:
// a refresh either lands completely or not at all.
func (s *StaticSource) Replace(records []Record) {
	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
}

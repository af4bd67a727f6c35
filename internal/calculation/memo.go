package calculation

import (
	"context"
	"sync"

	"github.com/rgehrsitz/wealthtax/internal/domain"
)

// Memo remembers the last result per dataset, so repeated evaluations with
// unchanged parameters (a redraw, a slider nudged back) skip the engine.
// Datasets are immutable, so the dataset pointer is part of the key.
type Memo struct {
	engine *Engine

	mu      sync.Mutex
	entries map[*domain.CountryDataset]memoEntry
	hits    int
	misses  int
}

type memoEntry struct {
	params domain.ReformParameters
	result *domain.SimulationResult
}

// NewMemo wraps engine with a last-value cache.
func NewMemo(engine *Engine) *Memo {
	return &Memo{
		engine:  engine,
		entries: make(map[*domain.CountryDataset]memoEntry),
	}
}

// Simulate returns the cached result when (dataset, taxRate, threshold)
// matches the previous call for that dataset.
func (m *Memo) Simulate(ctx context.Context, ds *domain.CountryDataset, params domain.ReformParameters) (*domain.SimulationResult, error) {
	m.mu.Lock()
	if entry, ok := m.entries[ds]; ok && entry.params == params {
		m.hits++
		m.mu.Unlock()
		return entry.result, nil
	}
	m.misses++
	m.mu.Unlock()

	result, err := m.engine.Simulate(ctx, ds, params)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.entries[ds] = memoEntry{params: params, result: result}
	m.mu.Unlock()
	return result, nil
}

// Stats returns cache hits and misses.
func (m *Memo) Stats() (hits, misses int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits, m.misses
}

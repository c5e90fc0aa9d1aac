package history

import (
	"context"
	"slices"
	"sync"

	"github.com/vijay-prabhu/subjectline/internal/analyzer"
)

// Memory is an in-process Store
type Memory struct {
	mu      sync.RWMutex
	limit   int
	results []analyzer.Result
}

// NewMemory creates an empty in-memory history keeping at most limit entries
func NewMemory(limit int) *Memory {
	return &Memory{limit: normalizeLimit(limit)}
}

// Append adds r at the front and trims the tail
func (m *Memory) Append(_ context.Context, r analyzer.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.results = slices.Insert(m.results, 0, clone(r))
	if len(m.results) > m.limit {
		m.results = m.results[:m.limit]
	}
	return nil
}

// List returns a copy of the history, newest first
func (m *Memory) List(_ context.Context) ([]analyzer.Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]analyzer.Result, len(m.results))
	for i, r := range m.results {
		out[i] = clone(r)
	}
	return out, nil
}

// Get returns the result with the given id
func (m *Memory) Get(_ context.Context, id string) (analyzer.Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.results {
		if r.ID == id {
			return clone(r), nil
		}
	}
	return analyzer.Result{}, ErrNotFound
}

// Remove deletes the result with the given id
func (m *Memory) Remove(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.results, func(r analyzer.Result) bool { return r.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	m.results = slices.Delete(m.results, i, i+1)
	return nil
}

// Search returns copies of the results matching q, newest first
func (m *Memory) Search(_ context.Context, q Query) ([]analyzer.Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []analyzer.Result
	for _, r := range m.results {
		if q.Match(r) {
			out = append(out, clone(r))
		}
	}
	return out, nil
}

// Clear empties the history
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.results = nil
	return nil
}

// clone copies the slices so callers cannot mutate stored results
func clone(r analyzer.Result) analyzer.Result {
	r.Feedback = slices.Clone(r.Feedback)
	r.Checks = slices.Clone(r.Checks)
	return r
}

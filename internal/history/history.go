// Package history keeps a bounded, newest-first record of past analyses.
package history

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vijay-prabhu/subjectline/internal/analyzer"
)

// DefaultLimit is the number of analyses kept when no limit is configured
const DefaultLimit = 10

// ErrNotFound is returned when an analysis id is not in the history
var ErrNotFound = errors.New("analysis not found in history")

// Store is a bounded history of analyses, newest first
type Store interface {
	// Append records a result, dropping the oldest entries beyond the limit
	Append(ctx context.Context, r analyzer.Result) error
	// List returns the stored results, newest first
	List(ctx context.Context) ([]analyzer.Result, error)
	// Get returns the result with the given id or ErrNotFound
	Get(ctx context.Context, id string) (analyzer.Result, error)
	// Remove deletes the result with the given id or returns ErrNotFound
	Remove(ctx context.Context, id string) error
	// Clear deletes every stored result
	Clear(ctx context.Context) error
	// Search returns the stored results matching q, newest first
	Search(ctx context.Context, q Query) ([]analyzer.Result, error)
}

// Query filters stored results. Zero fields match everything.
type Query struct {
	Text     string // case-insensitive substring of the subject line
	MinScore *int
	MaxScore *int
	Since    time.Time
}

// Match reports whether r satisfies q
func (q Query) Match(r analyzer.Result) bool {
	if q.Text != "" && !strings.Contains(strings.ToLower(r.SubjectLine), strings.ToLower(q.Text)) {
		return false
	}
	if q.MinScore != nil && r.Score < *q.MinScore {
		return false
	}
	if q.MaxScore != nil && r.Score > *q.MaxScore {
		return false
	}
	if !q.Since.IsZero() && r.Timestamp.Before(q.Since) {
		return false
	}
	return true
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

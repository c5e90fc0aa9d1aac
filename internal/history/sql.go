package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vijay-prabhu/subjectline/internal/analyzer"
	"github.com/vijay-prabhu/subjectline/internal/database"
)

// SQL is a Store backed by the SQLite database
type SQL struct {
	db    *database.DB
	limit int
}

// NewSQL creates a history over db keeping at most limit entries
func NewSQL(db *database.DB, limit int) *SQL {
	return &SQL{db: db, limit: normalizeLimit(limit)}
}

// Append stores r and trims older rows in the same transaction
func (s *SQL) Append(ctx context.Context, r analyzer.Result) error {
	a, err := toAnalysis(r)
	if err != nil {
		return err
	}
	if err := s.db.AppendAnalysis(ctx, a, s.limit); err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// List returns the stored results, newest first
func (s *SQL) List(ctx context.Context) ([]analyzer.Result, error) {
	return s.list(ctx, database.ListOptions{})
}

// Search returns the stored results matching q, newest first
func (s *SQL) Search(ctx context.Context, q Query) ([]analyzer.Result, error) {
	opts := database.ListOptions{
		MinScore: q.MinScore,
		MaxScore: q.MaxScore,
	}
	if q.Text != "" {
		opts.Contains = &q.Text
	}
	if !q.Since.IsZero() {
		opts.Since = &q.Since
	}
	return s.list(ctx, opts)
}

func (s *SQL) list(ctx context.Context, opts database.ListOptions) ([]analyzer.Result, error) {
	opts.Limit = s.limit
	analyses, err := s.db.ListAnalyses(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}

	results := make([]analyzer.Result, 0, len(analyses))
	for i := range analyses {
		r, err := fromAnalysis(&analyses[i])
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// Get returns the result with the given id
func (s *SQL) Get(ctx context.Context, id string) (analyzer.Result, error) {
	a, err := s.db.GetAnalysis(ctx, id)
	if err != nil {
		return analyzer.Result{}, fmt.Errorf("failed to get analysis: %w", err)
	}
	if a == nil {
		return analyzer.Result{}, ErrNotFound
	}
	return fromAnalysis(a)
}

// Remove deletes the result with the given id
func (s *SQL) Remove(ctx context.Context, id string) error {
	err := s.db.DeleteAnalysis(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	return nil
}

// Clear deletes every stored result
func (s *SQL) Clear(ctx context.Context) error {
	if _, err := s.db.DeleteAllAnalyses(ctx); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func toAnalysis(r analyzer.Result) (*database.Analysis, error) {
	a := &database.Analysis{
		ID:          r.ID,
		SubjectLine: r.SubjectLine,
		Score:       r.Score,
		Feedback:    r.Feedback,
		AnalyzedAt:  r.Timestamp,
	}

	if len(r.Checks) > 0 {
		b, err := json.Marshal(r.Checks)
		if err != nil {
			return nil, fmt.Errorf("failed to encode checks: %w", err)
		}
		checks := string(b)
		a.Checks = &checks
	}
	return a, nil
}

func fromAnalysis(a *database.Analysis) (analyzer.Result, error) {
	r := analyzer.Result{
		ID:          a.ID,
		SubjectLine: a.SubjectLine,
		Score:       a.Score,
		Feedback:    a.Feedback,
		Timestamp:   a.AnalyzedAt,
	}

	if a.Checks != nil {
		if err := json.Unmarshal([]byte(*a.Checks), &r.Checks); err != nil {
			return analyzer.Result{}, fmt.Errorf("failed to decode checks for %s: %w", a.ID, err)
		}
	}
	return r, nil
}

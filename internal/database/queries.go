package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// execer is satisfied by both *sql.DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// scanner is satisfied by both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

const analysisColumns = `id, subject_line, score, feedback, checks, analyzed_at, created_at`

// CreateAnalysis inserts a new analysis
func (db *DB) CreateAnalysis(ctx context.Context, a *Analysis) error {
	return insertAnalysis(ctx, db, a)
}

// AppendAnalysis inserts an analysis and drops everything but the newest keep rows,
// atomically
func (db *DB) AppendAnalysis(ctx context.Context, a *Analysis, keep int) error {
	return db.Transaction(ctx, func(tx *sql.Tx) error {
		if err := insertAnalysis(ctx, tx, a); err != nil {
			return err
		}
		_, err := trimAnalyses(ctx, tx, keep)
		return err
	})
}

func insertAnalysis(ctx context.Context, ex execer, a *Analysis) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	a.CreatedAt = time.Now()
	if a.AnalyzedAt.IsZero() {
		a.AnalyzedAt = a.CreatedAt
	}

	feedback, err := encodeFeedback(a.Feedback)
	if err != nil {
		return fmt.Errorf("failed to encode feedback: %w", err)
	}

	_, err = ex.ExecContext(ctx, `
		INSERT INTO analyses (`+analysisColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		a.ID, a.SubjectLine, a.Score, feedback, NullString(a.Checks),
		a.AnalyzedAt.UTC(), a.CreatedAt.UTC(),
	)
	return err
}

// TrimAnalyses deletes all but the newest keep analyses
func (db *DB) TrimAnalyses(ctx context.Context, keep int) (int64, error) {
	return trimAnalyses(ctx, db, keep)
}

func trimAnalyses(ctx context.Context, ex execer, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}

	result, err := ex.ExecContext(ctx, `
		DELETE FROM analyses
		WHERE seq NOT IN (SELECT seq FROM analyses ORDER BY seq DESC LIMIT ?)
	`, keep)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func scanAnalysis(row scanner) (*Analysis, error) {
	a := &Analysis{}
	var feedback string
	var checks sql.NullString

	if err := row.Scan(
		&a.ID, &a.SubjectLine, &a.Score, &feedback, &checks, &a.AnalyzedAt, &a.CreatedAt,
	); err != nil {
		return nil, err
	}

	fb, err := decodeFeedback(feedback)
	if err != nil {
		return nil, fmt.Errorf("failed to decode feedback for %s: %w", a.ID, err)
	}
	a.Feedback = fb
	a.Checks = StringPtr(checks)
	return a, nil
}

// GetAnalysis retrieves an analysis by ID
func (db *DB) GetAnalysis(ctx context.Context, id string) (*Analysis, error) {
	a, err := scanAnalysis(db.QueryRowContext(ctx, `
		SELECT `+analysisColumns+` FROM analyses WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListAnalyses retrieves analyses newest first, with optional filters
func (db *DB) ListAnalyses(ctx context.Context, opts ListOptions) ([]Analysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM analyses WHERE 1=1`
	args := []any{}

	if opts.Contains != nil {
		query += ` AND LOWER(subject_line) LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(strings.ToLower(*opts.Contains))+"%")
	}
	if opts.MinScore != nil {
		query += " AND score >= ?"
		args = append(args, *opts.MinScore)
	}
	if opts.MaxScore != nil {
		query += " AND score <= ?"
		args = append(args, *opts.MaxScore)
	}
	if opts.Since != nil {
		query += " AND analyzed_at >= ?"
		// Timestamps are stored as UTC text, so compare in UTC
		args = append(args, opts.Since.UTC())
	}

	query += " ORDER BY seq DESC"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	return db.queryAnalyses(ctx, query, args...)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// SearchAnalyses finds analyses whose subject line contains the query (case-insensitive)
func (db *DB) SearchAnalyses(ctx context.Context, query string) ([]Analysis, error) {
	return db.ListAnalyses(ctx, ListOptions{Contains: &query})
}

func (db *DB) queryAnalyses(ctx context.Context, query string, args ...any) ([]Analysis, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, *a)
	}

	return analyses, rows.Err()
}

// DeleteAnalysis removes an analysis by ID
func (db *DB) DeleteAnalysis(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// DeleteAllAnalyses removes every analysis and returns how many were deleted
func (db *DB) DeleteAllAnalyses(ctx context.Context) (int64, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM analyses`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// CountAnalyses returns the number of stored analyses
func (db *DB) CountAnalyses(ctx context.Context) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analyses`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

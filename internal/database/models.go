package database

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Analysis is a stored subject line evaluation
type Analysis struct {
	ID          string    `json:"id"`
	SubjectLine string    `json:"subject_line"`
	Score       int       `json:"score"`
	Feedback    []string  `json:"feedback"`
	Checks      *string   `json:"checks,omitempty"` // raw JSON, owned by the caller
	AnalyzedAt  time.Time `json:"analyzed_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListOptions contains options for listing analyses
type ListOptions struct {
	Contains *string // case-insensitive substring of the subject line
	MinScore *int
	MaxScore *int
	Since    *time.Time
	Limit    int
}

// NullString is a helper to convert *string to sql.NullString
func NullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// StringPtr converts sql.NullString to *string
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func encodeFeedback(feedback []string) (string, error) {
	if feedback == nil {
		feedback = []string{}
	}
	b, err := json.Marshal(feedback)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeFeedback(s string) ([]string, error) {
	var feedback []string
	if err := json.Unmarshal([]byte(s), &feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// Package analyzer scores email subject lines against a fixed, ordered set of
// heuristic rules and produces human-readable feedback.
//
// Analysis is deterministic given the lexicon: the only inputs besides the
// subject line are the clock and the id generator used to stamp each Result.
package analyzer

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vijay-prabhu/subjectline/internal/config"
)

// Scoring bounds and thresholds
const (
	BaseScore       = 50
	MinScore        = 0
	MaxScore        = 100
	MinLength       = 20
	MaxLength       = 60
	MaxSpecialChars = 2
)

// BlankInputMessage is the only feedback returned for blank input
const BlankInputMessage = "Please enter a subject line."

// Clock supplies the time an analysis is stamped with
type Clock interface {
	Now() time.Time
}

// SystemClock is the default Clock, backed by time.Now
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to the Clock interface
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Check is the outcome of a single rule.
// Message is empty when the branch taken has nothing to say.
type Check struct {
	Rule    string `json:"rule"`
	Delta   int    `json:"delta"`
	Message string `json:"message,omitempty"`
}

// Result is a single, self-contained analysis of one subject line
type Result struct {
	ID          string    `json:"id"`
	SubjectLine string    `json:"subject_line"`
	Score       int       `json:"score"`
	Feedback    []string  `json:"feedback"`
	Checks      []Check   `json:"checks,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Blank reports whether the result came from the blank-input short circuit
func (r Result) Blank() bool {
	return strings.TrimSpace(r.SubjectLine) == ""
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithClock overrides the clock used for result timestamps
func WithClock(c Clock) Option {
	return func(a *Analyzer) {
		a.clock = c
	}
}

// WithIDFunc overrides the result id generator
func WithIDFunc(fn func() string) Option {
	return func(a *Analyzer) {
		a.newID = fn
	}
}

// Analyzer evaluates subject lines. It holds no mutable state after
// construction and is safe for concurrent use.
type Analyzer struct {
	engagement lexicon
	spam       lexicon
	clock      Clock
	newID      func() string
}

// New creates an Analyzer using the given word lists
func New(cfg config.LexiconConfig, opts ...Option) *Analyzer {
	a := &Analyzer{
		engagement: newLexicon(cfg.EngagementWords),
		spam:       newLexicon(cfg.SpamWords),
		clock:      SystemClock{},
		newID:      func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var defaultAnalyzer = New(config.LexiconConfig{
	EngagementWords: config.DefaultEngagementWords,
	SpamWords:       config.DefaultSpamWords,
})

// Analyze evaluates a subject line with the default lexicon
func Analyze(subjectLine string) Result {
	return defaultAnalyzer.Analyze(subjectLine)
}

// Analyze runs every rule in order and returns the clamped score with feedback
func (a *Analyzer) Analyze(subjectLine string) Result {
	result := Result{
		ID:          a.newID(),
		SubjectLine: subjectLine,
		Timestamp:   a.clock.Now(),
	}

	// Blank input short-circuits every rule
	if strings.TrimSpace(subjectLine) == "" {
		result.Score = 0
		result.Feedback = []string{BlankInputMessage}
		return result
	}

	s := newSubject(subjectLine)
	score := BaseScore
	result.Checks = make([]Check, 0, len(rules))
	result.Feedback = make([]string, 0, len(rules))

	for _, r := range rules {
		c := r.eval(a, s)
		c.Rule = r.name
		score += c.Delta
		result.Checks = append(result.Checks, c)
		if c.Message != "" {
			result.Feedback = append(result.Feedback, c.Message)
		}
	}

	result.Score = clamp(score)
	return result
}

// EngagementWords returns the engagement lexicon in declaration order
func (a *Analyzer) EngagementWords() []string {
	return a.engagement.words()
}

// SpamWords returns the spam lexicon in declaration order
func (a *Analyzer) SpamWords() []string {
	return a.spam.words()
}

func clamp(score int) int {
	return max(MinScore, min(MaxScore, score))
}

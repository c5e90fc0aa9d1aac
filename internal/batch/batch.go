// Package batch evaluates many subject lines at once.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vijay-prabhu/subjectline/internal/analyzer"
	"github.com/vijay-prabhu/subjectline/internal/history"
)

// DefaultWorkers is used when Options.Workers is not positive
const DefaultWorkers = 4

// Options controls a batch run
type Options struct {
	Workers    int
	OnProgress ProgressCallback

	// Store receives every non-blank result, in input order, once analysis is done
	Store history.Store
}

// Run analyzes subjects in parallel and returns results in input order
func Run(ctx context.Context, a *analyzer.Analyzer, subjects []string, opts Options) ([]analyzer.Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make([]analyzer.Result, len(subjects))
	report := newReporter(PhaseAnalyzing, len(subjects), opts.OnProgress)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, s := range subjects {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.Analyze(s)
			report.done()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.Store != nil {
		if err := save(ctx, opts.Store, results, opts.OnProgress); err != nil {
			return results, err
		}
	}

	return results, nil
}

func save(ctx context.Context, store history.Store, results []analyzer.Result, cb ProgressCallback) error {
	report := newReporter(PhaseSaving, len(results), cb)
	for _, r := range results {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !r.Blank() {
			if err := store.Append(ctx, r); err != nil {
				return fmt.Errorf("failed to save %q: %w", r.SubjectLine, err)
			}
		}
		report.done()
	}
	return nil
}

// reporter serializes progress callbacks from concurrent workers
type reporter struct {
	mu       sync.Mutex
	progress Progress
	cb       ProgressCallback
}

func newReporter(phase Phase, total int, cb ProgressCallback) *reporter {
	r := &reporter{
		progress: Progress{Phase: phase, Total: total, StartedAt: time.Now()},
		cb:       cb,
	}
	if cb != nil {
		cb(r.progress)
	}
	return r
}

func (r *reporter) done() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.progress.Current++
	if r.cb != nil {
		r.cb(r.progress)
	}
}

// ReadLines reads one subject line per line, skipping blank lines
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read subject lines: %w", err)
	}
	return lines, nil
}

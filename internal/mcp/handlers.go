package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/vijay-prabhu/subjectline/internal/analyzer"
	"github.com/vijay-prabhu/subjectline/internal/history"
	"github.com/vijay-prabhu/subjectline/internal/output"
)

func (s *Server) handleAnalyze(ctx context.Context, req *mcp.CallToolRequest, args analyzeInput) (*mcp.CallToolResult, analysisOutput, error) {
	r := s.analyzer.Analyze(args.SubjectLine)

	save := args.Save == nil || *args.Save
	saved := false
	if save && !r.Blank() {
		if err := s.store.Append(ctx, r); err != nil {
			s.logger.Error("failed to save analysis", zap.String("id", r.ID), zap.Error(err))
			return nil, analysisOutput{}, fmt.Errorf("failed to save analysis: %w", err)
		}
		saved = true
	}

	s.logger.Debug("analyzed subject line",
		zap.String("id", r.ID),
		zap.Int("score", r.Score),
		zap.Bool("saved", saved),
	)

	out := toAnalysisOutput(r)
	out.Saved = saved

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: formatAnalysis(r)},
		},
	}, out, nil
}

func (s *Server) handleList(ctx context.Context, req *mcp.CallToolRequest, args listInput) (*mcp.CallToolResult, listOutput, error) {
	results, err := s.store.List(ctx)
	if err != nil {
		return nil, listOutput{}, err
	}
	if args.Limit > 0 && len(results) > args.Limit {
		results = results[:args.Limit]
	}

	out := listOutput{
		Count:    len(results),
		Analyses: make([]analysisSummary, 0, len(results)),
	}
	for _, r := range results {
		out.Analyses = append(out.Analyses, analysisSummary{
			ID:          r.ID,
			SubjectLine: r.SubjectLine,
			Score:       r.Score,
			AnalyzedAt:  r.Timestamp.Format(time.RFC3339),
		})
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: formatList(results)},
		},
	}, out, nil
}

func (s *Server) handleGet(ctx context.Context, req *mcp.CallToolRequest, args idInput) (*mcp.CallToolResult, analysisOutput, error) {
	r, err := s.get(ctx, args.ID)
	if err != nil {
		return nil, analysisOutput{}, err
	}

	out := toAnalysisOutput(r)
	out.Saved = true

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: formatAnalysis(r)},
		},
	}, out, nil
}

func (s *Server) handleDelete(ctx context.Context, req *mcp.CallToolRequest, args idInput) (*mcp.CallToolResult, deleteOutput, error) {
	if strings.TrimSpace(args.ID) == "" {
		return nil, deleteOutput{}, fmt.Errorf("id is required")
	}
	if err := s.store.Remove(ctx, args.ID); err != nil {
		if errors.Is(err, history.ErrNotFound) {
			return nil, deleteOutput{}, fmt.Errorf("analysis not found: %s", args.ID)
		}
		return nil, deleteOutput{}, err
	}

	s.logger.Info("deleted analysis", zap.String("id", args.ID))

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("Deleted analysis %s", args.ID)},
		},
	}, deleteOutput{ID: args.ID, Deleted: true}, nil
}

func (s *Server) handleClear(ctx context.Context, req *mcp.CallToolRequest, args clearInput) (*mcp.CallToolResult, clearOutput, error) {
	results, err := s.store.List(ctx)
	if err != nil {
		return nil, clearOutput{}, err
	}
	if err := s.store.Clear(ctx); err != nil {
		return nil, clearOutput{}, err
	}

	s.logger.Info("cleared history", zap.Int("removed", len(results)))

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("Cleared %d analyses", len(results))},
		},
	}, clearOutput{Removed: len(results)}, nil
}

func (s *Server) handleStats(ctx context.Context, req *mcp.CallToolRequest, args statsInput) (*mcp.CallToolResult, statsOutput, error) {
	results, err := s.store.List(ctx)
	if err != nil {
		return nil, statsOutput{}, err
	}
	stats := history.Summarize(results)

	out := statsOutput{
		Count:   stats.Count,
		Average: stats.Average,
		Strong:  stats.Strong,
		Weak:    stats.Weak,
	}
	if stats.Best != nil {
		out.BestID = stats.Best.ID
		out.BestScore = &stats.Best.Score
	}
	if stats.Worst != nil {
		out.WorstID = stats.Worst.ID
		out.WorstScore = &stats.Worst.Score
	}

	var sb strings.Builder
	if err := output.TableTo(&sb, stats); err != nil {
		return nil, statsOutput{}, err
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: sb.String()},
		},
	}, out, nil
}

func (s *Server) get(ctx context.Context, id string) (analyzer.Result, error) {
	if strings.TrimSpace(id) == "" {
		return analyzer.Result{}, fmt.Errorf("id is required")
	}
	r, err := s.store.Get(ctx, id)
	if errors.Is(err, history.ErrNotFound) {
		return analyzer.Result{}, fmt.Errorf("analysis not found: %s", id)
	}
	return r, err
}

func toAnalysisOutput(r analyzer.Result) analysisOutput {
	out := analysisOutput{
		ID:          r.ID,
		SubjectLine: r.SubjectLine,
		Score:       r.Score,
		Rating:      output.Rating(r.Score),
		Feedback:    make([]feedbackItem, 0, len(r.Feedback)),
		AnalyzedAt:  r.Timestamp.Format(time.RFC3339),
	}
	for _, msg := range r.Feedback {
		out.Feedback = append(out.Feedback, feedbackItem{Message: msg, Tone: string(analyzer.ToneOf(msg))})
	}
	return out
}

// formatAnalysis renders a result the way the CLI does, without color
func formatAnalysis(r analyzer.Result) string {
	var sb strings.Builder
	if err := output.TableTo(&sb, r); err != nil {
		return fmt.Sprintf("Score: %d/100", r.Score)
	}
	return sb.String()
}

func formatList(results []analyzer.Result) string {
	if len(results) == 0 {
		return "No analyses in history."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d analyses (newest first):\n\n", len(results))
	for _, r := range results {
		fmt.Fprintf(&sb, "%3d  %s  [%s]\n", r.Score, r.SubjectLine, r.ID)
	}
	return sb.String()
}

package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vijay-prabhu/subjectline/internal/analyzer"
	"github.com/vijay-prabhu/subjectline/internal/config"
	"github.com/vijay-prabhu/subjectline/internal/history"
)

type testEnv struct {
	store   *history.Memory
	session *mcp.ClientSession
	logs    *observer.ObservedLogs
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	core, logs := observer.New(zapcore.DebugLevel)
	store := history.NewMemory(history.DefaultLimit)
	a := analyzer.New(config.LexiconConfig{
		EngagementWords: config.DefaultEngagementWords,
		SpamWords:       config.DefaultSpamWords,
	})

	s, err := NewServer(&Config{Name: "subjectline", Version: "test", Logger: zap.New(core)}, a, store)
	require.NoError(t, err)

	st, ct := mcp.NewInMemoryTransports()
	ss, err := s.Connect(ctx, st)
	require.NoError(t, err)
	t.Cleanup(func() { ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	cs, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })

	return &testEnv{store: store, session: cs, logs: logs}
}

func (e *testEnv) call(t *testing.T, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	res, err := e.session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	return res
}

func decode[T any](t *testing.T, res *mcp.CallToolResult) T {
	t.Helper()
	var out T
	b, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func TestNewServer_RequiresDependencies(t *testing.T) {
	_, err := NewServer(nil, nil, history.NewMemory(0))
	assert.Error(t, err)

	_, err = NewServer(nil, analyzer.New(config.LexiconConfig{}), nil)
	assert.Error(t, err)

	s, err := NewServer(nil, analyzer.New(config.LexiconConfig{}), history.NewMemory(0))
	require.NoError(t, err)
	assert.NotNil(t, s.logger)
}

func TestListTools(t *testing.T) {
	env := setup(t)

	res, err := env.session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{ToolAnalyze, ToolList, ToolGet, ToolDelete, ToolClear, ToolStats}, names)
}

func TestAnalyzeTool(t *testing.T) {
	env := setup(t)

	res := env.call(t, ToolAnalyze, map[string]any{"subject_line": "How can {name} save 20% this week?"})
	require.False(t, res.IsError)

	out := decode[analysisOutput](t, res)
	assert.Equal(t, 70, out.Score)
	assert.Equal(t, "Strong", out.Rating)
	assert.True(t, out.Saved)
	require.Len(t, out.Feedback, 5)
	assert.Equal(t, string(analyzer.ToneGood), out.Feedback[0].Tone)
	assert.Contains(t, text(t, res), "Score:    70/100 (Strong)")

	saved, err := env.store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, out.ID, saved[0].ID)

	assert.Equal(t, 1, env.logs.FilterMessage("analyzed subject line").Len())
}

func TestAnalyzeTool_NoSave(t *testing.T) {
	env := setup(t)

	res := env.call(t, ToolAnalyze, map[string]any{"subject_line": "Buy now!", "save": false})
	require.False(t, res.IsError)

	out := decode[analysisOutput](t, res)
	assert.Equal(t, 50, out.Score)
	assert.False(t, out.Saved)

	saved, _ := env.store.List(context.Background())
	assert.Empty(t, saved)
}

func TestAnalyzeTool_BlankNotSaved(t *testing.T) {
	env := setup(t)

	res := env.call(t, ToolAnalyze, map[string]any{"subject_line": "   "})
	require.False(t, res.IsError)

	out := decode[analysisOutput](t, res)
	assert.Equal(t, 0, out.Score)
	assert.False(t, out.Saved)
	require.Len(t, out.Feedback, 1)
	assert.Equal(t, analyzer.BlankInputMessage, out.Feedback[0].Message)

	saved, _ := env.store.List(context.Background())
	assert.Empty(t, saved)
}

func TestListAndGetTools(t *testing.T) {
	env := setup(t)

	for _, s := range []string{"Buy now!", "WIN A FREE PRIZE NOW!!!", "Don't miss our spring sale"} {
		env.call(t, ToolAnalyze, map[string]any{"subject_line": s})
	}

	res := env.call(t, ToolList, map[string]any{"limit": 2})
	require.False(t, res.IsError)
	list := decode[listOutput](t, res)
	require.Equal(t, 2, list.Count)
	assert.Equal(t, "Don't miss our spring sale", list.Analyses[0].SubjectLine)
	assert.Equal(t, "WIN A FREE PRIZE NOW!!!", list.Analyses[1].SubjectLine)

	res = env.call(t, ToolGet, map[string]any{"id": list.Analyses[1].ID})
	require.False(t, res.IsError)
	got := decode[analysisOutput](t, res)
	assert.Equal(t, 35, got.Score)
	assert.Len(t, got.Feedback, 8)
}

func TestGetTool_NotFound(t *testing.T) {
	env := setup(t)

	res := env.call(t, ToolGet, map[string]any{"id": "missing"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "analysis not found: missing")
}

func TestDeleteTool(t *testing.T) {
	env := setup(t)

	out := decode[analysisOutput](t, env.call(t, ToolAnalyze, map[string]any{"subject_line": "Buy now!"}))

	res := env.call(t, ToolDelete, map[string]any{"id": out.ID})
	require.False(t, res.IsError)
	assert.True(t, decode[deleteOutput](t, res).Deleted)

	res = env.call(t, ToolDelete, map[string]any{"id": out.ID})
	assert.True(t, res.IsError)
}

func TestClearAndStatsTools(t *testing.T) {
	env := setup(t)

	env.call(t, ToolAnalyze, map[string]any{"subject_line": "How can {name} save 20% this week?"})
	env.call(t, ToolAnalyze, map[string]any{"subject_line": "Buy now!"})

	res := env.call(t, ToolStats, nil)
	require.False(t, res.IsError)
	stats := decode[statsOutput](t, res)
	assert.Equal(t, 2, stats.Count)
	assert.InDelta(t, 60.0, stats.Average, 0.001)
	require.NotNil(t, stats.BestScore)
	require.NotNil(t, stats.WorstScore)
	assert.Equal(t, 70, *stats.BestScore)
	assert.Equal(t, 50, *stats.WorstScore)

	res = env.call(t, ToolClear, nil)
	require.False(t, res.IsError)
	assert.Equal(t, 2, decode[clearOutput](t, res).Removed)

	stats = decode[statsOutput](t, env.call(t, ToolStats, nil))
	assert.Zero(t, stats.Count)
	assert.Nil(t, stats.BestScore)
	assert.Nil(t, stats.WorstScore)
}

func TestStatsTool_ZeroScore(t *testing.T) {
	env := setup(t)

	out := decode[analysisOutput](t, env.call(t, ToolAnalyze, map[string]any{"subject_line": "MIRACLE $$$!!!"}))
	require.Equal(t, 0, out.Score)

	res := env.call(t, ToolStats, nil)
	require.False(t, res.IsError)

	var raw map[string]any
	b, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, out.ID, raw["best_id"])
	assert.Contains(t, raw, "best_score")
	assert.Contains(t, raw, "worst_score")

	stats := decode[statsOutput](t, res)
	require.NotNil(t, stats.BestScore)
	assert.Equal(t, 0, *stats.BestScore)
}

func TestResources(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	env.call(t, ToolAnalyze, map[string]any{"subject_line": "Limited seats for our webinar"})

	res, err := env.session.ReadResource(ctx, &mcp.ReadResourceParams{URI: ResourceHistory})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Contains(t, res.Contents[0].Text, "Limited seats for our webinar")

	res, err = env.session.ReadResource(ctx, &mcp.ReadResourceParams{URI: ResourceLexicon})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)

	var lex struct {
		EngagementWords []string `json:"engagement_words"`
		SpamWords       []string `json:"spam_words"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &lex))
	assert.Equal(t, config.DefaultEngagementWords, lex.EngagementWords)
	assert.Contains(t, lex.SpamWords, "nigerian prince")
}

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/subjectline/internal/analyzer"
	"github.com/vijay-prabhu/subjectline/internal/batch"
	"github.com/vijay-prabhu/subjectline/internal/history"
	"github.com/vijay-prabhu/subjectline/internal/output"
)

func TestSubjectFromArgs(t *testing.T) {
	got, err := subjectFromArgs([]string{"How", "can", "{name}", "save?"}, strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, "How can {name} save?", got)

	got, err = subjectFromArgs(nil, strings.NewReader("Buy now!\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "Buy now!", got)

	got, err = subjectFromArgs(nil, strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestResolveAnalysis(t *testing.T) {
	ctx := context.Background()
	store := history.NewMemory(0)

	ids := []string{"ab12-0001", "ab34-0002", "cd56-0003"}
	for _, id := range ids {
		r := analyzer.Analyze("Don't miss our spring sale")
		r.ID = id
		require.NoError(t, store.Append(ctx, r))
	}

	r, err := resolveAnalysis(ctx, store, "cd56-0003")
	require.NoError(t, err)
	assert.Equal(t, "cd56-0003", r.ID)

	r, err = resolveAnalysis(ctx, store, "ab3")
	require.NoError(t, err)
	assert.Equal(t, "ab34-0002", r.ID)

	_, err = resolveAnalysis(ctx, store, "ab")
	assert.ErrorContains(t, err, "matches 2 analyses")

	_, err = resolveAnalysis(ctx, store, "zz")
	assert.ErrorIs(t, err, history.ErrNotFound)
}

func TestResolveAnalysis_EmptyID(t *testing.T) {
	ctx := context.Background()
	store := history.NewMemory(0)
	require.NoError(t, store.Append(ctx, analyzer.Analyze("Don't miss our spring sale")))

	for _, id := range []string{"", "   "} {
		_, err := resolveAnalysis(ctx, store, id)
		assert.ErrorContains(t, err, "id is required")
	}

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestProgressPrinter(t *testing.T) {
	var buf bytes.Buffer

	plain := &output.Terminal{Out: &buf}
	progressPrinter(plain)(batch.Progress{Phase: batch.PhaseAnalyzing, Current: 1, Total: 2})
	assert.Empty(t, buf.String())

	tty := &output.Terminal{Out: &buf, IsTerminal: true}
	progressPrinter(tty)(batch.Progress{Phase: batch.PhaseAnalyzing, Current: 1, Total: 4})
	assert.Contains(t, buf.String(), "analyzing 1/4 (25%)")
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	SetVersionInfo("1.2.3", "abc123", "today")

	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "subjectline 1.2.3")
	assert.Contains(t, buf.String(), "commit: abc123")
}

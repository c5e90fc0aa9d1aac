package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/subjectline/internal/analyzer"
	"github.com/vijay-prabhu/subjectline/internal/config"
	"github.com/vijay-prabhu/subjectline/internal/database"
)

func newTestAnalyzer() *analyzer.Analyzer {
	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	n := 0
	return analyzer.New(
		config.LexiconConfig{EngagementWords: config.DefaultEngagementWords, SpamWords: config.DefaultSpamWords},
		analyzer.WithClock(analyzer.ClockFunc(func() time.Time {
			return base.Add(time.Duration(n) * time.Minute)
		})),
		analyzer.WithIDFunc(func() string {
			n++
			return fmt.Sprintf("result-%02d", n)
		}),
	)
}

type storeFactory func(t *testing.T, limit int) Store

func stores() map[string]storeFactory {
	return map[string]storeFactory{
		"memory": func(t *testing.T, limit int) Store {
			return NewMemory(limit)
		},
		"sql": func(t *testing.T, limit int) Store {
			db, err := database.Open(filepath.Join(t.TempDir(), "history.db"))
			require.NoError(t, err)
			t.Cleanup(func() { db.Close() })
			return NewSQL(db, limit)
		},
	}
}

func TestStore_AppendNewestFirst(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := factory(t, 0)
			a := newTestAnalyzer()

			first := a.Analyze("Buy now!")
			second := a.Analyze("How can {name} save 20% this week?")
			require.NoError(t, store.Append(ctx, first))
			require.NoError(t, store.Append(ctx, second))

			got, err := store.List(ctx)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, second.ID, got[0].ID)
			assert.Equal(t, first.ID, got[1].ID)

			assert.Equal(t, second.SubjectLine, got[0].SubjectLine)
			assert.Equal(t, second.Score, got[0].Score)
			assert.Equal(t, second.Feedback, got[0].Feedback)
			assert.Equal(t, second.Checks, got[0].Checks)
			assert.True(t, second.Timestamp.Equal(got[0].Timestamp))
		})
	}
}

func TestStore_CapsAtLimit(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := factory(t, 0)
			a := newTestAnalyzer()

			var ids []string
			for i := 0; i < DefaultLimit+3; i++ {
				r := a.Analyze(fmt.Sprintf("Weekly digest number %d for you", i))
				ids = append(ids, r.ID)
				require.NoError(t, store.Append(ctx, r))
			}

			got, err := store.List(ctx)
			require.NoError(t, err)
			require.Len(t, got, DefaultLimit)
			assert.Equal(t, ids[len(ids)-1], got[0].ID)
			assert.Equal(t, ids[3], got[DefaultLimit-1].ID)
		})
	}
}

func TestStore_CustomLimit(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := factory(t, 2)
			a := newTestAnalyzer()

			for i := 0; i < 4; i++ {
				require.NoError(t, store.Append(ctx, a.Analyze("Spring sale starts soon")))
			}

			got, err := store.List(ctx)
			require.NoError(t, err)
			assert.Len(t, got, 2)
		})
	}
}

func TestStore_GetAndRemove(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := factory(t, 0)
			a := newTestAnalyzer()

			keep := a.Analyze("Don't miss our spring sale")
			drop := a.Analyze("WIN A FREE PRIZE NOW!!!")
			require.NoError(t, store.Append(ctx, keep))
			require.NoError(t, store.Append(ctx, drop))

			got, err := store.Get(ctx, drop.ID)
			require.NoError(t, err)
			assert.Equal(t, 35, got.Score)

			require.NoError(t, store.Remove(ctx, drop.ID))

			_, err = store.Get(ctx, drop.ID)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.ErrorIs(t, store.Remove(ctx, drop.ID), ErrNotFound)

			list, err := store.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, keep.ID, list[0].ID)
		})
	}
}

func TestStore_Clear(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := factory(t, 0)
			a := newTestAnalyzer()

			for i := 0; i < 3; i++ {
				require.NoError(t, store.Append(ctx, a.Analyze("Limited seats for our webinar")))
			}
			require.NoError(t, store.Clear(ctx))

			list, err := store.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, list)

			// Clearing twice is harmless
			assert.NoError(t, store.Clear(ctx))
		})
	}
}

func TestStore_Search(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := factory(t, 0)
			a := newTestAnalyzer()

			for _, s := range []string{"Buy now!", "WIN A FREE PRIZE NOW!!!", "How can {name} save 20% this week?"} {
				require.NoError(t, store.Append(ctx, a.Analyze(s)))
			}

			got, err := store.Search(ctx, Query{Text: "now"})
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "WIN A FREE PRIZE NOW!!!", got[0].SubjectLine)

			minScore := 50
			got, err = store.Search(ctx, Query{MinScore: &minScore})
			require.NoError(t, err)
			assert.Len(t, got, 2)

			maxScore := 40
			got, err = store.Search(ctx, Query{Text: "NOW", MaxScore: &maxScore})
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, 35, got[0].Score)

			got, err = store.Search(ctx, Query{Text: "webinar"})
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestStore_SearchMatchesLiterally(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := factory(t, 0)
			a := newTestAnalyzer()

			for _, s := range []string{"Save 200 dollars", "abc deal", "Visit the café today", "Save 20% on a_c units"} {
				require.NoError(t, store.Append(ctx, a.Analyze(s)))
			}

			for _, text := range []string{"20%", "a_c", "%", "_"} {
				got, err := store.Search(ctx, Query{Text: text})
				require.NoError(t, err)
				require.Len(t, got, 1, text)
				assert.Equal(t, "Save 20% on a_c units", got[0].SubjectLine, text)
			}

			got, err := store.Search(ctx, Query{Text: "café"})
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "Visit the café today", got[0].SubjectLine)
		})
	}
}

func TestStore_SearchSinceInOtherZone(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := factory(t, 0)

			r := newTestAnalyzer().Analyze("Don't miss our spring sale")
			require.Equal(t, time.UTC, r.Timestamp.Location())
			require.NoError(t, store.Append(ctx, r))

			plus5 := time.FixedZone("UTC+5", 5*60*60)

			got, err := store.Search(ctx, Query{Since: r.Timestamp.Add(-time.Hour).In(plus5)})
			require.NoError(t, err)
			assert.Len(t, got, 1)

			got, err = store.Search(ctx, Query{Since: r.Timestamp.Add(time.Hour).In(plus5)})
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestQuery_Since(t *testing.T) {
	r := analyzer.Result{SubjectLine: "x", Timestamp: time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)}

	assert.True(t, Query{}.Match(r))
	assert.True(t, Query{Since: r.Timestamp}.Match(r))
	assert.False(t, Query{Since: r.Timestamp.Add(time.Second)}.Match(r))
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemory(0)
	r := analyzer.Analyze("Buy now!")
	require.NoError(t, store.Append(ctx, r))

	list, _ := store.List(ctx)
	list[0].Feedback[0] = "tampered"
	list[0].Score = 99

	got, err := store.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.Feedback[0], got.Feedback[0])
	assert.Equal(t, 50, got.Score)
}

func TestSummarize(t *testing.T) {
	results := []analyzer.Result{
		{ID: "d", Score: 70},
		{ID: "c", Score: 35},
		{ID: "b", Score: 70},
		{ID: "a", Score: 35},
		{ID: "e", Score: 50},
	}

	stats := Summarize(results)

	assert.Equal(t, 5, stats.Count)
	assert.InDelta(t, 52.0, stats.Average, 0.0001)
	assert.Equal(t, 2, stats.Strong)
	assert.Equal(t, 2, stats.Weak)
	require.NotNil(t, stats.Best)
	require.NotNil(t, stats.Worst)
	assert.Equal(t, "d", stats.Best.ID, "ties go to the newest")
	assert.Equal(t, "c", stats.Worst.ID, "ties go to the newest")
}

func TestSummarize_Empty(t *testing.T) {
	stats := Summarize(nil)

	assert.Zero(t, stats.Count)
	assert.Zero(t, stats.Average)
	assert.Nil(t, stats.Best)
	assert.Nil(t, stats.Worst)
}

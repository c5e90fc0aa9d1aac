package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vijay-prabhu/subjectline/internal/analyzer"
	"github.com/vijay-prabhu/subjectline/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View and manage past analyses",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent analyses, newest first",
	Long: `List the analyses kept in history, newest first.

Examples:
  subjectline history list
  subjectline history list --search sale
  subjectline history list --min-score 70 --since 24h`,
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an analysis with its feedback",
	Long:  `Show an analysis. The id may be shortened to any unique prefix.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Short:   "Delete an analysis",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE:    runHistoryDelete,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every analysis",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

var (
	historySearch   string
	historyMinScore int
	historyMaxScore int
	historySince    time.Duration
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyListCmd.Flags().StringVarP(&historySearch, "search", "s", "", "Only subject lines containing this text")
	historyListCmd.Flags().IntVar(&historyMinScore, "min-score", -1, "Only scores at or above this")
	historyListCmd.Flags().IntVar(&historyMaxScore, "max-score", -1, "Only scores at or below this")
	historyListCmd.Flags().DurationVar(&historySince, "since", 0, "Only analyses newer than this (e.g. 24h)")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	q := history.Query{Text: historySearch}
	if historyMinScore >= 0 {
		q.MinScore = &historyMinScore
	}
	if historyMaxScore >= 0 {
		q.MaxScore = &historyMaxScore
	}
	if historySince > 0 {
		q.Since = time.Now().Add(-historySince)
	}

	results, err := a.store.Search(ctx, q)
	if err != nil {
		return err
	}
	if results == nil {
		results = []analyzer.Result{}
	}

	return render(cmd, results)
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	r, err := resolveAnalysis(ctx, a.store, args[0])
	if err != nil {
		return err
	}

	return render(cmd, r)
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	r, err := resolveAnalysis(ctx, a.store, args[0])
	if err != nil {
		return err
	}
	if err := a.store.Remove(ctx, r.ID); err != nil {
		return err
	}

	a.logger.Info("deleted analysis", zap.String("id", r.ID))
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s: %s\n", r.ID, r.SubjectLine)
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.store.Clear(ctx); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
	return nil
}

// resolveAnalysis finds an analysis by full id or unique id prefix
func resolveAnalysis(ctx context.Context, store history.Store, id string) (analyzer.Result, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return analyzer.Result{}, fmt.Errorf("id is required")
	}

	r, err := store.Get(ctx, id)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, history.ErrNotFound) {
		return analyzer.Result{}, err
	}

	results, err := store.List(ctx)
	if err != nil {
		return analyzer.Result{}, err
	}

	var matches []analyzer.Result
	for _, r := range results {
		if strings.HasPrefix(r.ID, id) {
			matches = append(matches, r)
		}
	}

	switch len(matches) {
	case 0:
		return analyzer.Result{}, fmt.Errorf("%w: %s", history.ErrNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return analyzer.Result{}, fmt.Errorf("id prefix %q matches %d analyses", id, len(matches))
	}
}

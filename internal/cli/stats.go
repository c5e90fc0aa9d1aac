package cli

import (
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/subjectline/internal/history"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the analyses in history",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	results, err := a.store.List(ctx)
	if err != nil {
		return err
	}

	return render(cmd, history.Summarize(results))
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/subjectline/internal/output"
)

var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Show the engagement and spam word lists in use",
	Args:  cobra.NoArgs,
	RunE:  runLexicon,
}

func init() {
	rootCmd.AddCommand(lexiconCmd)
}

func runLexicon(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	return render(cmd, output.Lexicon{
		EngagementWords: a.analyzer.EngagementWords(),
		SpamWords:       a.analyzer.SpamWords(),
	})
}

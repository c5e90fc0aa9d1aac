package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/vijay-prabhu/subjectline/internal/output"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [subject line...]",
	Short: "Score a subject line",
	Long: `Score an email subject line and print feedback.

Arguments are joined with spaces. With no arguments the subject line is
read from stdin.

Examples:
  subjectline analyze "Don't miss our spring sale"
  subjectline analyze How can {name} save 20% this week?
  echo "Buy now!" | subjectline analyze -o json`,
	RunE: runAnalyze,
}

var (
	analyzeNoSave bool
	analyzeDelay  time.Duration
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&analyzeNoSave, "no-save", false, "Do not record the result in history")
	analyzeCmd.Flags().DurationVar(&analyzeDelay, "delay", -1, "Pause before showing results (default from config analysis.delay_ms)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	subject, err := subjectFromArgs(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), !analyzeNoSave)
	if err != nil {
		return err
	}
	defer a.Close()

	result := a.analyzer.Analyze(subject)
	a.logger.Debug("analyzed subject line", zap.String("id", result.ID), zap.Int("score", result.Score))

	delay := analyzeDelay
	if delay < 0 {
		delay = a.cfg.Analysis.Delay()
	}
	if err := output.NewStderrTerminal().Wait(ctx, delay, "Analyzing..."); err != nil {
		return err
	}

	// Blank input is reported but never recorded
	if a.store != nil && !result.Blank() {
		if err := a.store.Append(ctx, result); err != nil {
			return fmt.Errorf("failed to save analysis: %w", err)
		}
		a.logger.Info("saved analysis", zap.String("id", result.ID))
	}

	return render(cmd, result)
}

// subjectFromArgs joins args, or reads stdin when there are none and stdin is not a terminal
func subjectFromArgs(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read subject line from stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

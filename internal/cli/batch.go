package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vijay-prabhu/subjectline/internal/batch"
	"github.com/vijay-prabhu/subjectline/internal/output"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file|->",
	Short: "Score many subject lines, one per line",
	Long: `Score every subject line in a file (or stdin with "-"), one per line.
Blank lines are skipped.

Examples:
  subjectline batch subjects.txt
  subjectline batch --save --workers 8 subjects.txt
  cat subjects.txt | subjectline batch - -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

var (
	batchWorkers int
	batchSave    bool
)

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "Parallel workers (default from config batch.workers)")
	batchCmd.Flags().BoolVar(&batchSave, "save", false, "Record results in history (only the newest history.limit are kept)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	subjects, err := readSubjects(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), batchSave)
	if err != nil {
		return err
	}
	defer a.Close()

	workers := batchWorkers
	if workers <= 0 {
		workers = a.cfg.Batch.Workers
	}

	term := output.NewStderrTerminal()
	opts := batch.Options{
		Workers:    workers,
		Store:      a.store,
		OnProgress: progressPrinter(term),
	}

	a.logger.Debug("starting batch", zap.Int("subjects", len(subjects)), zap.Int("workers", workers))

	results, err := batch.Run(ctx, a.analyzer, subjects, opts)
	term.ClearLine()
	if err != nil {
		return err
	}

	return render(cmd, results)
}

func readSubjects(path string, stdin io.Reader) ([]string, error) {
	if path == "-" {
		return batch.ReadLines(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return batch.ReadLines(f)
}

// progressPrinter renders batch progress on a single terminal line
func progressPrinter(t *output.Terminal) batch.ProgressCallback {
	return func(p batch.Progress) {
		if !t.IsTerminal {
			return
		}
		line := fmt.Sprintf("%s %s %d/%d (%d%%)",
			t.Spinner(),
			t.Color(output.PhaseColor(string(p.Phase)), string(p.Phase)),
			p.Current, p.Total, p.Percentage())
		if eta := output.FormatETA(p.ETA()); eta != "" {
			line += t.Color(output.ColorGray, " ETA "+eta)
		}
		t.Status(line)
	}
}

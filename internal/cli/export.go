package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/subjectline/internal/output"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export history to CSV or JSON",
	Long: `Export the analyses in history.

Supported formats:
  - csv: Comma-separated values (spreadsheet-compatible)
  - json: JSON array of analysis objects

Examples:
  subjectline export --format=csv > analyses.csv
  subjectline export --format=json --file analyses.json`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportFormat string
	exportFile   string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format (csv, json)")
	exportCmd.Flags().StringVarP(&exportFile, "file", "f", "", "Write to this file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
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

	var w io.Writer = cmd.OutOrStdout()
	if exportFile != "" {
		f, err := os.Create(exportFile)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportFile, err)
		}
		defer f.Close()
		w = f
	}

	return output.Export(w, exportFormat, results)
}

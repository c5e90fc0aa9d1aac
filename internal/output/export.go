package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/vijay-prabhu/subjectline/internal/analyzer"
)

// ExportRow is one analysis flattened for export
type ExportRow struct {
	ID          string   `json:"id"`
	SubjectLine string   `json:"subject_line"`
	Score       int      `json:"score"`
	Rating      string   `json:"rating"`
	Length      int      `json:"length"`
	Feedback    []string `json:"feedback"`
	AnalyzedAt  string   `json:"analyzed_at"`
}

// ToExportRow flattens a result
func ToExportRow(r analyzer.Result) ExportRow {
	return ExportRow{
		ID:          r.ID,
		SubjectLine: r.SubjectLine,
		Score:       r.Score,
		Rating:      Rating(r.Score),
		Length:      len([]rune(r.SubjectLine)),
		Feedback:    r.Feedback,
		AnalyzedAt:  r.Timestamp.Format(time.RFC3339),
	}
}

// Export writes results in the given format (csv or json)
func Export(w io.Writer, format string, results []analyzer.Result) error {
	switch format {
	case "csv":
		return ExportCSV(w, results)
	case "json":
		return ExportJSON(w, results)
	default:
		return fmt.Errorf("unknown format: %s (use csv or json)", format)
	}
}

// ExportCSV writes one row per result. Feedback entries are joined with " | ".
func ExportCSV(w io.Writer, results []analyzer.Result) error {
	cw := csv.NewWriter(w)

	header := []string{"id", "subject_line", "score", "rating", "length", "feedback", "analyzed_at"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range results {
		row := ToExportRow(r)
		record := []string{
			row.ID,
			row.SubjectLine,
			strconv.Itoa(row.Score),
			row.Rating,
			strconv.Itoa(row.Length),
			strings.Join(row.Feedback, " | "),
			row.AnalyzedAt,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportJSON writes the results as a JSON array of export rows
func ExportJSON(w io.Writer, results []analyzer.Result) error {
	rows := make([]ExportRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, ToExportRow(r))
	}
	return JSONTo(w, rows)
}

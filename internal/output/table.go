package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/vijay-prabhu/subjectline/internal/analyzer"
	"github.com/vijay-prabhu/subjectline/internal/history"
)

// Feedback markers by tone
const (
	MarkGood    = "✓"
	MarkCaution = "!"
)

// Table writes data as a formatted table to stdout, colored on a terminal
func Table(data any) error {
	return tableWith(NewTerminal(), data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data any) error {
	return tableWith(plainTerminal(w), data)
}

func tableWith(t *Terminal, data any) error {
	switch v := data.(type) {
	case analyzer.Result:
		return resultDetail(t, &v)
	case *analyzer.Result:
		return resultDetail(t, v)
	case []analyzer.Result:
		return resultsTable(t.Out, v)
	case history.Stats:
		return statsTable(t, &v)
	case *history.Stats:
		return statsTable(t, v)
	case Lexicon:
		return lexiconTable(t.Out, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

// Lexicon is the pair of word lists the analyzer matches against
type Lexicon struct {
	EngagementWords []string `json:"engagement_words"`
	SpamWords       []string `json:"spam_words"`
}

// Rating is a one-word label for a score
func Rating(score int) string {
	switch {
	case score >= history.StrongScore:
		return "Strong"
	case score >= history.WeakScore:
		return "Fair"
	default:
		return "Weak"
	}
}

// ScoreColor returns the color for a score
func ScoreColor(score int) string {
	switch {
	case score >= history.StrongScore:
		return ColorGreen
	case score >= history.WeakScore:
		return ColorYellow
	default:
		return ColorRed
	}
}

// Marker returns the feedback marker for a message
func Marker(message string) string {
	if analyzer.ToneOf(message) == analyzer.ToneGood {
		return MarkGood
	}
	return MarkCaution
}

func resultDetail(t *Terminal, r *analyzer.Result) error {
	w := t.Out

	fmt.Fprintf(w, "Subject:  %s\n", r.SubjectLine)
	score := fmt.Sprintf("%d/100 (%s)", r.Score, Rating(r.Score))
	fmt.Fprintf(w, "Score:    %s\n", t.Color(ScoreColor(r.Score), score))
	if r.ID != "" {
		fmt.Fprintf(w, "ID:       %s\n", r.ID)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Feedback:")
	for _, msg := range r.Feedback {
		mark := Marker(msg)
		color := ColorYellow
		if mark == MarkGood {
			color = ColorGreen
		}
		fmt.Fprintf(w, "  %s %s\n", t.Color(color, mark), msg)
	}

	return nil
}

func resultsTable(w io.Writer, results []analyzer.Result) error {
	if len(results) == 0 {
		fmt.Fprintln(w, "No analyses found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Score", "Rating", "Subject Line", "Analyzed")

	for _, r := range results {
		row := []string{
			shortID(r.ID),
			fmt.Sprintf("%d", r.Score),
			Rating(r.Score),
			truncate(r.SubjectLine, 48),
			r.Timestamp.Local().Format("Jan 02 15:04"),
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to add table row: %w", err)
		}
	}

	return table.Render()
}

func statsTable(t *Terminal, s *history.Stats) error {
	w := t.Out

	fmt.Fprintln(w, "Subject Line Statistics")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Analyses:       %d\n", s.Count)
	if s.Count == 0 {
		return nil
	}

	fmt.Fprintf(w, "Average score:  %.1f\n", s.Average)
	fmt.Fprintf(w, "Strong (%d+):   %d\n", history.StrongScore, s.Strong)
	fmt.Fprintf(w, "Weak (<%d):     %d\n", history.WeakScore, s.Weak)
	if s.Best != nil {
		fmt.Fprintf(w, "Best:           %s  %s\n",
			t.Color(ScoreColor(s.Best.Score), fmt.Sprintf("%3d", s.Best.Score)), truncate(s.Best.SubjectLine, 48))
	}
	if s.Worst != nil {
		fmt.Fprintf(w, "Worst:          %s  %s\n",
			t.Color(ScoreColor(s.Worst.Score), fmt.Sprintf("%3d", s.Worst.Score)), truncate(s.Worst.SubjectLine, 48))
	}

	return nil
}

func lexiconTable(w io.Writer, l Lexicon) error {
	fmt.Fprintf(w, "Engagement words (%d):\n", len(l.EngagementWords))
	for _, word := range l.EngagementWords {
		fmt.Fprintf(w, "  %s\n", word)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Spam words (%d):\n", len(l.SpamWords))
	for _, word := range l.SpamWords {
		fmt.Fprintf(w, "  %s\n", word)
	}
	return nil
}

// shortID returns the first segment of a uuid
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// truncate shortens s to max runes
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

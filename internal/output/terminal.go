package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

// Spinner frames for animated progress
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Terminal provides terminal-aware output utilities
type Terminal struct {
	Out          io.Writer
	IsTerminal   bool
	UseColor     bool
	spinnerIndex int
}

// NewTerminal creates a Terminal for stdout
func NewTerminal() *Terminal {
	isTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	return &Terminal{
		Out:        os.Stdout,
		IsTerminal: isTerminal,
		UseColor:   isTerminal && os.Getenv("NO_COLOR") == "",
	}
}

// NewStderrTerminal creates a Terminal for progress on stderr, so stdout
// stays clean when piped
func NewStderrTerminal() *Terminal {
	isTerminal := term.IsTerminal(int(os.Stderr.Fd()))
	return &Terminal{
		Out:        os.Stderr,
		IsTerminal: isTerminal,
		UseColor:   isTerminal && os.Getenv("NO_COLOR") == "",
	}
}

// plainTerminal writes to w with no color or cursor control
func plainTerminal(w io.Writer) *Terminal {
	return &Terminal{Out: w}
}

// ClearLine clears the current line (terminal only)
func (t *Terminal) ClearLine() {
	if t.IsTerminal {
		fmt.Fprint(t.Out, "\r\033[K")
	}
}

// Status rewrites the current line with msg (terminal only)
func (t *Terminal) Status(msg string) {
	if !t.IsTerminal {
		return
	}
	fmt.Fprintf(t.Out, "\r\033[K%s", msg)
}

// Spinner returns the next spinner frame
func (t *Terminal) Spinner() string {
	if !t.IsTerminal {
		return ""
	}
	frame := spinnerFrames[t.spinnerIndex]
	t.spinnerIndex = (t.spinnerIndex + 1) % len(spinnerFrames)
	return frame
}

// Color wraps text in ANSI color codes (terminal only)
func (t *Terminal) Color(color, text string) string {
	if !t.UseColor {
		return text
	}
	return color + text + ColorReset
}

// Wait blocks for d, animating a spinner next to msg on a terminal.
// It returns early with the context error if ctx is done.
func (t *Terminal) Wait(ctx context.Context, d time.Duration, msg string) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	t.Status(t.Spinner() + " " + msg)
	for {
		select {
		case <-ctx.Done():
			t.ClearLine()
			return ctx.Err()
		case <-timer.C:
			t.ClearLine()
			return nil
		case <-ticker.C:
			t.Status(t.Spinner() + " " + msg)
		}
	}
}

// FormatETA formats a duration as a human-readable ETA string
func FormatETA(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		if s > 0 {
			return fmt.Sprintf("%dm%ds", m, s)
		}
		return fmt.Sprintf("%dm", m)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}

// PhaseColor returns the color for a batch phase
func PhaseColor(phase string) string {
	switch phase {
	case "analyzing":
		return ColorCyan
	case "saving":
		return ColorGreen
	default:
		return ColorWhite
	}
}

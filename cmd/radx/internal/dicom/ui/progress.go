package ui

import (
	"fmt"
	"os"
)

// Spinner prints status lines to stderr (one per Tick) while a
// long-running step (e.g. opening a mapping store) is in flight.
type Spinner struct {
	label string
}

// NewSpinner starts a spinner labelled for the step it covers.
func NewSpinner(label string) *Spinner {
	s := &Spinner{label: label}
	fmt.Fprintf(os.Stderr, "%s %s...\n", InfoStyle.Render("●"), label)
	return s
}

// Tick updates the spinner's status line.
func (s *Spinner) Tick(status string) {
	fmt.Fprintf(os.Stderr, "  %s\n", SubtleStyle.Render(status))
}

// Stop ends the spinner. Safe to call more than once.
func (s *Spinner) Stop() {}

// ProgressBar prints periodic "n/total" progress lines to stderr.
// Non-interactive by design: the de-identification engine's Non-goals
// exclude a TUI surface, so this is a plain counter rather than a
// redrawn bar.
type ProgressBar struct {
	total int
	done  int
	label string
}

// NewProgressBar creates a counter for total items under the given label.
func NewProgressBar(total int, label string) *ProgressBar {
	return &ProgressBar{total: total, label: label}
}

// Increment advances the counter and prints the current status.
func (p *ProgressBar) Increment(status string) {
	p.done++
	fmt.Fprintf(os.Stderr, "[%d/%d] %s: %s\n", p.done, p.total, p.label, status)
}

// Complete prints a final status line.
func (p *ProgressBar) Complete(status string) {
	fmt.Fprintf(os.Stderr, "%s %s (%d/%d)\n", SuccessStyle.Render("✓"), status, p.done, p.total)
}

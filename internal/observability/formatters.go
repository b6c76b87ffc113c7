// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/glimpse/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, marking the cut with "..."
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// PrintCandidates outputs how many tabs and bookmarks were collected.
func (p *Printer) PrintCandidates(candidates []types.Candidate) {
	tabs, active := 0, 0
	for _, c := range candidates {
		if c.Type == types.CandidateTab {
			tabs++
			if c.Active {
				active++
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Tabs:      %d (%d active)\n", tabs, active))
	sb.WriteString(fmt.Sprintf("Bookmarks: %d\n", len(candidates)-tabs))

	if len(candidates) > 0 {
		sb.WriteString("\nFirst candidates:\n")
		count := min(len(candidates), maxItemsToShow)
		for _, c := range candidates[:count] {
			sb.WriteString(fmt.Sprintf("  • [%s] %s\n", c.Type, c.Title))
		}
		if len(candidates) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(candidates)-maxItemsToShow))
		}
	}

	p.printBox("CANDIDATES", sb.String())
}

// PrintResults outputs the ranked results of a search.
func (p *Printer) PrintResults(query string, mode types.Mode, results []types.ScoredResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Query: %s\n", query))
	sb.WriteString(fmt.Sprintf("Mode:  %s\n", mode))
	sb.WriteString("\n")

	if len(results) == 0 {
		sb.WriteString("No results found\n")
	}
	for i, r := range results {
		marker := ""
		if r.IsActiveTab() {
			marker = " *"
		}
		sb.WriteString(fmt.Sprintf("%2d. [%3.0f] %s%s\n", i+1, r.Confidence, r.Title, marker))
		sb.WriteString(fmt.Sprintf("          %s\n", r.URL))
		if r.Reason != "" {
			sb.WriteString(fmt.Sprintf("          %s\n", r.Reason))
		}
	}

	p.printBox(fmt.Sprintf("RESULTS (%d)", len(results)), sb.String())
}

// PrintSettings outputs the client-safe view of the persisted settings.
func (p *Printer) PrintSettings(view types.SettingsView) {
	key := "not set"
	if view.HasAPIKey {
		key = "set"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("API key:     %s\n", key))
	sb.WriteString(fmt.Sprintf("Search mode: %s\n", view.SearchMode))

	p.printBox("SETTINGS", sb.String())
}

package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/jonathan/glimpse/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	results := []types.ScoredResult{
		{
			Candidate:  types.Candidate{Type: types.CandidateTab, Title: "GitHub", URL: "https://github.com", Active: true},
			Confidence: 105,
		},
		{
			Candidate:  types.Candidate{Type: types.CandidateBookmark, Title: "Go Docs", URL: "https://go.dev/doc"},
			Confidence: 80,
			Reason:     "Official documentation",
		},
	}

	p.PrintResults("go", types.ModeAI, results)
	output := buf.String()

	assert.Contains(t, output, "RESULTS (2)")
	assert.Contains(t, output, "Query: go")
	assert.Contains(t, output, "Mode:  ai")
	assert.Contains(t, output, "GitHub *")
	assert.Contains(t, output, "[105]")
	assert.Contains(t, output, "https://go.dev/doc")
	assert.Contains(t, output, "Official documentation")
}

func TestPrintResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResults("nothing", types.ModeLocal, nil)

	assert.Contains(t, buf.String(), "RESULTS (0)")
	assert.Contains(t, buf.String(), "No results found")
}

func TestPrintCandidates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	candidates := []types.Candidate{
		{Type: types.CandidateTab, Title: "Inbox", Active: true},
		{Type: types.CandidateTab, Title: "Calendar"},
	}
	for i := 0; i < 6; i++ {
		candidates = append(candidates, types.Candidate{Type: types.CandidateBookmark, Title: fmt.Sprintf("Bookmark %d", i)})
	}

	p.PrintCandidates(candidates)
	output := buf.String()

	assert.Contains(t, output, "CANDIDATES")
	assert.Contains(t, output, "Tabs:      2 (1 active)")
	assert.Contains(t, output, "Bookmarks: 6")
	assert.Contains(t, output, "[tab] Inbox")
	assert.Contains(t, output, "... and 3 more")
}

func TestPrintSettings(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSettings(types.SettingsView{HasAPIKey: true, SearchMode: types.ModeAI})

	assert.Contains(t, buf.String(), "API key:     set")
	assert.Contains(t, buf.String(), "Search mode: ai")
	assert.NotContains(t, buf.String(), "not set")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}

package aggregate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/glimpse/internal/schemas"
	"github.com/jonathan/glimpse/internal/types"
)

// TabRecord is one tab as reported by the browser. Every field but ID may be absent.
type TabRecord struct {
	ID         any    `json:"id"`
	WindowID   int    `json:"windowId"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	FavIconURL string `json:"favIconUrl"`
	Active     bool   `json:"active"`
}

// Candidate converts the record to a tab candidate
func (r TabRecord) Candidate() types.Candidate {
	title := r.Title
	if title == "" {
		title = untitled
	}
	return types.Candidate{
		Type:       types.CandidateTab,
		ID:         formatID(r.ID),
		Title:      title,
		URL:        r.URL,
		WindowID:   r.WindowID,
		FavIconURL: r.FavIconURL,
		Active:     r.Active,
	}
}

func formatID(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// TabsFile reads a JSON snapshot of open tabs
type TabsFile struct {
	Path string
}

// Name implements Source
func (f TabsFile) Name() string {
	return "tabs:" + f.Path
}

// Candidates implements Source
func (f TabsFile) Candidates(_ context.Context) ([]types.Candidate, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, &SourceError{Source: f.Name(), Message: "failed to read tabs file", Cause: err}
	}
	return ParseTabs(data)
}

// ParseTabs validates and decodes a tab snapshot document.
func ParseTabs(data []byte) ([]types.Candidate, error) {
	if err := schemas.Validate(schemas.TabSnapshot, data); err != nil {
		return nil, &SourceError{Source: "tabs", Message: "invalid tab snapshot", Cause: err}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var records []TabRecord
	if err := dec.Decode(&records); err != nil {
		return nil, &SourceError{Source: "tabs", Message: "failed to decode tab snapshot", Cause: err}
	}

	candidates := make([]types.Candidate, len(records))
	for i, record := range records {
		candidates[i] = record.Candidate()
	}
	return candidates, nil
}

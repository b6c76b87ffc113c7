// Package types provides type definitions for the records exchanged between the
// candidate aggregator, the ranking core and its callers.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CandidateType distinguishes open tabs from bookmarks
type CandidateType string

const (
	// CandidateTab is a currently open browser tab
	CandidateTab CandidateType = "tab"
	// CandidateBookmark is a bookmark entry (never a folder)
	CandidateBookmark CandidateType = "bookmark"
)

// Candidate is a tab or bookmark eligible for matching.
// Candidates are treated as immutable for the duration of a search.
type Candidate struct {
	Type  CandidateType `json:"type"`
	ID    string        `json:"id"`
	Title string        `json:"title"`
	URL   string        `json:"url"`

	// Tab-only fields
	WindowID   int    `json:"windowId,omitempty"`
	FavIconURL string `json:"favIconUrl,omitempty"`
	Active     bool   `json:"active,omitempty"`

	// Bookmark-only fields (Unix milliseconds)
	DateAdded int64 `json:"dateAdded,omitempty"`
}

// IsActiveTab reports whether the candidate is the active tab of its window.
func (c Candidate) IsActiveTab() bool {
	return c.Type == CandidateTab && c.Active
}

// PromptItem is the projection of a candidate sent to the remote ranker.
// Identifiers and favicons are deliberately absent.
type PromptItem struct {
	Type  CandidateType `json:"type"`
	Title string        `json:"title"`
	URL   string        `json:"url"`
}

// ToPromptItem projects the candidate to its externally visible fields.
func (c Candidate) ToPromptItem() PromptItem {
	return PromptItem{Type: c.Type, Title: c.Title, URL: c.URL}
}

// ScoredResult is a candidate augmented with a relevance score.
type ScoredResult struct {
	Candidate
	// Confidence is nominally 0-100. Local scores may exceed 100 for active tabs.
	Confidence float64 `json:"confidence"`
	// Reason is only populated by the remote ranker
	Reason string `json:"reason,omitempty"`
}

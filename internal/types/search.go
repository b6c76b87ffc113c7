package types

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects how a search is ranked
type Mode string

const (
	// ModeLocal ranks with the deterministic lexical scorer
	ModeLocal Mode = "local"
	// ModeAI delegates ranking to the remote language model
	ModeAI Mode = "ai"
)

// ErrEmptyQuery is returned when a query is empty after trimming
var ErrEmptyQuery = errors.New("query is empty")

// ParseMode converts a user-supplied mode string to a Mode.
// "remote" is accepted as a synonym for "ai"; an empty string means local.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ModeLocal):
		return ModeLocal, nil
	case string(ModeAI), "remote":
		return ModeAI, nil
	default:
		return "", fmt.Errorf("invalid search mode %q (expected %q or %q)", s, ModeLocal, ModeAI)
	}
}

// Valid reports whether m is a known mode
func (m Mode) Valid() bool {
	return m == ModeLocal || m == ModeAI
}

// SearchRequest is one search invocation issued by the caller.
type SearchRequest struct {
	Query string `json:"query" validate:"required"`
	Mode  Mode   `json:"mode" validate:"omitempty,oneof=local ai"`
}

// NewSearchRequest trims the query and rejects empty queries.
// An empty mode defaults to local.
func NewSearchRequest(query string, mode Mode) (SearchRequest, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchRequest{}, ErrEmptyQuery
	}
	if mode == "" {
		mode = ModeLocal
	}
	if !mode.Valid() {
		return SearchRequest{}, fmt.Errorf("invalid search mode %q", mode)
	}
	return SearchRequest{Query: query, Mode: mode}, nil
}

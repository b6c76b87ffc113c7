package ranking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jonathan/glimpse/internal/prompts"
	"github.com/jonathan/glimpse/internal/types"
)

// MaxPromptCandidates bounds how many candidates are sent to the model
const MaxPromptCandidates = 100

// PromptItems truncates candidates to MaxPromptCandidates and projects each
// to its type, title and URL.
func PromptItems(candidates []types.Candidate) []types.PromptItem {
	n := min(len(candidates), MaxPromptCandidates)
	items := make([]types.PromptItem, n)
	for i := 0; i < n; i++ {
		items[i] = candidates[i].ToPromptItem()
	}
	return items
}

// BuildRankingPrompt renders the ranking prompt for a query and projected items.
func BuildRankingPrompt(query string, items []types.PromptItem) (string, error) {
	template, err := prompts.Get("search.json", "rank-candidates")
	if err != nil {
		return "", fmt.Errorf("failed to load ranking prompt: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return "", fmt.Errorf("failed to encode prompt items: %w", err)
	}

	return prompts.Format(template, map[string]string{
		"Query":      query,
		"Items":      string(bytes.TrimRight(buf.Bytes(), "\n")),
		"MaxResults": strconv.Itoa(MaxResults),
	}), nil
}

package ranking

import (
	"encoding/json"
	"math"

	"github.com/jonathan/glimpse/internal/llm"
	"github.com/jonathan/glimpse/internal/schemas"
	"github.com/jonathan/glimpse/internal/types"
)

// defaultRemoteConfidence is used when the model omits a confidence
const defaultRemoteConfidence = 50.0

// rankingEntry is one element of the model's ranking array.
// Pointers distinguish absent fields from zero values.
type rankingEntry struct {
	Index      *float64 `json:"index"`
	Confidence *float64 `json:"confidence"`
	Reason     *string  `json:"reason"`
}

// ParseRankingResponse decodes the model's text into scored results.
//
// Code fences are stripped first. The remaining text must be a JSON array,
// otherwise a *MalformedResponseError is returned. Entries whose index does not
// address candidates (the full, untruncated list) are dropped individually, as
// are entries that are not objects of the expected shape. Model order is kept.
func ParseRankingResponse(text string, candidates []types.Candidate) ([]types.ScoredResult, error) {
	clean := llm.CleanJSONBlock(text)
	if clean == "" {
		return nil, &MalformedResponseError{Reason: "empty response text"}
	}

	if err := schemas.Validate(schemas.RankingResponse, []byte(clean)); err != nil {
		return nil, &MalformedResponseError{Reason: "response is not a JSON array", Cause: err}
	}

	var rawEntries []json.RawMessage
	if err := json.Unmarshal([]byte(clean), &rawEntries); err != nil {
		return nil, &MalformedResponseError{Reason: "response is not a JSON array", Cause: err}
	}

	results := make([]types.ScoredResult, 0, len(rawEntries))
	for _, raw := range rawEntries {
		var entry rankingEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}

		index, ok := entry.position(len(candidates))
		if !ok {
			continue
		}

		result := types.ScoredResult{
			Candidate:  candidates[index],
			Confidence: defaultRemoteConfidence,
		}
		if entry.Confidence != nil {
			result.Confidence = *entry.Confidence
		}
		if entry.Reason != nil {
			result.Reason = *entry.Reason
		}
		results = append(results, result)
	}

	return results, nil
}

// position returns the entry's index if it is an integer in [0, n)
func (e rankingEntry) position(n int) (int, bool) {
	if e.Index == nil {
		return 0, false
	}
	idx := *e.Index
	if idx != math.Trunc(idx) || idx < 0 || idx >= float64(n) {
		return 0, false
	}
	return int(idx), true
}

// Package ranking scores tabs and bookmarks against a search query, either
// locally with lexical heuristics or by delegating to a remote language model.
package ranking

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/glimpse/internal/types"
)

// Score tiers for the local scorer
const (
	scoreExactTitle    = 100.0
	scoreTitlePrefix   = 90.0
	scoreTitleContains = 80.0
	scoreURLContains   = 60.0
	scoreWordOverlap   = 70.0
	activeTabBonus     = 5.0
)

// urlWordSeparators splits URLs into words on whitespace, slashes, dots, dashes and underscores
var urlWordSeparators = regexp.MustCompile(`[\s/.\-_]+`)

// ScoreLocal ranks candidates with the deterministic lexical scorer.
// Candidates scoring zero or less are dropped; the rest are sorted by
// descending confidence, ties keeping input order. The result is not truncated.
func ScoreLocal(query string, candidates []types.Candidate) []types.ScoredResult {
	lowerQuery := strings.ToLower(strings.TrimSpace(query))
	if lowerQuery == "" {
		return []types.ScoredResult{}
	}
	queryWords := strings.Fields(lowerQuery)

	results := make([]types.ScoredResult, 0, len(candidates))
	for _, candidate := range candidates {
		score := scoreCandidate(lowerQuery, queryWords, candidate)
		if candidate.IsActiveTab() {
			// Not capped at 100
			score += activeTabBonus
		}
		if score <= 0 {
			continue
		}
		results = append(results, types.ScoredResult{Candidate: candidate, Confidence: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})

	return results
}

// scoreCandidate returns the bonus-free score for one candidate
func scoreCandidate(lowerQuery string, queryWords []string, candidate types.Candidate) float64 {
	title := strings.ToLower(candidate.Title)
	url := strings.ToLower(candidate.URL)

	switch {
	case title == lowerQuery:
		return scoreExactTitle
	case strings.HasPrefix(title, lowerQuery):
		return scoreTitlePrefix
	case strings.Contains(title, lowerQuery):
		return scoreTitleContains
	case strings.Contains(url, lowerQuery):
		return scoreURLContains
	}

	return wordOverlapScore(queryWords, strings.Fields(title), urlWordSeparators.Split(url, -1))
}

// wordOverlapScore awards up to 70 points by the fraction of query words
// found as substrings of any title or URL word.
func wordOverlapScore(queryWords, titleWords, urlWords []string) float64 {
	if len(queryWords) == 0 {
		return 0
	}

	matched := 0
	for _, queryWord := range queryWords {
		if anyContains(titleWords, queryWord) || anyContains(urlWords, queryWord) {
			matched++
		}
	}

	return min(scoreWordOverlap, float64(matched)/float64(len(queryWords))*scoreWordOverlap)
}

func anyContains(words []string, needle string) bool {
	for _, word := range words {
		if strings.Contains(word, needle) {
			return true
		}
	}
	return false
}

// Truncate returns at most n leading results
func Truncate(results []types.ScoredResult, n int) []types.ScoredResult {
	if len(results) <= n {
		return results
	}
	return results[:n]
}

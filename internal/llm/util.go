// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import (
	"regexp"
	"strings"
)

// fencePattern matches a markdown fence marker, optionally tagged json,
// together with the newline that follows it.
var fencePattern = regexp.MustCompile("```(?:json)?\n?")

// CleanJSONBlock removes markdown code fence markers from a model response.
// Models often wrap JSON in ```json ... ``` even when told not to. Markers are
// removed wherever they occur, not only at the edges.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = fencePattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

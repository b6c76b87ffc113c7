// Package prompts holds the model prompt templates embedded with the binary.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// templates parses every embedded file once, keyed by file name then prompt key.
var templates = sync.OnceValues(func() (map[string]map[string]string, error) {
	return parseAll(promptFiles)
})

func parseAll(fsys fs.FS) (map[string]map[string]string, error) {
	names, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, err
	}
	parsed := make(map[string]map[string]string, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt file %s: %w", name, err)
		}
		var entries map[string]string
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse prompt file %s: %w", name, err)
		}
		parsed[name] = entries
	}
	return parsed, nil
}

// Get returns the template stored under key in the named prompt file.
func Get(filename, key string) (string, error) {
	all, err := templates()
	if err != nil {
		return "", err
	}
	entries, ok := all[filename]
	if !ok {
		return "", fmt.Errorf("prompt file %s not embedded", filename)
	}
	prompt, ok := entries[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// Format substitutes {{.Key}} placeholders from data in a single pass, so
// placeholder text inside a value is left as is.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

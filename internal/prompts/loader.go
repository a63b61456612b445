// Package prompts holds the LLM prompt catalogs. A catalog is a JSON
// file embedded at build time mapping prompt keys to template text with
// {{.Key}} placeholders.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var catalogFS embed.FS

var (
	mu       sync.RWMutex
	catalogs = map[string]map[string]string{}
)

// Get returns the template stored under key in the named catalog file
// (e.g. "interview.json").
func Get(filename, key string) (string, error) {
	catalog, err := open(filename)
	if err != nil {
		return "", err
	}
	template, ok := catalog[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return template, nil
}

// MustGet is Get for prompts required at initialization time.
func MustGet(filename, key string) string {
	template, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return template
}

// Format substitutes {{.Key}} placeholders with the given values.
// Placeholders without a value are left as-is.
func Format(template string, data map[string]string) string {
	out := template
	for key, value := range data {
		out = strings.ReplaceAll(out, "{{."+key+"}}", value)
	}
	return out
}

// List returns the sorted prompt keys available in a catalog file.
func List(filename string) ([]string, error) {
	catalog, err := open(filename)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(catalog))
	for key := range catalog {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// ClearCache drops all parsed catalogs. Useful for testing.
func ClearCache() {
	mu.Lock()
	catalogs = map[string]map[string]string{}
	mu.Unlock()
}

// open returns the parsed catalog, reading it at most once.
func open(filename string) (map[string]string, error) {
	mu.RLock()
	catalog, ok := catalogs[filename]
	mu.RUnlock()
	if ok {
		return catalog, nil
	}

	raw, err := catalogFS.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	mu.Lock()
	catalogs[filename] = catalog
	mu.Unlock()
	return catalog, nil
}

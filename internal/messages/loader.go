// Package messages provides a loader for user-facing text templates.
// Templates are stored as JSON files and embedded at compile time.
package messages

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var messageFiles embed.FS

// cache stores parsed message files to avoid repeated JSON parsing
var (
	cache   = make(map[string]map[string]string)
	cacheMu sync.RWMutex
)

// Get retrieves a template by filename and key.
// The filename should not include the path (e.g., "recommendations.json").
func Get(filename, key string) (string, error) {
	messages, err := loadFile(filename)
	if err != nil {
		return "", err
	}

	message, exists := messages[key]
	if !exists {
		return "", fmt.Errorf("message key %q not found in %s", key, filename)
	}

	return message, nil
}

// GetOr retrieves a template, returning fallback when the file or key is missing.
func GetOr(filename, key, fallback string) string {
	message, err := Get(filename, key)
	if err != nil || message == "" {
		return fallback
	}
	return message
}

// Format replaces template placeholders in the form {{.Key}} with values from data.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		placeholder := fmt.Sprintf("{{.%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

// loadFile loads and caches a message file.
func loadFile(filename string) (map[string]string, error) {
	// Check cache first
	cacheMu.RLock()
	if messages, exists := cache[filename]; exists {
		cacheMu.RUnlock()
		return messages, nil
	}
	cacheMu.RUnlock()

	data, err := messageFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read message file %s: %w", filename, err)
	}

	var messages map[string]string
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse message file %s: %w", filename, err)
	}

	cacheMu.Lock()
	cache[filename] = messages
	cacheMu.Unlock()

	return messages, nil
}

// ClearCache clears the message cache. Useful for testing.
func ClearCache() {
	cacheMu.Lock()
	cache = make(map[string]map[string]string)
	cacheMu.Unlock()
}

// List returns all message keys in a file, sorted.
func List(filename string) ([]string, error) {
	messages, err := loadFile(filename)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(messages))
	for key := range messages {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

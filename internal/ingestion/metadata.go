package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata describes where an ingested document came from.
type Metadata struct {
	Source    string `json:"source"`               // File name or URL
	Format    string `json:"format,omitempty"`     // Lowercased extension without the dot, or "html" for URLs
	Timestamp string `json:"timestamp"`            // RFC3339 format
	Hash      string `json:"hash"`                 // SHA256 hex digest of the cleaned text
	Platform  string `json:"platform,omitempty"`   // Detected job board platform
	FromCache bool   `json:"from_cache,omitempty"` // Served from the page cache
	Browser   bool   `json:"browser,omitempty"`    // Content came from headless rendering
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content, source string) *Metadata {
	return &Metadata{
		Source:    source,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}

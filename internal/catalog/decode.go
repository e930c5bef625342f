package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeOrdered walks the members of a top-level JSON object in document order.
// fn must consume exactly one value from dec.
func decodeOrdered(data []byte, fn func(key string, dec *json.Decoder) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read opening token: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected a JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected a string key, got %v", tok)
		}
		if err := fn(key, dec); err != nil {
			return fmt.Errorf("%q: %w", key, err)
		}
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read closing token: %w", err)
	}
	return nil
}

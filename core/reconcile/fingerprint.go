package reconcile

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/goccy/go-json"
)

// Fingerprint returns the hex SHA-256 of v's JSON form with object keys sorted
// at every level. Top-level keys listed in exclude do not contribute.
func Fingerprint(v any, exclude ...string) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("fingerprint marshal: %w", err)
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return "", fmt.Errorf("fingerprint decode: %w", err)
	}
	if m, ok := doc.(map[string]any); ok {
		for _, key := range exclude {
			delete(m, key)
		}
	}

	// Maps encode with sorted keys, which makes the output canonical.
	canonical, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("fingerprint encode: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

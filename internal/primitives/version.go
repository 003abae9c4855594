// Package primitives provides fingerprinting utilities for Table.
package primitives

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// Fingerprint computes a deterministic identifier for the table contents.
// Two tables with the same ranges always share a fingerprint, which lets
// reports and logs from different runs be grouped by configuration.
func (t *Table) Fingerprint() string {
	data, err := json.Marshal(t)
	if err != nil {
		// Fallback (cannot happen for an array of int pairs)
		return fmt.Sprintf("table-%v", *t)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash[:8])
}

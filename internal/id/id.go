// Package id generates prefixed NanoID identifiers.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// PrefixBatch prefixes recommendation batch IDs.
const PrefixBatch = "recs"

// Generate creates an ID of the form prefix-nanoid, e.g. "recs-V1StGXR8_Z5jdHi6B-myT".
// It fails only when the system cannot supply secure randomness.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// Batch returns a recommendation batch ID, falling back to a fixed marker
// when randomness is unavailable. Batch IDs only correlate logs.
func Batch() string {
	id, err := Generate(PrefixBatch)
	if err != nil {
		return PrefixBatch + "-unknown"
	}
	return id
}

// Package uuidutil converts identifier values between their canonical text
// form and the 16-byte binary form stored in the database.
package uuidutil

import (
	"fmt"

	"github.com/google/uuid"
)

// Size is the binary width of an identifier value.
const Size = 16

// UUIDToBytes parses a canonical UUID string and returns its 16 raw bytes.
func UUIDToBytes(s string) ([]byte, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("parse uuid %q: %w", s, err)
	}
	b := id[:]
	out := make([]byte, Size)
	copy(out, b)
	return out, nil
}

// BytesToUUID returns the canonical string form of 16 raw identifier bytes.
func BytesToUUID(b []byte) (string, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return "", fmt.Errorf("decode uuid bytes: %w", err)
	}
	return id.String(), nil
}

// Package ops implements the note store's operations: create, fetch,
// update, trash handling, version history, bulk actions, folders,
// settings, and dataset import/export. Operations are free functions
// over *sql.DB so they can serve the HTTP, MCP, and CLI surfaces alike.
package ops

import (
	"crypto/rand"
	"encoding/json"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jotpad/jot/internal/errors"
)

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// nowMillis returns the current time as Unix milliseconds, the timestamp
// resolution used throughout the store.
func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// validateID rejects blank identifiers before they reach the database.
func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.NewValidation("id is required")
	}
	return nil
}

// validateMetadata ensures metadata, when present, is well-formed JSON.
// The store never interprets it beyond that.
func validateMetadata(m json.RawMessage) error {
	if len(m) == 0 {
		return nil
	}
	if !json.Valid(m) {
		return errors.NewValidation("metadata must be valid JSON")
	}
	return nil
}

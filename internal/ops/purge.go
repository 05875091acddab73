package ops

import (
	"database/sql"

	"github.com/jotpad/jot/internal/db"
)

// PurgeOutput contains the result of the Purge operation.
type PurgeOutput struct {
	ID    string `json:"id"`
	Found bool   `json:"found"`
}

// Purge permanently deletes a note together with its entire version log.
// There is no undo. A missing id is a no-op success with Found=false,
// which makes purging idempotent.
func Purge(database *sql.DB, id string) (*PurgeOutput, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	unlock := noteLocks.lock(id)
	defer unlock()

	found, err := db.DeleteNote(database, id)
	if err != nil {
		return nil, err
	}
	return &PurgeOutput{ID: id, Found: found}, nil
}

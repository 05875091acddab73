package ops

import (
	"database/sql"

	"github.com/jotpad/jot/internal/db"
)

// TrashOutput contains the result of the Trash and Restore operations.
type TrashOutput struct {
	ID    string `json:"id"`
	Found bool   `json:"found"`
}

// Trash soft-deletes a note. The note keeps its content and version log
// and can be restored. Trashing an unknown id is a no-op success with
// Found=false; trashing an already trashed note is idempotent.
func Trash(database *sql.DB, id string) (*TrashOutput, error) {
	return setTrashed(database, id, true)
}

// Restore returns a trashed note to the active set. Like Trash, a
// missing id is a no-op success and restoring an active note changes
// nothing but the updated_at timestamp.
func Restore(database *sql.DB, id string) (*TrashOutput, error) {
	return setTrashed(database, id, false)
}

func setTrashed(database *sql.DB, id string, trashed bool) (*TrashOutput, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	found, err := db.SetNoteTrashed(database, id, trashed, nowMillis())
	if err != nil {
		return nil, err
	}
	return &TrashOutput{ID: id, Found: found}, nil
}

package ops

import (
	"database/sql"
	"encoding/json"

	"github.com/jotpad/jot/internal/db"
	"github.com/jotpad/jot/internal/errors"
	"github.com/jotpad/jot/internal/note"
)

// UpdateInput contains parameters for the Update operation.
// Nil pointer fields are left unchanged. Moving a note out of its folder
// is expressed with ClearFolder rather than a nil FolderID, so "absent"
// and "set to none" stay distinguishable.
type UpdateInput struct {
	ID string

	Title       *string
	Content     *string
	FolderID    *string
	ClearFolder bool
	Metadata    *json.RawMessage
}

// Update applies a partial edit to a note and appends a new snapshot.
// Every successful update increments the version counter, even when only
// the folder reference changed, so the history stays dense.
func Update(database *sql.DB, input UpdateInput) (*note.Note, error) {
	if err := validateID(input.ID); err != nil {
		return nil, err
	}
	if input.Title == nil && input.Content == nil && input.FolderID == nil &&
		!input.ClearFolder && input.Metadata == nil {
		return nil, errors.NewValidation("at least one field must be provided")
	}
	if input.FolderID != nil && input.ClearFolder {
		return nil, errors.NewValidation("cannot set and clear folder in the same update")
	}
	if input.Metadata != nil {
		if err := validateMetadata(*input.Metadata); err != nil {
			return nil, err
		}
	}

	unlock := noteLocks.lock(input.ID)
	defer unlock()

	n, err := db.GetNote(database, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		n.Title = *input.Title
	}
	if input.Content != nil {
		n.Content = *input.Content
	}
	if input.FolderID != nil {
		n.FolderID = input.FolderID
	}
	if input.ClearFolder {
		n.FolderID = nil
	}
	if input.Metadata != nil {
		n.Metadata = *input.Metadata
	}

	n.Version++
	n.UpdatedAt = nowMillis()

	tx, err := database.Begin()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer tx.Rollback() //nolint:errcheck

	// Checked inside the transaction so a concurrent folder delete
	// cannot slip between the check and the write.
	if input.FolderID != nil {
		if _, err := db.GetFolder(tx, *input.FolderID); err != nil {
			return nil, err
		}
	}
	if err := db.UpdateNote(tx, n); err != nil {
		return nil, err
	}
	if err := db.InsertVersion(tx, n.Snapshot(n.UpdatedAt)); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return n, nil
}

// persistWithSnapshot writes the note row and its new snapshot atomically.
func persistWithSnapshot(database *sql.DB, n *note.Note) error {
	tx, err := database.Begin()
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := db.UpdateNote(tx, n); err != nil {
		return err
	}
	if err := db.InsertVersion(tx, n.Snapshot(n.UpdatedAt)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

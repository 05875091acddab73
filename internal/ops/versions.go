package ops

import (
	"database/sql"

	"github.com/jotpad/jot/internal/db"
	"github.com/jotpad/jot/internal/note"
)

// Versions lists a note's snapshots, newest first. The note must exist;
// trashed notes keep their history and are listable.
func Versions(database *sql.DB, noteID string) ([]note.Version, error) {
	if err := validateID(noteID); err != nil {
		return nil, err
	}
	if _, err := db.GetNote(database, noteID); err != nil {
		return nil, err
	}
	return db.ListVersions(database, noteID)
}

// RestoreVersion rolls a note back to an earlier snapshot by appending
// the snapshot's content as a NEW head version. History is never
// rewritten: restoring version 2 of a note at version 5 produces
// version 6 whose content equals version 2.
func RestoreVersion(database *sql.DB, noteID string, version int) (*note.Note, error) {
	if err := validateID(noteID); err != nil {
		return nil, err
	}

	unlock := noteLocks.lock(noteID)
	defer unlock()

	n, err := db.GetNote(database, noteID)
	if err != nil {
		return nil, err
	}
	v, err := db.GetVersion(database, noteID, version)
	if err != nil {
		return nil, err
	}

	n.Title = v.Title
	n.Content = v.Content
	n.Metadata = v.Metadata
	n.Version++
	n.UpdatedAt = nowMillis()

	if err := persistWithSnapshot(database, n); err != nil {
		return nil, err
	}
	return n, nil
}

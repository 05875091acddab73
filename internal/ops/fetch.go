package ops

import (
	"database/sql"

	"github.com/jotpad/jot/internal/db"
	"github.com/jotpad/jot/internal/note"
)

// Fetch retrieves a note by id. Trashed notes are returned with their
// deleted flag set; only a purged id yields NOT_FOUND.
func Fetch(database *sql.DB, id string) (*note.Note, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return db.GetNote(database, id)
}

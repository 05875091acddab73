package ops

import (
	"database/sql"

	"github.com/jotpad/jot/internal/db"
	"github.com/jotpad/jot/internal/note"
)

// QueryInput contains filters for the Query operation. All present
// filters are ANDed together.
type QueryInput struct {
	// FolderID restricts results to one folder when non-nil.
	FolderID *string

	// Search is a case-insensitive substring matched against title or
	// content. Empty means no text filter.
	Search string

	// Trash selects the trashed set instead of the active set.
	Trash bool
}

// Query lists notes matching the filters, most recently updated first.
// An empty input lists all active notes.
func Query(database *sql.DB, input QueryInput) ([]note.Note, error) {
	return db.QueryNotes(database, db.NoteFilters{
		FolderID:  input.FolderID,
		Search:    input.Search,
		TrashOnly: input.Trash,
	})
}

package ops

import (
	"database/sql"
	"strings"

	"github.com/jotpad/jot/internal/db"
	"github.com/jotpad/jot/internal/errors"
	"github.com/jotpad/jot/internal/note"
)

// CreateFolder stores a new folder. Names are free-form and need not be
// unique; identity lives in the id alone.
func CreateFolder(database *sql.DB, name string) (*note.Folder, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.NewValidation("folder name is required")
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	f := &note.Folder{
		ID:        id,
		Name:      name,
		CreatedAt: nowMillis(),
	}
	if err := db.InsertFolder(database, f); err != nil {
		return nil, err
	}
	return f, nil
}

// ListFolders returns all folders sorted case-insensitively by name.
func ListFolders(database *sql.DB) ([]note.Folder, error) {
	return db.ListFolders(database)
}

// DeleteFolderOutput contains the result of the DeleteFolder operation.
type DeleteFolderOutput struct {
	ID    string `json:"id"`
	Found bool   `json:"found"`
}

// DeleteFolder removes a folder and detaches its notes. The notes
// themselves survive as uncategorized; detaching is structural, so it
// moves neither their version counters nor their timestamps. Deleting an
// unknown folder is a no-op success.
func DeleteFolder(database *sql.DB, id string) (*DeleteFolderOutput, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	found, err := db.RemoveFolder(database, id)
	if err != nil {
		return nil, err
	}
	return &DeleteFolderOutput{ID: id, Found: found}, nil
}

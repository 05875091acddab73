package ops

import (
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/jotpad/jot/internal/config"
	"github.com/jotpad/jot/internal/db"
	"github.com/jotpad/jot/internal/errors"
	"github.com/jotpad/jot/internal/note"
)

// CreateInput contains parameters for the Create operation.
type CreateInput struct {
	Title    string
	Content  string
	FolderID *string // optional
	Metadata json.RawMessage
}

// Create stores a new note at version 1 and records the initial snapshot.
func Create(database *sql.DB, cfg *config.Config, input CreateInput) (*note.Note, error) {
	if cfg.TitleRequired() && strings.TrimSpace(input.Title) == "" {
		return nil, errors.NewValidation("title is required")
	}
	if err := validateMetadata(input.Metadata); err != nil {
		return nil, err
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	now := nowMillis()
	n := &note.Note{
		ID:        id,
		Title:     input.Title,
		Content:   input.Content,
		FolderID:  input.FolderID,
		Metadata:  input.Metadata,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := database.Begin()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer tx.Rollback() //nolint:errcheck

	// Checked inside the transaction so a concurrent folder delete
	// cannot slip between the check and the insert.
	if input.FolderID != nil {
		if _, err := db.GetFolder(tx, *input.FolderID); err != nil {
			return nil, err
		}
	}
	if err := db.InsertNote(tx, n); err != nil {
		return nil, err
	}
	if err := db.InsertVersion(tx, n.Snapshot(now)); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return n, nil
}

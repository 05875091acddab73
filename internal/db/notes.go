package db

import (
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/jotpad/jot/internal/errors"
	"github.com/jotpad/jot/internal/note"
)

const noteCols = `id, title, content, folder_id, metadata, version, deleted, created_at, updated_at`

// NoteFilters narrows QueryNotes results. All present filters are ANDed.
type NoteFilters struct {
	// FolderID filters by exact folder reference when non-nil.
	FolderID *string

	// Search matches a case-insensitive substring of title or content.
	Search string

	// TrashOnly selects trashed notes; false selects active notes.
	// There is no mode returning both.
	TrashOnly bool
}

// InsertNote stores a new note row.
func InsertNote(q execer, n *note.Note) error {
	_, err := q.Exec(`
		INSERT INTO notes (`+noteCols+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		n.ID, n.Title, n.Content, toNullString(n.FolderID), metadataToNull(n.Metadata),
		n.Version, boolToInt(n.Deleted), n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// InsertNoteIfAbsent inserts a note only if its id is not already present.
// Returns true if a row was inserted. Existing rows are never overwritten.
func InsertNoteIfAbsent(q execer, n *note.Note) (bool, error) {
	result, err := q.Exec(`
		INSERT OR IGNORE INTO notes (`+noteCols+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		n.ID, n.Title, n.Content, toNullString(n.FolderID), metadataToNull(n.Metadata),
		n.Version, boolToInt(n.Deleted), n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return false, errors.NewInternal(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, errors.NewInternal(err)
	}
	return rows > 0, nil
}

// GetNote retrieves a note by id. Trashed notes are returned; only a
// permanently deleted (absent) id yields NOT_FOUND.
func GetNote(q execer, id string) (*note.Note, error) {
	row := q.QueryRow(`SELECT `+noteCols+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return n, nil
}

// UpdateNote writes the mutable fields of an existing note row: title,
// content, folder reference, metadata, version counter, and updated_at.
// The id, created_at, and deleted flag are not touched here.
func UpdateNote(q execer, n *note.Note) error {
	result, err := q.Exec(`
		UPDATE notes
		SET title = ?, content = ?, folder_id = ?, metadata = ?, version = ?, updated_at = ?
		WHERE id = ?
	`,
		n.Title, n.Content, toNullString(n.FolderID), metadataToNull(n.Metadata),
		n.Version, n.UpdatedAt, n.ID,
	)
	if err != nil {
		return errors.NewInternal(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rows == 0 {
		return errors.NewNotFound(n.ID)
	}
	return nil
}

// SetNoteTrashed flips the deleted flag and refreshes updated_at. It does
// not touch the version counter. Returns false when no such note exists,
// which callers treat as a no-op success.
func SetNoteTrashed(q execer, id string, trashed bool, now int64) (bool, error) {
	result, err := q.Exec(
		`UPDATE notes SET deleted = ?, updated_at = ? WHERE id = ?`,
		boolToInt(trashed), now, id,
	)
	if err != nil {
		return false, errors.NewInternal(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, errors.NewInternal(err)
	}
	return rows > 0, nil
}

// DeleteNote permanently removes a note and its entire version log in one
// transaction. Returns false when the id did not exist.
func DeleteNote(db *sql.DB, id string) (bool, error) {
	tx, err := db.Begin()
	if err != nil {
		return false, errors.NewInternal(err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`DELETE FROM note_versions WHERE note_id = ?`, id); err != nil {
		return false, errors.NewInternal(err)
	}
	result, err := tx.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return false, errors.NewInternal(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, errors.NewInternal(err)
	}

	if err := tx.Commit(); err != nil {
		return false, errors.NewInternal(err)
	}
	return rows > 0, nil
}

// QueryNotes returns notes matching the filters, most recently updated
// first. The search uses instr() on lowercased columns so substring
// containment works without LIKE wildcard escaping.
func QueryNotes(db *sql.DB, filters NoteFilters) ([]note.Note, error) {
	query := `SELECT ` + noteCols + ` FROM notes WHERE deleted = ?`
	args := []any{boolToInt(filters.TrashOnly)}

	if filters.FolderID != nil {
		query += ` AND folder_id = ?`
		args = append(args, *filters.FolderID)
	}
	if filters.Search != "" {
		query += ` AND (instr(lower(title), ?) > 0 OR instr(lower(content), ?) > 0)`
		needle := strings.ToLower(filters.Search)
		args = append(args, needle, needle)
	}

	query += ` ORDER BY updated_at DESC, id DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var notes []note.Note
	for rows.Next() {
		n, err := scanNoteRows(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		notes = append(notes, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return notes, nil
}

// AllNotes returns every note, trashed included, in creation order.
// Used by export.
func AllNotes(q querier) ([]note.Note, error) {
	rows, err := q.Query(`SELECT ` + noteCols + ` FROM notes ORDER BY created_at, id`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var notes []note.Note
	for rows.Next() {
		n, err := scanNoteRows(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		notes = append(notes, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return notes, nil
}

// scanNote scans a single row into a Note struct.
func scanNote(scanner interface{ Scan(...any) error }) (*note.Note, error) {
	var (
		n        note.Note
		folderID sql.NullString
		metadata sql.NullString
		deleted  int
	)

	err := scanner.Scan(
		&n.ID, &n.Title, &n.Content, &folderID, &metadata,
		&n.Version, &deleted, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	n.FolderID = fromNullString(folderID)
	n.Deleted = deleted != 0
	if metadata.Valid && metadata.String != "" {
		n.Metadata = json.RawMessage(metadata.String)
	}
	return &n, nil
}

// scanNoteRows scans the current row of a result set into a Note.
func scanNoteRows(rows *sql.Rows) (*note.Note, error) {
	return scanNote(rows)
}

// metadataToNull converts raw metadata JSON to a nullable column value.
func metadataToNull(m json.RawMessage) sql.NullString {
	if len(m) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(m), Valid: true}
}

// toNullString converts a *string to sql.NullString.
func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// fromNullString converts a sql.NullString to *string.
func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// boolToInt converts a bool to the 0/1 representation used in SQLite.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jotpad/jot/internal/errors"
	"github.com/jotpad/jot/internal/note"
)

const versionCols = `note_id, version, title, content, metadata, saved_at`

// InsertVersion appends a snapshot to a note's version log. Snapshots are
// immutable once written; a duplicate (note_id, version) pair is a bug in
// the caller and surfaces as an internal error.
func InsertVersion(q execer, v *note.Version) error {
	_, err := q.Exec(`
		INSERT INTO note_versions (`+versionCols+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		v.NoteID, v.Version, v.Title, v.Content, metadataToNull(v.Metadata), v.SavedAt,
	)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// InsertVersionIfAbsent inserts a snapshot only if that (note_id, version)
// pair is not already present. Returns true if a row was inserted.
func InsertVersionIfAbsent(q execer, v *note.Version) (bool, error) {
	result, err := q.Exec(`
		INSERT OR IGNORE INTO note_versions (`+versionCols+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		v.NoteID, v.Version, v.Title, v.Content, metadataToNull(v.Metadata), v.SavedAt,
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

// GetVersion retrieves one snapshot by note id and version number.
func GetVersion(q execer, noteID string, version int) (*note.Version, error) {
	row := q.QueryRow(
		`SELECT `+versionCols+` FROM note_versions WHERE note_id = ? AND version = ?`,
		noteID, version,
	)
	v, err := scanVersion(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(fmt.Sprintf("%s@v%d", noteID, version))
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return v, nil
}

// ListVersions returns all snapshots for a note, newest first.
func ListVersions(db *sql.DB, noteID string) ([]note.Version, error) {
	rows, err := db.Query(
		`SELECT `+versionCols+` FROM note_versions WHERE note_id = ? ORDER BY version DESC`,
		noteID,
	)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var versions []note.Version
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		versions = append(versions, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return versions, nil
}

// CountVersions returns the number of snapshots recorded for a note.
func CountVersions(q execer, noteID string) (int, error) {
	var count int
	err := q.QueryRow(`SELECT COUNT(*) FROM note_versions WHERE note_id = ?`, noteID).Scan(&count)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return count, nil
}

// AllVersions returns every snapshot across all notes, ordered by note id
// then version number. Used by export.
func AllVersions(q querier) ([]note.Version, error) {
	rows, err := q.Query(`SELECT ` + versionCols + ` FROM note_versions ORDER BY note_id, version`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var versions []note.Version
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		versions = append(versions, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return versions, nil
}

// scanVersion scans a single row into a Version struct.
func scanVersion(scanner interface{ Scan(...any) error }) (*note.Version, error) {
	var (
		v        note.Version
		metadata sql.NullString
	)

	err := scanner.Scan(&v.NoteID, &v.Version, &v.Title, &v.Content, &metadata, &v.SavedAt)
	if err != nil {
		return nil, err
	}

	if metadata.Valid && metadata.String != "" {
		v.Metadata = json.RawMessage(metadata.String)
	}
	return &v, nil
}

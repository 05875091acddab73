package db

import (
	"database/sql"

	"github.com/jotpad/jot/internal/errors"
	"github.com/jotpad/jot/internal/note"
)

// InsertFolder stores a new folder row. Names are not unique.
func InsertFolder(q execer, f *note.Folder) error {
	_, err := q.Exec(
		`INSERT INTO folders (id, name, created_at) VALUES (?, ?, ?)`,
		f.ID, f.Name, f.CreatedAt,
	)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// InsertFolderIfAbsent inserts a folder only if its id is not already
// present. Returns true if a row was inserted.
func InsertFolderIfAbsent(q execer, f *note.Folder) (bool, error) {
	result, err := q.Exec(
		`INSERT OR IGNORE INTO folders (id, name, created_at) VALUES (?, ?, ?)`,
		f.ID, f.Name, f.CreatedAt,
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

// GetFolder retrieves a folder by id.
func GetFolder(q execer, id string) (*note.Folder, error) {
	var f note.Folder
	err := q.QueryRow(
		`SELECT id, name, created_at FROM folders WHERE id = ?`, id,
	).Scan(&f.ID, &f.Name, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return &f, nil
}

// ListFolders returns all folders sorted case-insensitively by name.
// Ties fall back to the raw name, then id, to keep the order stable.
func ListFolders(db *sql.DB) ([]note.Folder, error) {
	rows, err := db.Query(`SELECT id, name, created_at FROM folders ORDER BY lower(name), name, id`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var folders []note.Folder
	for rows.Next() {
		var f note.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.CreatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return folders, nil
}

// AllFolders returns every folder in creation order. Used by export.
func AllFolders(q querier) ([]note.Folder, error) {
	rows, err := q.Query(`SELECT id, name, created_at FROM folders ORDER BY created_at, id`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var folders []note.Folder
	for rows.Next() {
		var f note.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.CreatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return folders, nil
}

// RemoveFolder deletes a folder and detaches every note referencing it in
// a single transaction. The detach clears folder_id only; it is a
// structural relocation, so neither version counters nor updated_at move.
// Returns false when the folder did not exist (the detach still ran, a
// harmless no-op).
func RemoveFolder(db *sql.DB, id string) (bool, error) {
	tx, err := db.Begin()
	if err != nil {
		return false, errors.NewInternal(err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`UPDATE notes SET folder_id = NULL WHERE folder_id = ?`, id); err != nil {
		return false, errors.NewInternal(err)
	}
	result, err := tx.Exec(`DELETE FROM folders WHERE id = ?`, id)
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

package db

import (
	"database/sql"

	"github.com/jotpad/jot/internal/errors"
)

// Setting is one persisted key/value pair.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SetSetting inserts or replaces a setting.
func SetSetting(db *sql.DB, key, value string) error {
	_, err := db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetSetting retrieves a setting by key.
func GetSetting(db *sql.DB, key string) (string, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", errors.NewNotFound(key)
	}
	if err != nil {
		return "", errors.NewInternal(err)
	}
	return value, nil
}

// ListSettings returns all settings ordered by key.
func ListSettings(db *sql.DB) ([]Setting, error) {
	rows, err := db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, errors.NewInternal(err)
		}
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return settings, nil
}

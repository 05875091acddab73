package ops

import (
	"database/sql"
	"strings"

	"github.com/jotpad/jot/internal/db"
	"github.com/jotpad/jot/internal/errors"
)

// SetSetting stores or replaces one key/value preference. Settings are
// local to this store and never travel with dataset exports.
func SetSetting(database *sql.DB, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return errors.NewValidation("setting key is required")
	}
	return db.SetSetting(database, key, value)
}

// GetSetting retrieves one preference by key.
func GetSetting(database *sql.DB, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", errors.NewValidation("setting key is required")
	}
	return db.GetSetting(database, key)
}

// ListSettings returns all preferences ordered by key.
func ListSettings(database *sql.DB) ([]db.Setting, error) {
	return db.ListSettings(database)
}

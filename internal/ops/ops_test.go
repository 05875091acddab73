package ops

import (
	"database/sql"
	"testing"

	"github.com/jotpad/jot/internal/config"
	"github.com/jotpad/jot/internal/db"
	"github.com/jotpad/jot/internal/note"
)

// newTestStore opens a fresh database in a temp directory.
func newTestStore(t *testing.T) (*sql.DB, *config.Config) {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database, config.DefaultConfig()
}

// mustCreate stores a note and fails the test on error.
func mustCreate(t *testing.T, database *sql.DB, cfg *config.Config, title, content string) *note.Note {
	t.Helper()
	n, err := Create(database, cfg, CreateInput{Title: title, Content: content})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return n
}

func stringPtr(s string) *string {
	return &s
}

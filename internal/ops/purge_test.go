package ops

import (
	"testing"

	"github.com/jotpad/jot/internal/db"
	"github.com/jotpad/jot/internal/errors"
)

func TestPurge(t *testing.T) {
	database, cfg := newTestStore(t)
	n := mustCreate(t, database, cfg, "A", "x")
	if _, err := Update(database, UpdateInput{ID: n.ID, Content: stringPtr("y")}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	out, err := Purge(database, n.ID)
	if err != nil {
		t.Fatalf("Purge failed: %v", err)
	}
	if !out.Found {
		t.Error("Found = false, want true")
	}

	if _, err := Fetch(database, n.ID); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Fetch after purge should return ErrNotFound, got: %v", err)
	}
	count, err := db.CountVersions(database, n.ID)
	if err != nil {
		t.Fatalf("CountVersions failed: %v", err)
	}
	if count != 0 {
		t.Errorf("snapshot count = %d, want 0 (history purged too)", count)
	}
}

func TestPurge_MissingIDIsNoOp(t *testing.T) {
	database, _ := newTestStore(t)

	out, err := Purge(database, "ghost")
	if err != nil {
		t.Fatalf("Purge on missing id should succeed, got: %v", err)
	}
	if out.Found {
		t.Error("Found = true, want false")
	}
}

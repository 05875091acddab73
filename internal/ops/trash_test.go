package ops

import (
	"testing"

	"github.com/jotpad/jot/internal/db"
)

func TestTrashAndRestore(t *testing.T) {
	database, cfg := newTestStore(t)
	n := mustCreate(t, database, cfg, "A", "x")

	out, err := Trash(database, n.ID)
	if err != nil {
		t.Fatalf("Trash failed: %v", err)
	}
	if !out.Found {
		t.Error("Found = false, want true")
	}

	got, err := Fetch(database, n.ID)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !got.Deleted {
		t.Error("note should be trashed")
	}

	out, err = Restore(database, n.ID)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if !out.Found {
		t.Error("Found = false, want true")
	}

	got, _ = Fetch(database, n.ID)
	if got.Deleted {
		t.Error("note should be active after restore")
	}
}

func TestTrash_DoesNotVersion(t *testing.T) {
	database, cfg := newTestStore(t)
	n := mustCreate(t, database, cfg, "A", "x")

	if _, err := Trash(database, n.ID); err != nil {
		t.Fatalf("Trash failed: %v", err)
	}
	if _, err := Restore(database, n.ID); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	got, _ := Fetch(database, n.ID)
	if got.Version != 1 {
		t.Errorf("Version = %d, want 1 (trash cycle must not version)", got.Version)
	}
	count, err := db.CountVersions(database, n.ID)
	if err != nil {
		t.Fatalf("CountVersions failed: %v", err)
	}
	if count != 1 {
		t.Errorf("snapshot count = %d, want 1", count)
	}
}

func TestTrash_MissingIDIsNoOp(t *testing.T) {
	database, _ := newTestStore(t)

	out, err := Trash(database, "ghost")
	if err != nil {
		t.Fatalf("Trash on missing id should succeed, got: %v", err)
	}
	if out.Found {
		t.Error("Found = true, want false")
	}

	out, err = Restore(database, "ghost")
	if err != nil {
		t.Fatalf("Restore on missing id should succeed, got: %v", err)
	}
	if out.Found {
		t.Error("Found = true, want false")
	}
}

func TestTrash_Idempotent(t *testing.T) {
	database, cfg := newTestStore(t)
	n := mustCreate(t, database, cfg, "A", "x")

	for i := 0; i < 2; i++ {
		out, err := Trash(database, n.ID)
		if err != nil {
			t.Fatalf("Trash #%d failed: %v", i+1, err)
		}
		if !out.Found {
			t.Errorf("Trash #%d Found = false, want true", i+1)
		}
	}

	got, _ := Fetch(database, n.ID)
	if !got.Deleted {
		t.Error("note should still be trashed")
	}
}

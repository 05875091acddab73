package ops

import (
	"testing"

	"github.com/jotpad/jot/internal/errors"
)

func TestVersions_List(t *testing.T) {
	database, cfg := newTestStore(t)
	n := mustCreate(t, database, cfg, "A", "v1 body")
	if _, err := Update(database, UpdateInput{ID: n.ID, Content: stringPtr("v2 body")}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	versions, err := Versions(database, n.ID)
	if err != nil {
		t.Fatalf("Versions failed: %v", err)
	}
	if len(versions) != 2 {
		t.Fatalf("len = %d, want 2", len(versions))
	}
	if versions[0].Version != 2 || versions[1].Version != 1 {
		t.Errorf("order = [v%d v%d], want newest first", versions[0].Version, versions[1].Version)
	}
}

func TestVersions_UnknownNote(t *testing.T) {
	database, _ := newTestStore(t)

	_, err := Versions(database, "ghost")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Versions on missing note should return ErrNotFound, got: %v", err)
	}
}

func TestRestoreVersion_AppendsNewHead(t *testing.T) {
	database, cfg := newTestStore(t)
	n := mustCreate(t, database, cfg, "first", "v1 body")
	if _, err := Update(database, UpdateInput{ID: n.ID, Title: stringPtr("second"), Content: stringPtr("v2 body")}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if _, err := Update(database, UpdateInput{ID: n.ID, Content: stringPtr("v3 body")}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	restored, err := RestoreVersion(database, n.ID, 1)
	if err != nil {
		t.Fatalf("RestoreVersion failed: %v", err)
	}
	if restored.Version != 4 {
		t.Errorf("Version = %d, want 4 (restore appends, never rewrites)", restored.Version)
	}
	if restored.Title != "first" || restored.Content != "v1 body" {
		t.Errorf("restored note = %q/%q, want the v1 state", restored.Title, restored.Content)
	}

	// History is intact: all four snapshots exist
	versions, err := Versions(database, n.ID)
	if err != nil {
		t.Fatalf("Versions failed: %v", err)
	}
	if len(versions) != 4 {
		t.Fatalf("len = %d, want 4", len(versions))
	}
	if versions[0].Content != "v1 body" {
		t.Errorf("head snapshot content = %q, want v1 body", versions[0].Content)
	}
	if versions[1].Content != "v3 body" {
		t.Errorf("snapshot v3 content = %q, want untouched", versions[1].Content)
	}
}

func TestRestoreVersion_UnknownVersion(t *testing.T) {
	database, cfg := newTestStore(t)
	n := mustCreate(t, database, cfg, "A", "x")

	_, err := RestoreVersion(database, n.ID, 9)
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("RestoreVersion on missing version should return ErrNotFound, got: %v", err)
	}
}

func TestRestoreVersion_UnknownNote(t *testing.T) {
	database, _ := newTestStore(t)

	_, err := RestoreVersion(database, "ghost", 1)
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("RestoreVersion on missing note should return ErrNotFound, got: %v", err)
	}
}

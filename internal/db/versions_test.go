package db

import (
	"testing"

	"github.com/jotpad/jot/internal/errors"
	"github.com/jotpad/jot/internal/note"
)

func seedVersions(t *testing.T, noteID string, n int) []*note.Version {
	t.Helper()
	out := make([]*note.Version, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, &note.Version{
			NoteID:  noteID,
			Version: i,
			Title:   "T",
			Content: "c",
			SavedAt: int64(1000 * i),
		})
	}
	return out
}

func TestInsertAndGetVersion(t *testing.T) {
	database := initTestDB(t)
	mustInsertNote(t, database, mkNote("n1", "A", "x", 1000))

	v := &note.Version{NoteID: "n1", Version: 1, Title: "A", Content: "x", SavedAt: 1000}
	if err := InsertVersion(database, v); err != nil {
		t.Fatalf("InsertVersion failed: %v", err)
	}

	got, err := GetVersion(database, "n1", 1)
	if err != nil {
		t.Fatalf("GetVersion failed: %v", err)
	}
	if got.Title != "A" || got.Content != "x" || got.SavedAt != 1000 {
		t.Errorf("got %+v, want A/x/1000", got)
	}
}

func TestGetVersion_NotFound(t *testing.T) {
	database := initTestDB(t)
	mustInsertNote(t, database, mkNote("n1", "A", "x", 1000))

	_, err := GetVersion(database, "n1", 7)
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("GetVersion should return ErrNotFound, got: %v", err)
	}
}

func TestListVersions_NewestFirst(t *testing.T) {
	database := initTestDB(t)
	mustInsertNote(t, database, mkNote("n1", "A", "x", 1000))
	for _, v := range seedVersions(t, "n1", 3) {
		if err := InsertVersion(database, v); err != nil {
			t.Fatalf("InsertVersion failed: %v", err)
		}
	}

	versions, err := ListVersions(database, "n1")
	if err != nil {
		t.Fatalf("ListVersions failed: %v", err)
	}
	if len(versions) != 3 {
		t.Fatalf("len = %d, want 3", len(versions))
	}
	for i, want := range []int{3, 2, 1} {
		if versions[i].Version != want {
			t.Errorf("versions[%d] = v%d, want v%d", i, versions[i].Version, want)
		}
	}
}

func TestCountVersions(t *testing.T) {
	database := initTestDB(t)
	mustInsertNote(t, database, mkNote("n1", "A", "x", 1000))
	for _, v := range seedVersions(t, "n1", 5) {
		if err := InsertVersion(database, v); err != nil {
			t.Fatalf("InsertVersion failed: %v", err)
		}
	}

	count, err := CountVersions(database, "n1")
	if err != nil {
		t.Fatalf("CountVersions failed: %v", err)
	}
	if count != 5 {
		t.Errorf("count = %d, want 5", count)
	}

	count, err = CountVersions(database, "none")
	if err != nil {
		t.Fatalf("CountVersions failed: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0 for unknown note", count)
	}
}

func TestInsertVersionIfAbsent(t *testing.T) {
	database := initTestDB(t)
	mustInsertNote(t, database, mkNote("n1", "A", "x", 1000))

	v := &note.Version{NoteID: "n1", Version: 1, Title: "A", Content: "x", SavedAt: 1000}
	inserted, err := InsertVersionIfAbsent(database, v)
	if err != nil {
		t.Fatalf("InsertVersionIfAbsent failed: %v", err)
	}
	if !inserted {
		t.Error("inserted = false, want true on first insert")
	}

	dup := &note.Version{NoteID: "n1", Version: 1, Title: "CHANGED", Content: "y", SavedAt: 2000}
	inserted, err = InsertVersionIfAbsent(database, dup)
	if err != nil {
		t.Fatalf("InsertVersionIfAbsent failed: %v", err)
	}
	if inserted {
		t.Error("inserted = true, want false on duplicate (note_id, version)")
	}

	got, _ := GetVersion(database, "n1", 1)
	if got.Title != "A" {
		t.Errorf("Title = %q, want original preserved", got.Title)
	}
}

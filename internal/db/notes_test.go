package db

import (
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/jotpad/jot/internal/errors"
	"github.com/jotpad/jot/internal/note"
)

func mkNote(id, title, content string, ts int64) *note.Note {
	return &note.Note{
		ID:        id,
		Title:     title,
		Content:   content,
		Version:   1,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func mustInsertNote(t *testing.T, database *sql.DB, n *note.Note) {
	t.Helper()
	if err := InsertNote(database, n); err != nil {
		t.Fatalf("InsertNote failed: %v", err)
	}
}

func TestInsertAndGetNote(t *testing.T) {
	database := initTestDB(t)

	folder := "f1"
	n := mkNote("n1", "Groceries", "milk, eggs", 1000)
	n.FolderID = &folder
	n.Metadata = json.RawMessage(`{"tags":["home"]}`)
	mustInsertNote(t, database, n)

	got, err := GetNote(database, "n1")
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if got.Title != "Groceries" || got.Content != "milk, eggs" {
		t.Errorf("got %q/%q, want Groceries/milk, eggs", got.Title, got.Content)
	}
	if got.FolderID == nil || *got.FolderID != "f1" {
		t.Errorf("FolderID = %v, want f1", got.FolderID)
	}
	if string(got.Metadata) != `{"tags":["home"]}` {
		t.Errorf("Metadata = %s, want original JSON", got.Metadata)
	}
	if got.Version != 1 || got.Deleted {
		t.Errorf("Version=%d Deleted=%v, want 1/false", got.Version, got.Deleted)
	}
}

func TestGetNote_NotFound(t *testing.T) {
	database := initTestDB(t)

	_, err := GetNote(database, "missing")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("GetNote should return ErrNotFound, got: %v", err)
	}
}

func TestGetNote_ReturnsTrashed(t *testing.T) {
	database := initTestDB(t)
	mustInsertNote(t, database, mkNote("n1", "A", "x", 1000))

	if _, err := SetNoteTrashed(database, "n1", true, 2000); err != nil {
		t.Fatalf("SetNoteTrashed failed: %v", err)
	}

	got, err := GetNote(database, "n1")
	if err != nil {
		t.Fatalf("GetNote failed for trashed note: %v", err)
	}
	if !got.Deleted {
		t.Error("Deleted = false, want true")
	}
	if got.UpdatedAt != 2000 {
		t.Errorf("UpdatedAt = %d, want 2000", got.UpdatedAt)
	}
}

func TestSetNoteTrashed_MissingID(t *testing.T) {
	database := initTestDB(t)

	existed, err := SetNoteTrashed(database, "missing", true, 1000)
	if err != nil {
		t.Fatalf("SetNoteTrashed failed: %v", err)
	}
	if existed {
		t.Error("existed = true, want false for missing id")
	}
}

func TestUpdateNote(t *testing.T) {
	database := initTestDB(t)
	mustInsertNote(t, database, mkNote("n1", "A", "x", 1000))

	n, _ := GetNote(database, "n1")
	n.Title = "B"
	n.Content = "y"
	n.Version = 2
	n.UpdatedAt = 2000
	if err := UpdateNote(database, n); err != nil {
		t.Fatalf("UpdateNote failed: %v", err)
	}

	got, _ := GetNote(database, "n1")
	if got.Title != "B" || got.Content != "y" || got.Version != 2 || got.UpdatedAt != 2000 {
		t.Errorf("got %+v, want B/y/v2/2000", got)
	}
	if got.CreatedAt != 1000 {
		t.Errorf("CreatedAt = %d, want unchanged 1000", got.CreatedAt)
	}
}

func TestUpdateNote_Missing(t *testing.T) {
	database := initTestDB(t)

	err := UpdateNote(database, mkNote("ghost", "A", "x", 1000))
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("UpdateNote should return ErrNotFound, got: %v", err)
	}
}

func TestDeleteNote_RemovesVersions(t *testing.T) {
	database := initTestDB(t)
	n := mkNote("n1", "A", "x", 1000)
	mustInsertNote(t, database, n)
	if err := InsertVersion(database, n.Snapshot(1000)); err != nil {
		t.Fatalf("InsertVersion failed: %v", err)
	}

	existed, err := DeleteNote(database, "n1")
	if err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}
	if !existed {
		t.Error("existed = false, want true")
	}

	if _, err := GetNote(database, "n1"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("note should be gone, got: %v", err)
	}
	count, err := CountVersions(database, "n1")
	if err != nil {
		t.Fatalf("CountVersions failed: %v", err)
	}
	if count != 0 {
		t.Errorf("version count = %d, want 0 after permanent delete", count)
	}
}

func TestDeleteNote_MissingID(t *testing.T) {
	database := initTestDB(t)

	existed, err := DeleteNote(database, "missing")
	if err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}
	if existed {
		t.Error("existed = true, want false")
	}
}

func TestQueryNotes_TrashFilter(t *testing.T) {
	database := initTestDB(t)
	mustInsertNote(t, database, mkNote("n1", "active", "x", 1000))
	trashed := mkNote("n2", "trashed", "x", 1000)
	trashed.Deleted = true
	mustInsertNote(t, database, trashed)

	active, err := QueryNotes(database, NoteFilters{})
	if err != nil {
		t.Fatalf("QueryNotes failed: %v", err)
	}
	if len(active) != 1 || active[0].ID != "n1" {
		t.Errorf("active = %v, want [n1]", active)
	}

	trash, err := QueryNotes(database, NoteFilters{TrashOnly: true})
	if err != nil {
		t.Fatalf("QueryNotes failed: %v", err)
	}
	if len(trash) != 1 || trash[0].ID != "n2" {
		t.Errorf("trash = %v, want [n2]", trash)
	}
}

func TestQueryNotes_SearchCaseInsensitive(t *testing.T) {
	database := initTestDB(t)
	mustInsertNote(t, database, mkNote("n1", "Category A", "notes about stuff", 1000))
	mustInsertNote(t, database, mkNote("n2", "dog", "barking", 1001))
	mustInsertNote(t, database, mkNote("n3", "shopping", "CAT food", 1002))

	results, err := QueryNotes(database, NoteFilters{Search: "cat"})
	if err != nil {
		t.Fatalf("QueryNotes failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2 (title and content matches)", len(results))
	}
	// Percent/underscore are literal, not LIKE wildcards
	mustInsertNote(t, database, mkNote("n4", "100% done", "x", 1003))
	results, err = QueryNotes(database, NoteFilters{Search: "100%"})
	if err != nil {
		t.Fatalf("QueryNotes failed: %v", err)
	}
	if len(results) != 1 || results[0].ID != "n4" {
		t.Errorf("results = %v, want [n4]", results)
	}
}

func TestQueryNotes_FolderAndOrder(t *testing.T) {
	database := initTestDB(t)
	f := "f1"
	a := mkNote("n1", "old", "x", 1000)
	a.FolderID = &f
	b := mkNote("n2", "new", "x", 2000)
	b.FolderID = &f
	c := mkNote("n3", "other", "x", 3000)
	mustInsertNote(t, database, a)
	mustInsertNote(t, database, b)
	mustInsertNote(t, database, c)

	results, err := QueryNotes(database, NoteFilters{FolderID: &f})
	if err != nil {
		t.Fatalf("QueryNotes failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].ID != "n2" || results[1].ID != "n1" {
		t.Errorf("order = [%s %s], want [n2 n1] (updated desc)", results[0].ID, results[1].ID)
	}
}

func TestInsertNoteIfAbsent(t *testing.T) {
	database := initTestDB(t)
	n := mkNote("n1", "A", "x", 1000)

	inserted, err := InsertNoteIfAbsent(database, n)
	if err != nil {
		t.Fatalf("InsertNoteIfAbsent failed: %v", err)
	}
	if !inserted {
		t.Error("inserted = false, want true on first insert")
	}

	// Second insert with different content must not overwrite
	clone := mkNote("n1", "CHANGED", "y", 2000)
	inserted, err = InsertNoteIfAbsent(database, clone)
	if err != nil {
		t.Fatalf("InsertNoteIfAbsent failed: %v", err)
	}
	if inserted {
		t.Error("inserted = true, want false on duplicate id")
	}

	got, _ := GetNote(database, "n1")
	if got.Title != "A" {
		t.Errorf("Title = %q, want original %q preserved", got.Title, "A")
	}
}

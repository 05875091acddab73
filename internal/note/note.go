package note

import "encoding/json"

// Note is a user-authored document with an append-only version history.
type Note struct {
	// ID is a ULID that uniquely identifies this note
	ID string `json:"id"`

	// Title is the note's display title
	Title string `json:"title"`

	// Content is the note's body, stored as-is and never parsed
	Content string `json:"content"`

	// FolderID references the containing folder (nil = uncategorized)
	FolderID *string `json:"folder_id"`

	// Metadata is an opaque structured bag (tags etc.), stored as raw JSON
	Metadata json.RawMessage `json:"metadata,omitempty"`

	// Version counts content-affecting writes, starting at 1
	Version int `json:"version"`

	// Deleted marks the note as trashed (soft delete)
	Deleted bool `json:"deleted"`

	// CreatedAt is the Unix millisecond timestamp at creation (immutable)
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix millisecond timestamp of the last mutation
	UpdatedAt int64 `json:"updated_at"`
}

// Folder is a named container that notes may optionally reference.
// Names are not unique; deleting a folder detaches its notes.
type Folder struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

// Version is an immutable snapshot of a note's state at one version number.
// The log is dense: for a note at version N, snapshots 1..N all exist.
type Version struct {
	NoteID   string          `json:"note_id"`
	Version  int             `json:"version"`
	Title    string          `json:"title"`
	Content  string          `json:"content"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
	SavedAt  int64           `json:"saved_at"`
}

// Snapshot captures a note's current state as a version record.
func (n *Note) Snapshot(savedAt int64) *Version {
	return &Version{
		NoteID:   n.ID,
		Version:  n.Version,
		Title:    n.Title,
		Content:  n.Content,
		Metadata: n.Metadata,
		SavedAt:  savedAt,
	}
}

package web

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/jotpad/jot/internal/config"
	"github.com/jotpad/jot/internal/errors"
	"github.com/jotpad/jot/internal/note"
	"github.com/jotpad/jot/internal/notify"
	"github.com/jotpad/jot/internal/ops"
	"github.com/jotpad/jot/internal/preview"
)

// Handlers contains HTTP route handlers for the jot API.
type Handlers struct {
	db     *sql.DB
	cfg    *config.Config
	center *notify.Center
	logger zerolog.Logger
}

// HandleHealth handles GET /api/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(); err != nil {
		writeError(w, errors.NewInternal(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleListNotes handles GET /api/notes — list active notes.
// Query params: folder (exact id), q (substring search), trash (bool).
func (h *Handlers) HandleListNotes(w http.ResponseWriter, r *http.Request) {
	input := ops.QueryInput{
		Search: r.URL.Query().Get("q"),
		Trash:  r.URL.Query().Get("trash") == "true",
	}
	if folder := r.URL.Query().Get("folder"); folder != "" {
		input.FolderID = &folder
	}

	notes, err := ops.Query(h.db, input)
	if err != nil {
		writeError(w, err)
		return
	}
	if notes == nil {
		notes = []note.Note{}
	}
	writeJSON(w, http.StatusOK, notes)
}

type createNoteRequest struct {
	Title    string          `json:"title"`
	Content  string          `json:"content"`
	FolderID *string         `json:"folder_id"`
	Metadata json.RawMessage `json:"metadata"`
}

// HandleCreateNote handles POST /api/notes.
func (h *Handlers) HandleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	n, err := ops.Create(h.db, h.cfg, ops.CreateInput{
		Title:    req.Title,
		Content:  req.Content,
		FolderID: req.FolderID,
		Metadata: req.Metadata,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

// HandleGetNote handles GET /api/notes/{id}.
func (h *Handlers) HandleGetNote(w http.ResponseWriter, r *http.Request) {
	n, err := ops.Fetch(h.db, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

type updateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`

	// FolderID is kept raw so an absent key (leave unchanged) and an
	// explicit null (move out of its folder) stay distinguishable.
	FolderID json.RawMessage  `json:"folder_id"`
	Metadata *json.RawMessage `json:"metadata"`
}

// HandleUpdateNote handles PUT /api/notes/{id} — partial update.
func (h *Handlers) HandleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var req updateNoteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	input := ops.UpdateInput{
		ID:       r.PathValue("id"),
		Title:    req.Title,
		Content:  req.Content,
		Metadata: req.Metadata,
	}
	if len(req.FolderID) > 0 {
		if bytes.Equal(bytes.TrimSpace(req.FolderID), []byte("null")) {
			input.ClearFolder = true
		} else {
			var folderID string
			if err := json.Unmarshal(req.FolderID, &folderID); err != nil {
				writeError(w, errors.NewValidation("folder_id must be a string or null"))
				return
			}
			input.FolderID = &folderID
		}
	}

	n, err := ops.Update(h.db, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// HandleTrashNote handles DELETE /api/notes/{id} — soft delete.
func (h *Handlers) HandleTrashNote(w http.ResponseWriter, r *http.Request) {
	out, err := ops.Trash(h.db, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleRestoreNote handles POST /api/notes/{id}/restore.
func (h *Handlers) HandleRestoreNote(w http.ResponseWriter, r *http.Request) {
	out, err := ops.Restore(h.db, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleListVersions handles GET /api/notes/{id}/versions.
func (h *Handlers) HandleListVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := ops.Versions(h.db, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if versions == nil {
		versions = []note.Version{}
	}
	writeJSON(w, http.StatusOK, versions)
}

type restoreVersionRequest struct {
	Version int `json:"version"`
}

// HandleRestoreVersion handles POST /api/notes/{id}/restore-version.
func (h *Handlers) HandleRestoreVersion(w http.ResponseWriter, r *http.Request) {
	var req restoreVersionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Version < 1 {
		writeError(w, errors.NewValidation("version must be >= 1"))
		return
	}

	n, err := ops.RestoreVersion(h.db, r.PathValue("id"), req.Version)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// HandlePreview handles GET /api/notes/{id}/preview — rendered content.
func (h *Handlers) HandlePreview(w http.ResponseWriter, r *http.Request) {
	n, err := ops.Fetch(h.db, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"id":   n.ID,
		"html": preview.HTML(n.Content),
	})
}

type bulkRequest struct {
	IDs []string `json:"ids"`
}

// HandleBulkTrash handles POST /api/notes/bulk-trash.
func (h *Handlers) HandleBulkTrash(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	out, err := ops.BulkTrash(h.db, ops.BulkInput{IDs: req.IDs})
	if err != nil {
		writeError(w, err)
		return
	}
	h.center.Push(notify.LevelInfo, fmt.Sprintf("moved %d notes to trash", out.Affected))
	writeJSON(w, http.StatusOK, out)
}

// HandleBulkRestore handles POST /api/notes/bulk-restore.
func (h *Handlers) HandleBulkRestore(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	out, err := ops.BulkRestore(h.db, ops.BulkInput{IDs: req.IDs})
	if err != nil {
		writeError(w, err)
		return
	}
	h.center.Push(notify.LevelInfo, fmt.Sprintf("restored %d notes from trash", out.Affected))
	writeJSON(w, http.StatusOK, out)
}

// HandleListTrash handles GET /api/trash — list trashed notes.
func (h *Handlers) HandleListTrash(w http.ResponseWriter, r *http.Request) {
	notes, err := ops.Query(h.db, ops.QueryInput{Trash: true})
	if err != nil {
		writeError(w, err)
		return
	}
	if notes == nil {
		notes = []note.Note{}
	}
	writeJSON(w, http.StatusOK, notes)
}

// HandlePurgeNote handles DELETE /api/trash/{id} — permanent delete.
func (h *Handlers) HandlePurgeNote(w http.ResponseWriter, r *http.Request) {
	out, err := ops.Purge(h.db, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleBulkPurge handles POST /api/trash/bulk-delete.
func (h *Handlers) HandleBulkPurge(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	out, err := ops.BulkPurge(h.db, ops.BulkInput{IDs: req.IDs})
	if err != nil {
		writeError(w, err)
		return
	}
	h.center.Push(notify.LevelWarning, fmt.Sprintf("permanently deleted %d notes", out.Affected))
	writeJSON(w, http.StatusOK, out)
}

// HandleListFolders handles GET /api/folders.
func (h *Handlers) HandleListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := ops.ListFolders(h.db)
	if err != nil {
		writeError(w, err)
		return
	}
	if folders == nil {
		folders = []note.Folder{}
	}
	writeJSON(w, http.StatusOK, folders)
}

type createFolderRequest struct {
	Name string `json:"name"`
}

// HandleCreateFolder handles POST /api/folders.
func (h *Handlers) HandleCreateFolder(w http.ResponseWriter, r *http.Request) {
	var req createFolderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	f, err := ops.CreateFolder(h.db, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

// HandleDeleteFolder handles DELETE /api/folders/{id}.
func (h *Handlers) HandleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	out, err := ops.DeleteFolder(h.db, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleExport handles GET /api/export — the full dataset as JSON.
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	dataset, err := ops.BuildDataset(h.db)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dataset)
}

// HandleImport handles POST /api/import — merge a dataset.
func (h *Handlers) HandleImport(w http.ResponseWriter, r *http.Request) {
	var dataset note.Dataset
	if err := decodeBody(r, &dataset); err != nil {
		writeError(w, err)
		return
	}
	out, err := ops.ImportDataset(h.db, &dataset)
	if err != nil {
		writeError(w, err)
		return
	}
	h.center.Push(notify.LevelInfo, fmt.Sprintf(
		"import merged %d folders, %d notes, %d versions (%d skipped)",
		out.Folders, out.Notes, out.Versions, out.Skipped))
	writeJSON(w, http.StatusOK, out)
}

// HandleListSettings handles GET /api/settings.
func (h *Handlers) HandleListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := ops.ListSettings(h.db)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleGetSetting handles GET /api/settings/{key}.
func (h *Handlers) HandleGetSetting(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	value, err := ops.GetSetting(h.db, key)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "value": value})
}

type setSettingRequest struct {
	Value string `json:"value"`
}

// HandleSetSetting handles PUT /api/settings/{key}.
func (h *Handlers) HandleSetSetting(w http.ResponseWriter, r *http.Request) {
	var req setSettingRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	key := r.PathValue("key")
	if err := ops.SetSetting(h.db, key, req.Value); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "value": req.Value})
}

// HandleListNotifications handles GET /api/notifications.
func (h *Handlers) HandleListNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.center.List())
}

// HandleMarkNotificationRead handles POST /api/notifications/{id}/read.
func (h *Handlers) HandleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, errors.NewValidation("notification id must be an integer"))
		return
	}
	found := h.center.MarkRead(id)
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "found": found})
}

// HandleDismissNotification handles DELETE /api/notifications/{id}.
func (h *Handlers) HandleDismissNotification(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, errors.NewValidation("notification id must be an integer"))
		return
	}
	found := h.center.Dismiss(id)
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "found": found})
}

// HandleClearNotifications handles DELETE /api/notifications.
func (h *Handlers) HandleClearNotifications(w http.ResponseWriter, r *http.Request) {
	h.center.Clear()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

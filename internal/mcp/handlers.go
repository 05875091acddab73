package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jotpad/jot/internal/config"
	"github.com/jotpad/jot/internal/errors"
	"github.com/jotpad/jot/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db  *sql.DB
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config) *Handlers {
	return &Handlers{db: db, cfg: cfg}
}

// Request types for each tool

// CreateRequest represents the arguments for note_create.
type CreateRequest struct {
	Title    string          `json:"title,omitempty"`
	Content  string          `json:"content,omitempty"`
	FolderID *string         `json:"folder_id,omitempty"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// IDRequest represents the arguments for single-id tools.
type IDRequest struct {
	ID string `json:"id"`
}

// UpdateRequest represents the arguments for note_update.
type UpdateRequest struct {
	ID          string           `json:"id"`
	Title       *string          `json:"title,omitempty"`
	Content     *string          `json:"content,omitempty"`
	FolderID    *string          `json:"folder_id,omitempty"`
	ClearFolder bool             `json:"clear_folder,omitempty"`
	Metadata    *json.RawMessage `json:"metadata,omitempty"`
}

// QueryRequest represents the arguments for note_query.
type QueryRequest struct {
	FolderID *string `json:"folder_id,omitempty"`
	Search   string  `json:"search,omitempty"`
	Trash    bool    `json:"trash,omitempty"`
}

// RestoreVersionRequest represents the arguments for note_restore_version.
type RestoreVersionRequest struct {
	ID      string `json:"id"`
	Version int    `json:"version"`
}

// BulkRequest represents the arguments for the bulk tools.
type BulkRequest struct {
	IDs []string `json:"ids"`
}

// FolderCreateRequest represents the arguments for folder_create.
type FolderCreateRequest struct {
	Name string `json:"name"`
}

// PathRequest represents the arguments for note_export and note_import.
type PathRequest struct {
	Path string `json:"path,omitempty"`
}

// SettingRequest represents the arguments for the setting tools.
type SettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
}

// Handler implementations

// HandleCreate handles the note_create tool call.
func (h *Handlers) HandleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CreateRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	n, opErr := ops.Create(h.db, h.cfg, ops.CreateInput{
		Title:    input.Title,
		Content:  input.Content,
		FolderID: input.FolderID,
		Metadata: input.Metadata,
	})
	if opErr != nil {
		return errorResult(opErr), nil
	}
	return successResult(n)
}

// HandleGet handles the note_get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	n, opErr := ops.Fetch(h.db, input.ID)
	if opErr != nil {
		return errorResult(opErr), nil
	}
	return successResult(n)
}

// HandleUpdate handles the note_update tool call.
func (h *Handlers) HandleUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[UpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	n, opErr := ops.Update(h.db, ops.UpdateInput{
		ID:          input.ID,
		Title:       input.Title,
		Content:     input.Content,
		FolderID:    input.FolderID,
		ClearFolder: input.ClearFolder,
		Metadata:    input.Metadata,
	})
	if opErr != nil {
		return errorResult(opErr), nil
	}
	return successResult(n)
}

// HandleTrash handles the note_trash tool call.
func (h *Handlers) HandleTrash(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	out, opErr := ops.Trash(h.db, input.ID)
	if opErr != nil {
		return errorResult(opErr), nil
	}
	return successResult(out)
}

// HandleRestore handles the note_restore tool call.
func (h *Handlers) HandleRestore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	out, opErr := ops.Restore(h.db, input.ID)
	if opErr != nil {
		return errorResult(opErr), nil
	}
	return successResult(out)
}

// HandlePurge handles the note_purge tool call.
func (h *Handlers) HandlePurge(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	out, opErr := ops.Purge(h.db, input.ID)
	if opErr != nil {
		return errorResult(opErr), nil
	}
	return successResult(out)
}

// HandleQuery handles the note_query tool call.
func (h *Handlers) HandleQuery(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[QueryRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	notes, opErr := ops.Query(h.db, ops.QueryInput{
		FolderID: input.FolderID,
		Search:   input.Search,
		Trash:    input.Trash,
	})
	if opErr != nil {
		return errorResult(opErr), nil
	}
	return successResult(map[string]any{"notes": notes, "count": len(notes)})
}

// HandleVersions handles the note_versions tool call.
func (h *Handlers) HandleVersions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	versions, opErr := ops.Versions(h.db, input.ID)
	if opErr != nil {
		return errorResult(opErr), nil
	}
	return successResult(map[string]any{"versions": versions, "count": len(versions)})
}

// HandleRestoreVersion handles the note_restore_version tool call.
func (h *Handlers) HandleRestoreVersion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RestoreVersionRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	n, opErr := ops.RestoreVersion(h.db, input.ID, input.Version)
	if opErr != nil {
		return errorResult(opErr), nil
	}
	return successResult(n)
}

// HandleBulkTrash handles the note_bulk_trash tool call.
func (h *Handlers) HandleBulkTrash(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[BulkRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	out, opErr := ops.BulkTrash(h.db, ops.BulkInput{IDs: input.IDs})
	if opErr != nil {
		return errorResult(opErr), nil
	}
	return successResult(out)
}

// HandleBulkRestore handles the note_bulk_restore tool call.
func (h *Handlers) HandleBulkRestore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[BulkRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	out, opErr := ops.BulkRestore(h.db, ops.BulkInput{IDs: input.IDs})
	if opErr != nil {
		return errorResult(opErr), nil
	}
	return successResult(out)
}

// HandleBulkPurge handles the note_bulk_purge tool call.
func (h *Handlers) HandleBulkPurge(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[BulkRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	out, opErr := ops.BulkPurge(h.db, ops.BulkInput{IDs: input.IDs})
	if opErr != nil {
		return errorResult(opErr), nil
	}
	return successResult(out)
}

// HandleFolderCreate handles the folder_create tool call.
func (h *Handlers) HandleFolderCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FolderCreateRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	f, opErr := ops.CreateFolder(h.db, input.Name)
	if opErr != nil {
		return errorResult(opErr), nil
	}
	return successResult(f)
}

// HandleFolderList handles the folder_list tool call.
func (h *Handlers) HandleFolderList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folders, opErr := ops.ListFolders(h.db)
	if opErr != nil {
		return errorResult(opErr), nil
	}
	return successResult(map[string]any{"folders": folders, "count": len(folders)})
}

// HandleFolderDelete handles the folder_delete tool call.
func (h *Handlers) HandleFolderDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	out, opErr := ops.DeleteFolder(h.db, input.ID)
	if opErr != nil {
		return errorResult(opErr), nil
	}
	return successResult(out)
}

// HandleExport handles the note_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PathRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	out, opErr := ops.ExportFile(h.db, h.cfg, ops.ExportInput{Path: input.Path})
	if opErr != nil {
		return errorResult(opErr), nil
	}
	return successResult(out)
}

// HandleImport handles the note_import tool call.
func (h *Handlers) HandleImport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PathRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	out, opErr := ops.ImportFile(h.db, h.cfg, input.Path)
	if opErr != nil {
		return errorResult(opErr), nil
	}
	return successResult(out)
}

// HandleSettingGet handles the setting_get tool call.
func (h *Handlers) HandleSettingGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SettingRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	value, opErr := ops.GetSetting(h.db, input.Key)
	if opErr != nil {
		return errorResult(opErr), nil
	}
	return successResult(map[string]string{"key": input.Key, "value": value})
}

// HandleSettingSet handles the setting_set tool call.
func (h *Handlers) HandleSettingSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SettingRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	if opErr := ops.SetSetting(h.db, input.Key, input.Value); opErr != nil {
		return errorResult(opErr), nil
	}
	return successResult(map[string]string{"key": input.Key, "value": input.Value})
}

// HandleSettingList handles the setting_list tool call.
func (h *Handlers) HandleSettingList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	settings, opErr := ops.ListSettings(h.db)
	if opErr != nil {
		return errorResult(opErr), nil
	}
	return successResult(map[string]any{"settings": settings, "count": len(settings)})
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are withheld to avoid leaking file paths or
// SQL errors.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var sErr *errors.StoreError
	if stderrors.As(err, &sErr) {
		msg := sErr.Message
		if err != error(sErr) {
			// Keep wrapper context added by callers.
			msg = err.Error()
		}
		errorObj := map[string]any{
			"code":    sErr.Code,
			"message": msg,
			"status":  sErr.Status,
		}
		if sErr.Code != errors.ErrInternal && sErr.Details != nil {
			errorObj["details"] = sErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}

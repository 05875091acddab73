package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. Descriptions are what MCP clients show to models, so
// they spell out the semantics that matter for safe use (trash vs purge,
// restore appending a new version, import never overwriting).

var createToolDef = mcp.NewTool("note_create",
	mcp.WithDescription("Create a note. Returns the stored note with its generated id at version 1."),
	mcp.WithString("title", mcp.Description("Note title")),
	mcp.WithString("content", mcp.Description("Note body, stored as-is")),
	mcp.WithString("folder_id", mcp.Description("Optional folder id to file the note under")),
	mcp.WithObject("metadata", mcp.Description("Optional structured metadata, stored opaquely")),
)

var getToolDef = mcp.NewTool("note_get",
	mcp.WithDescription("Fetch a note by id. Trashed notes are returned with deleted=true."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
)

var updateToolDef = mcp.NewTool("note_update",
	mcp.WithDescription("Partially update a note. Omitted fields stay unchanged; every update appends a new version. Use clear_folder to move a note out of its folder."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
	mcp.WithString("title", mcp.Description("New title")),
	mcp.WithString("content", mcp.Description("New body")),
	mcp.WithString("folder_id", mcp.Description("Move into this folder")),
	mcp.WithBoolean("clear_folder", mcp.Description("Move the note out of its folder")),
	mcp.WithObject("metadata", mcp.Description("Replace metadata")),
)

var trashToolDef = mcp.NewTool("note_trash",
	mcp.WithDescription("Move a note to the trash (soft delete, reversible). Unknown ids are a no-op."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
)

var restoreToolDef = mcp.NewTool("note_restore",
	mcp.WithDescription("Restore a trashed note to the active set. Unknown ids are a no-op."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
)

var purgeToolDef = mcp.NewTool("note_purge",
	mcp.WithDescription("Permanently delete a note and its whole version history. This cannot be undone."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
)

var queryToolDef = mcp.NewTool("note_query",
	mcp.WithDescription("List notes, most recently updated first. Filters combine with AND."),
	mcp.WithString("folder_id", mcp.Description("Only notes in this folder")),
	mcp.WithString("search", mcp.Description("Case-insensitive substring matched against title or content")),
	mcp.WithBoolean("trash", mcp.Description("List the trash instead of active notes")),
)

var versionsToolDef = mcp.NewTool("note_versions",
	mcp.WithDescription("List a note's version snapshots, newest first."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
)

var restoreVersionToolDef = mcp.NewTool("note_restore_version",
	mcp.WithDescription("Roll a note back to an earlier version. The old content is appended as a new head version; history is never rewritten."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
	mcp.WithNumber("version", mcp.Required(), mcp.Description("Version number to restore")),
)

var bulkTrashToolDef = mcp.NewTool("note_bulk_trash",
	mcp.WithDescription("Move many notes to the trash in one call. Unknown ids are reported, not errors."),
	mcp.WithArray("ids", mcp.Required(), mcp.Description("Note ids"), mcp.Items(map[string]any{"type": "string"})),
)

var bulkRestoreToolDef = mcp.NewTool("note_bulk_restore",
	mcp.WithDescription("Restore many trashed notes in one call."),
	mcp.WithArray("ids", mcp.Required(), mcp.Description("Note ids"), mcp.Items(map[string]any{"type": "string"})),
)

var bulkPurgeToolDef = mcp.NewTool("note_bulk_purge",
	mcp.WithDescription("Permanently delete many notes and their histories. This cannot be undone."),
	mcp.WithArray("ids", mcp.Required(), mcp.Description("Note ids"), mcp.Items(map[string]any{"type": "string"})),
)

var folderCreateToolDef = mcp.NewTool("folder_create",
	mcp.WithDescription("Create a folder. Names need not be unique."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Folder name")),
)

var folderListToolDef = mcp.NewTool("folder_list",
	mcp.WithDescription("List all folders sorted by name."),
)

var folderDeleteToolDef = mcp.NewTool("folder_delete",
	mcp.WithDescription("Delete a folder. Its notes survive as uncategorized; nothing else about them changes."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Folder id")),
)

var exportToolDef = mcp.NewTool("note_export",
	mcp.WithDescription("Export all folders, notes (trash included), and versions to a JSON file."),
	mcp.WithString("path", mcp.Description("Destination .json path; defaults to the exports directory with a timestamped name")),
)

var importToolDef = mcp.NewTool("note_import",
	mcp.WithDescription("Merge a JSON export file into the store. Existing records always win; the merge is atomic and re-import is a no-op."),
	mcp.WithString("path", mcp.Required(), mcp.Description("Source .json path")),
)

var settingGetToolDef = mcp.NewTool("setting_get",
	mcp.WithDescription("Read one stored preference by key."),
	mcp.WithString("key", mcp.Required(), mcp.Description("Setting key")),
)

var settingSetToolDef = mcp.NewTool("setting_set",
	mcp.WithDescription("Store or replace one preference."),
	mcp.WithString("key", mcp.Required(), mcp.Description("Setting key")),
	mcp.WithString("value", mcp.Required(), mcp.Description("Setting value")),
)

var settingListToolDef = mcp.NewTool("setting_list",
	mcp.WithDescription("List all stored preferences."),
)

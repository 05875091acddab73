package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/jotpad/jot/internal/config"
	"github.com/jotpad/jot/internal/errors"
	"github.com/jotpad/jot/internal/notify"
	"github.com/jotpad/jot/internal/ops"
	"github.com/jotpad/jot/internal/preview"
	"github.com/jotpad/jot/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "jot",
		Usage:   "Personal note store with version history",
		Version: Version,
		Commands: []*cli.Command{
			createCmd(db, cfg),
			showCmd(db),
			editCmd(db),
			trashCmd(db),
			restoreCmd(db),
			purgeCmd(db),
			listCmd(db),
			versionsCmd(db),
			revertCmd(db),
			foldersCmd(db),
			bulkTrashCmd(db),
			bulkRestoreCmd(db),
			exportCmd(db, cfg),
			importCmd(db, cfg),
			settingsCmd(db),
			serveCmd(db, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// createCmd creates the create command.
func createCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create a new note (content may be piped via stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Note title"},
			&cli.StringFlag{Name: "content", Aliases: []string{"c"}, Usage: "Note content (overridden by stdin)"},
			&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "Folder id"},
			&cli.StringFlag{Name: "metadata", Usage: "Metadata as a JSON value"},
		},
		Action: func(c *cli.Context) error {
			input := ops.CreateInput{
				Title:   c.String("title"),
				Content: c.String("content"),
			}

			if stdinHasData() {
				content, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				input.Content = content
			}

			if folder := c.String("folder"); folder != "" {
				input.FolderID = &folder
			}
			if meta := c.String("metadata"); meta != "" {
				input.Metadata = json.RawMessage(meta)
			}

			n, err := ops.Create(db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(n)
		},
	}
}

// showCmd creates the show command.
func showCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a note by id",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "render", Aliases: []string{"r"}, Usage: "Render Markdown content as HTML"},
		},
		Action: func(c *cli.Context) error {
			n, err := ops.Fetch(db, c.Args().First())
			if err != nil {
				return outputError(err)
			}

			if c.Bool("render") {
				fmt.Fprintln(os.Stdout, preview.HTML(n.Content))
				return nil
			}

			return outputJSON(n)
		},
	}
}

// editCmd creates the edit command.
func editCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Update a note (new content may be piped via stdin)",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title"},
			&cli.StringFlag{Name: "content", Aliases: []string{"c"}, Usage: "New content (overridden by stdin)"},
			&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "Move the note into this folder"},
			&cli.BoolFlag{Name: "clear-folder", Usage: "Detach the note from its folder"},
			&cli.StringFlag{Name: "metadata", Usage: "New metadata as a JSON value"},
		},
		Action: func(c *cli.Context) error {
			input := ops.UpdateInput{
				ID:          c.Args().First(),
				ClearFolder: c.Bool("clear-folder"),
			}

			if c.IsSet("title") {
				title := c.String("title")
				input.Title = &title
			}
			if c.IsSet("content") {
				content := c.String("content")
				input.Content = &content
			}
			if stdinHasData() {
				content, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				input.Content = &content
			}
			if folder := c.String("folder"); folder != "" {
				input.FolderID = &folder
			}
			if c.IsSet("metadata") {
				meta := json.RawMessage(c.String("metadata"))
				input.Metadata = &meta
			}

			n, err := ops.Update(db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(n)
		},
	}
}

// trashCmd creates the trash command.
func trashCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "trash",
		Usage:     "Move a note to the trash",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			out, err := ops.Trash(db, c.Args().First())
			if err != nil {
				return outputError(err)
			}
			return outputJSON(out)
		},
	}
}

// restoreCmd creates the restore command.
func restoreCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "restore",
		Usage:     "Restore a note from the trash",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			out, err := ops.Restore(db, c.Args().First())
			if err != nil {
				return outputError(err)
			}
			return outputJSON(out)
		},
	}
}

// purgeCmd creates the purge command.
func purgeCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "purge",
		Usage:     "Permanently delete a note and its version history",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			out, err := ops.Purge(db, c.Args().First())
			if err != nil {
				return outputError(err)
			}
			return outputJSON(out)
		},
	}
}

// listCmd creates the list command.
func listCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List notes, most recently updated first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "Filter by folder id"},
			&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "Substring match on title and content"},
			&cli.BoolFlag{Name: "trash", Usage: "List trashed notes instead of active ones"},
		},
		Action: func(c *cli.Context) error {
			input := ops.QueryInput{
				Search: c.String("search"),
				Trash:  c.Bool("trash"),
			}
			if folder := c.String("folder"); folder != "" {
				input.FolderID = &folder
			}

			notes, err := ops.Query(db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]any{"notes": notes, "count": len(notes)})
		},
	}
}

// versionsCmd creates the versions command.
func versionsCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "versions",
		Usage:     "List the version history of a note",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			versions, err := ops.Versions(db, c.Args().First())
			if err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{"versions": versions, "count": len(versions)})
		},
	}
}

// revertCmd creates the revert command.
func revertCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "revert",
		Usage:     "Restore a note to an earlier version (appends a new version)",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "version", Aliases: []string{"n"}, Required: true, Usage: "Version number to restore"},
		},
		Action: func(c *cli.Context) error {
			n, err := ops.RestoreVersion(db, c.Args().First(), c.Int("version"))
			if err != nil {
				return outputError(err)
			}
			return outputJSON(n)
		},
	}
}

// foldersCmd creates the folders command with its subcommands.
func foldersCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "folders",
		Usage: "Manage folders",
		Subcommands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create a folder",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					f, err := ops.CreateFolder(db, c.Args().First())
					if err != nil {
						return outputError(err)
					}
					return outputJSON(f)
				},
			},
			{
				Name:  "list",
				Usage: "List folders sorted by name",
				Action: func(c *cli.Context) error {
					folders, err := ops.ListFolders(db)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"folders": folders, "count": len(folders)})
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a folder, detaching its notes",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					out, err := ops.DeleteFolder(db, c.Args().First())
					if err != nil {
						return outputError(err)
					}
					return outputJSON(out)
				},
			},
		},
	}
}

// bulkTrashCmd creates the bulk-trash command.
func bulkTrashCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "bulk-trash",
		Usage:     "Move several notes to the trash",
		ArgsUsage: "<id>...",
		Action: func(c *cli.Context) error {
			out, err := ops.BulkTrash(db, ops.BulkInput{IDs: c.Args().Slice()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(out)
		},
	}
}

// bulkRestoreCmd creates the bulk-restore command.
func bulkRestoreCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "bulk-restore",
		Usage:     "Restore several notes from the trash",
		ArgsUsage: "<id>...",
		Action: func(c *cli.Context) error {
			out, err := ops.BulkRestore(db, ops.BulkInput{IDs: c.Args().Slice()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(out)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export all folders, notes and versions to a JSON file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (default: ~/.jot/exports/jot-<timestamp>.json)"},
		},
		Action: func(c *cli.Context) error {
			out, err := ops.ExportFile(db, cfg, ops.ExportInput{Path: c.String("path")})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(out)
		},
	}
}

// importCmd creates the import command.
func importCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Merge a JSON export file into the store (existing records win)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Required: true, Usage: "Import file path"},
		},
		Action: func(c *cli.Context) error {
			out, err := ops.ImportFile(db, cfg, c.String("path"))
			if err != nil {
				return outputError(err)
			}
			return outputJSON(out)
		},
	}
}

// settingsCmd creates the settings command with its subcommands.
func settingsCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Manage local preferences",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Read one preference",
				ArgsUsage: "<key>",
				Action: func(c *cli.Context) error {
					value, err := ops.GetSetting(db, c.Args().First())
					if err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]string{"key": c.Args().First(), "value": value})
				},
			},
			{
				Name:      "set",
				Usage:     "Store one preference",
				ArgsUsage: "<key> <value>",
				Action: func(c *cli.Context) error {
					key := c.Args().Get(0)
					value := c.Args().Get(1)
					if err := ops.SetSetting(db, key, value); err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]string{"key": key, "value": value})
				},
			},
			{
				Name:  "list",
				Usage: "List all preferences",
				Action: func(c *cli.Context) error {
					settings, err := ops.ListSettings(db)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"settings": settings, "count": len(settings)})
				},
			},
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Value: "127.0.0.1", Usage: "Address to bind"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 4001, Usage: "Port to listen on"},
			&cli.BoolFlag{Name: "json-logs", Usage: "Emit JSON logs instead of console output"},
		},
		Action: func(c *cli.Context) error {
			logger := newLogger(c.Bool("json-logs"))
			center := notify.NewCenter(cfg.NotifyMax)

			srv := web.NewServer(db, cfg, center, logger, c.String("bind"), c.Int("port"))
			if err := web.Run(srv, logger); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return nil
		},
	}
}

// newLogger builds the server logger. Console output is for humans at a
// terminal; JSON goes to log collectors.
func newLogger(jsonLogs bool) zerolog.Logger {
	if jsonLogs {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if storeErr, ok := err.(*errors.StoreError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", storeErr.Code, storeErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

package ops

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/jotpad/jot/internal/config"
	"github.com/jotpad/jot/internal/db"
	"github.com/jotpad/jot/internal/errors"
	"github.com/jotpad/jot/internal/note"
)

// BuildDataset assembles the portable export payload: every folder, every
// note (trash included), and every snapshot, in their stable export
// orders. All three collections are read inside one transaction so a
// concurrent writer cannot tear the snapshot (a note present without its
// versions, or the reverse). Settings stay local and are deliberately
// absent.
func BuildDataset(database *sql.DB) (*note.Dataset, error) {
	tx, err := database.Begin()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer tx.Rollback() //nolint:errcheck

	folders, err := db.AllFolders(tx)
	if err != nil {
		return nil, err
	}
	notes, err := db.AllNotes(tx)
	if err != nil {
		return nil, err
	}
	versions, err := db.AllVersions(tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return &note.Dataset{
		Folders:  folders,
		Notes:    notes,
		Versions: versions,
	}, nil
}

// ExportInput contains parameters for the ExportFile operation.
type ExportInput struct {
	// Path is the destination file. Empty means the default exports
	// directory with a timestamped name.
	Path string
}

// ExportOutput contains the result of the ExportFile operation.
type ExportOutput struct {
	Path       string `json:"path"`
	Folders    int    `json:"folders"`
	Notes      int    `json:"notes"`
	Versions   int    `json:"versions"`
	ExportedAt int64  `json:"exported_at"`
}

// ExportFile writes the full dataset to a JSON file. The write goes to a
// temp file first and is renamed into place, so a failure mid-write
// leaves any previous export intact.
func ExportFile(database *sql.DB, cfg *config.Config, input ExportInput) (*ExportOutput, error) {
	now := time.Now()

	exportPath := input.Path
	if exportPath == "" {
		var err error
		exportPath, err = defaultExportPath(now)
		if err != nil {
			return nil, err
		}
	}

	// Both user-provided and default paths go through validation.
	if err := ValidatePath(exportPath, PathCheckWrite, cfg); err != nil {
		return nil, err
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	dataset, err := BuildDataset(database)
	if err != nil {
		return nil, err
	}
	payload, err := json.MarshalIndent(dataset, "", "  ")
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := exportPath + "." + hex.EncodeToString(randBytes) + ".tmp"
	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	// Clean up temp file on failure; the original file is preserved.
	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := file.Write(payload); err != nil {
		return nil, errors.NewInternal(err)
	}
	if _, err := file.Write([]byte("\n")); err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := file.Sync(); err != nil {
		return nil, errors.NewInternal(err)
	}

	// Close before the rename (required on Windows; fine elsewhere).
	if err := file.Close(); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to close export file: %w", err))
	}
	file = nil

	// os.Rename would follow a symlink destination.
	if info, err := os.Lstat(exportPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return nil, errors.NewInternal(fmt.Errorf("export path is a symlink"))
	}

	// On Windows, os.Rename fails if the destination exists. Failing
	// safely preserves the existing file instead of risking a non-atomic
	// delete+rename.
	if err := os.Rename(tempPath, exportPath); err != nil {
		if runtime.GOOS == "windows" {
			if _, statErr := os.Stat(exportPath); statErr == nil {
				return nil, errors.NewValidation("export destination already exists; choose a new path or delete the existing file")
			}
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}

	success = true
	return &ExportOutput{
		Path:       exportPath,
		Folders:    len(dataset.Folders),
		Notes:      len(dataset.Notes),
		Versions:   len(dataset.Versions),
		ExportedAt: now.UnixMilli(),
	}, nil
}

// defaultExportPath generates the default export path,
// ~/.jot/exports/jot-<timestamp>.json.
func defaultExportPath(now time.Time) (string, error) {
	dir, err := DefaultExportsDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("jot-%s.json", now.Format("2006-01-02T150405"))
	return filepath.Join(dir, filename), nil
}

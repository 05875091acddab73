package ops

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jotpad/jot/internal/config"
	"github.com/jotpad/jot/internal/db"
	"github.com/jotpad/jot/internal/errors"
	"github.com/jotpad/jot/internal/note"
)

// maxImportBytes bounds how much of an import file is read into memory.
const maxImportBytes = 256 << 20

// ImportOutput summarizes a merge. Counts cover inserted records only;
// records whose identity already existed are skipped untouched.
type ImportOutput struct {
	Folders  int `json:"folders"`
	Notes    int `json:"notes"`
	Versions int `json:"versions"`
	Skipped  int `json:"skipped"`
}

// ImportDataset merges a dataset into the store. The merge is
// insert-if-absent: existing folders, notes, and snapshots always win
// over imported ones, and no existing record is modified. The whole
// merge runs in one transaction, so a failure leaves the store as it
// was.
//
// A structurally invalid dataset (missing ids, non-positive versions,
// duplicates within the payload) aborts with a FORMAT error before
// anything is written.
func ImportDataset(database *sql.DB, dataset *note.Dataset) (*ImportOutput, error) {
	if dataset == nil {
		return nil, errors.NewValidation("dataset is required")
	}
	if problems := dataset.Validate(); len(problems) > 0 {
		return nil, errors.NewFormat("dataset failed validation", map[string]any{
			"problems": problems,
		})
	}

	tx, err := database.Begin()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer tx.Rollback() //nolint:errcheck

	out := &ImportOutput{}

	for i := range dataset.Folders {
		inserted, err := db.InsertFolderIfAbsent(tx, &dataset.Folders[i])
		if err != nil {
			return nil, err
		}
		if inserted {
			out.Folders++
		} else {
			out.Skipped++
		}
	}
	for i := range dataset.Notes {
		inserted, err := db.InsertNoteIfAbsent(tx, &dataset.Notes[i])
		if err != nil {
			return nil, err
		}
		if inserted {
			out.Notes++
		} else {
			out.Skipped++
		}
	}
	for i := range dataset.Versions {
		inserted, err := db.InsertVersionIfAbsent(tx, &dataset.Versions[i])
		if err != nil {
			return nil, err
		}
		if inserted {
			out.Versions++
		} else {
			out.Skipped++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return out, nil
}

// ImportFile reads a dataset from a JSON export file and merges it.
func ImportFile(database *sql.DB, cfg *config.Config, path string) (*ImportOutput, error) {
	if err := ValidatePath(path, PathCheckRead, cfg); err != nil {
		return nil, err
	}

	file, err := openFileNoFollowRead(path)
	if err != nil {
		if _, ok := err.(*errors.StoreError); ok {
			return nil, err
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to open import file: %w", err))
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImportBytes))
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to read import file: %w", err))
	}

	var dataset note.Dataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return nil, errors.NewFormat("import file is not valid JSON", map[string]any{
			"error": err.Error(),
		})
	}

	return ImportDataset(database, &dataset)
}

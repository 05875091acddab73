package ops

import (
	"database/sql"

	"github.com/jotpad/jot/internal/errors"
)

// BulkInput contains parameters for the bulk trash operations.
type BulkInput struct {
	IDs []string
}

// BulkOutput summarizes a bulk operation. Missing lists ids that did not
// resolve to a note; they are skipped, not errors.
type BulkOutput struct {
	Requested int      `json:"requested"`
	Affected  int      `json:"affected"`
	Missing   []string `json:"missing,omitempty"`
}

// BulkTrash soft-deletes many notes in one call.
func BulkTrash(database *sql.DB, input BulkInput) (*BulkOutput, error) {
	return bulkSetTrashed(database, input, true)
}

// BulkRestore returns many trashed notes to the active set in one call.
func BulkRestore(database *sql.DB, input BulkInput) (*BulkOutput, error) {
	return bulkSetTrashed(database, input, false)
}

// bulkSetTrashed applies the flag per id, best effort. Ids already in
// the requested state are counted as affected; only unknown ids land in
// Missing. A failure on one id aborts the whole call since it signals a
// database problem rather than a per-record condition.
func bulkSetTrashed(database *sql.DB, input BulkInput, trashed bool) (*BulkOutput, error) {
	if len(input.IDs) == 0 {
		return nil, errors.NewValidation("ids must not be empty")
	}
	for _, id := range input.IDs {
		if id == "" {
			return nil, errors.NewValidation("ids must not contain blank entries")
		}
	}

	out := &BulkOutput{Requested: len(input.IDs)}
	for _, id := range input.IDs {
		result, err := setTrashed(database, id, trashed)
		if err != nil {
			return nil, err
		}
		if result.Found {
			out.Affected++
		} else {
			out.Missing = append(out.Missing, id)
		}
	}
	return out, nil
}

// BulkPurge permanently deletes many notes and their version logs.
func BulkPurge(database *sql.DB, input BulkInput) (*BulkOutput, error) {
	if len(input.IDs) == 0 {
		return nil, errors.NewValidation("ids must not be empty")
	}
	for _, id := range input.IDs {
		if id == "" {
			return nil, errors.NewValidation("ids must not contain blank entries")
		}
	}

	out := &BulkOutput{Requested: len(input.IDs)}
	for _, id := range input.IDs {
		result, err := Purge(database, id)
		if err != nil {
			return nil, err
		}
		if result.Found {
			out.Affected++
		} else {
			out.Missing = append(out.Missing, id)
		}
	}
	return out, nil
}

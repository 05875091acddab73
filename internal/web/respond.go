package web

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/jotpad/jot/internal/errors"
)

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError maps an error to the JSON error envelope. Errors that are
// not StoreErrors become 500s.
func writeError(w http.ResponseWriter, err error) {
	var sErr *errors.StoreError
	if !stderrors.As(err, &sErr) {
		sErr = errors.NewInternal(err)
	}

	body := map[string]any{
		"code":    string(sErr.Code),
		"message": sErr.Message,
		"status":  sErr.Status,
	}
	if len(sErr.Details) > 0 {
		body["details"] = sErr.Details
	}
	writeJSON(w, sErr.Status, map[string]any{"error": body})
}

// decodeBody parses a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewValidation("invalid JSON body: " + err.Error())
	}
	return nil
}

// Package handler implements the JSON API surface. Handlers are thin: they
// validate input, call into stores and the analytics layer, and shape
// responses. Role enforcement for owner-only writes lives in the store
// layer; handlers translate store errors to status codes.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rbeckett/hearth/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps store-level failures onto API status codes.
func writeStoreError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, store.ErrNotOwner) {
		writeError(w, http.StatusForbidden, "requires owner role")
		return
	}
	writeError(w, http.StatusInternalServerError, fallback)
}

func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError writes the same {"error","kind"} body as the REST handlers.
func writeError(w http.ResponseWriter, status int, kind, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg, "kind": kind}) //nolint:errcheck
}

package http

import (
	"encoding/json"
	"net/http"
)

// writeJSON serializes payload with the given status. Serialization failures
// are swallowed; headers are already on the wire by then.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeAccessDenied answers 401 with the undifferentiated denial envelope.
// The message distinguishes only a missing credential from a rejected one;
// the specific rejection cause stays in server-side logs.
func writeAccessDenied(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnauthorized, map[string]any{
		"error":   "Access denied",
		"message": message,
	})
}

// writeAuthFailure answers 500 with the callback failure envelope.
func writeAuthFailure(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"success": false,
		"error":   "Authentication failed",
		"message": message,
	})
}

// writeInternalError answers 500 with the generic catch-all envelope.
func writeInternalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"error":   "Internal Server Error",
		"message": "Something went wrong",
	})
}

// notFoundHandler answers unmatched routes with a JSON 404.
func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error":   "Not Found",
		"message": "Route " + r.URL.Path + " not found",
	})
}

// healthHandler reports process liveness.
func healthHandler(environment string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":      "ok",
			"environment": environment,
		})
	}
}

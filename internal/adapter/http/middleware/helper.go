package middleware

import (
	"encoding/json"
	"net/http"
)

// errorResponse writes {"error": message} with the given status. Middleware
// cannot reach the handler package helpers, so it keeps its own copy.
func errorResponse(w http.ResponseWriter, status int, message any) {
	js, err := json.Marshal(map[string]any{"error": message})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(js)
}

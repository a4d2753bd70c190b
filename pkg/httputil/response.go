// Package httputil holds the one response helper internal/mockserver needs
// for its JSON error responses (500 for an unmatched or unreadable request,
// 501 after shutdown): writing a JSON body with the right Content-Type and
// status code.
package httputil

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

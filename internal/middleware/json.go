package middleware

import (
	"encoding/json"
	"net/http"
)

const internalErrorMessage = "Internal server error"

// WriteJSON writes value as the JSON body of a response with the given status.
func WriteJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

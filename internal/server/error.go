package server

import (
	"net/http"
)

type errorResponse struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

// writeError writes a JSON error body with the status code given,
// using the standard status text if message is empty.
func writeError(w http.ResponseWriter, status int, message string) {
	if message == "" {
		message = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Status: status, Error: message})
}

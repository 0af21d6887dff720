package server

import (
	"encoding/json"
	"net/http"
)

func (h *handlers) getIdentity(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, http.StatusOK, h.identity())
}

func (h *handlers) getHostname(w http.ResponseWriter, _ *http.Request) {
	hostname, ok := h.identity().Hostname()
	if !ok {
		writeError(w, http.StatusNotFound, "hostname is unknown")
		return
	}
	writeText(w, hostname)
}

func (h *handlers) getAddress(w http.ResponseWriter, _ *http.Request) {
	text := h.identity().PrimaryAddressText()
	if text == "" {
		writeError(w, http.StatusNotFound, "address is unknown")
		return
	}
	writeText(w, text)
}

// writeJSON encodes the value before writing any header,
// so an encoding failure still produces a well formed error.
func writeJSON(w http.ResponseWriter, status int, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(errorResponse{
			Status: status,
			Error:  "encoding JSON: " + err.Error(),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}

func writeText(w http.ResponseWriter, s string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(s + "\n"))
}

package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorEnvelope is the JSON error response structure. Lookup failures keep
// status 200 so the demo UI can branch on ok alone; input errors use 4xx.
type ErrorEnvelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorEnvelope{OK: false, Error: message})
}

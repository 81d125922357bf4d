package handlers

import (
	"net/http"
	"time"
)

// StatusResponse is the JSON response structure for GET /api/status
type StatusResponse struct {
	OK      bool      `json:"ok"`
	Service string    `json:"service"`
	Time    time.Time `json:"time"`
}

// GetStatus handles GET /api/status
func GetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		OK:      true,
		Service: "sanketa-backend",
		Time:    time.Now().UTC(),
	})
}

// GetHealthz handles GET /healthz, the plain liveness probe
func GetHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// GetPing handles GET /api/ping
func GetPing(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("pong"))
}

package handlers

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sanketa/backend/models"
	"github.com/sanketa/backend/projection"
	"github.com/sanketa/backend/simulation"
	"github.com/sanketa/backend/store"
)

// DashboardHandler serves the aggregate read-model endpoints
type DashboardHandler struct {
	store SnapshotStore

	reportSeq atomic.Uint64
}

// NewDashboardHandler creates a new handler with the given store
func NewDashboardHandler(store SnapshotStore) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// DashboardResponse is the JSON response structure for GET /api/dashboard
type DashboardResponse struct {
	OK        bool                 `json:"ok"`
	Dashboard models.DashboardView `json:"dashboard"`
}

// AlertsResponse is the JSON response structure for GET /api/alerts
type AlertsResponse struct {
	OK     bool           `json:"ok"`
	Alerts []models.Alert `json:"alerts"`
}

// ReportsResponse is the JSON response structure for GET /api/reports
type ReportsResponse struct {
	OK      bool            `json:"ok"`
	Reports []models.Report `json:"reports"`
}

// HealthResponse is the JSON response structure for GET /api/health
type HealthResponse struct {
	OK     bool                `json:"ok"`
	Health models.SystemHealth `json:"health"`
}

// SpatResponse is the JSON response structure for GET /api/spat/{id}
type SpatResponse struct {
	OK           bool                `json:"ok"`
	Intersection models.Intersection `json:"intersection"`
}

// HistoricalResponse is the JSON response structure for GET /api/historical
type HistoricalResponse struct {
	OK            bool                  `json:"ok"`
	City          string                `json:"city"`
	MonthOffset   int                   `json:"monthOffset"`
	Intersections []models.Intersection `json:"intersections"`
}

func (h *DashboardHandler) snapshot(r *http.Request) (models.Snapshot, error) {
	city := r.URL.Query().Get("city")
	if city == "" {
		return h.store.DefaultSnapshot(), nil
	}
	return h.store.GetOrCreate(r.Context(), city)
}

// GetDashboard handles GET /api/dashboard
// Returns the projected view of the requested city's current snapshot.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	snap, err := h.snapshot(r)
	if err != nil {
		if errors.Is(err, store.ErrCityNotFound) {
			writeJSON(w, http.StatusOK, ErrorEnvelope{OK: false, Error: "City not found"})
			return
		}
		writeError(w, http.StatusInternalServerError, "Lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, DashboardResponse{OK: true, Dashboard: projection.Project(snap)})
}

// GetAlerts handles GET /api/alerts
func (h *DashboardHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	snap, err := h.snapshot(r)
	if err != nil {
		if errors.Is(err, store.ErrCityNotFound) {
			writeJSON(w, http.StatusOK, ErrorEnvelope{OK: false, Error: "City not found"})
			return
		}
		writeError(w, http.StatusInternalServerError, "Lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, AlertsResponse{OK: true, Alerts: projection.Alerts(snap)})
}

var reportLines = []string{
	"Signal timing recalibrated on arterial corridor",
	"Peak-hour flow improved after phase adjustment",
	"Emergency preemption drill completed",
	"Sensor array self-test passed on all junctions",
	"Adaptive cycle lengths applied city-wide",
}

// GetReports handles GET /api/reports
// Returns three rotating demo report lines; the rotation advances one line
// per request so repeated polls look alive.
func (h *DashboardHandler) GetReports(w http.ResponseWriter, r *http.Request) {
	seq := int(h.reportSeq.Add(1))
	now := time.Now().UTC()

	reports := make([]models.Report, 0, 3)
	for i := 0; i < 3; i++ {
		reports = append(reports, models.Report{
			ID:   uuid.NewString(),
			Time: now.Add(-time.Duration(i) * 7 * time.Minute),
			Text: reportLines[(seq+i)%len(reportLines)],
		})
	}

	writeJSON(w, http.StatusOK, ReportsResponse{OK: true, Reports: reports})
}

// GetHealth handles GET /api/health
// Returns a simulated system health score plus a fixed sensor roster.
func (h *DashboardHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	health := models.SystemHealth{
		Score: 72 + rand.Intn(7),
		Sensors: []models.SensorStatus{
			{ID: "sn-cam-north", Label: "Camera array north", Status: "OK"},
			{ID: "sn-loop-central", Label: "Induction loops central", Status: "OK"},
			{ID: "sn-radar-east", Label: "Radar cluster east", Status: "OK"},
			{ID: "sn-cam-west", Label: "Camera array west", Status: "DEGRADED"},
		},
	}

	writeJSON(w, http.StatusOK, HealthResponse{OK: true, Health: health})
}

// GetSpat handles GET /api/spat/{id}
// Returns signal phase and timing for one intersection by id.
func (h *DashboardHandler) GetSpat(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	in, ok := h.store.Find(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Intersection %s not found", id))
		return
	}

	writeJSON(w, http.StatusOK, SpatResponse{OK: true, Intersection: in})
}

// GetHistorical handles GET /api/historical
// Returns a reproducible historical intersection set for a city and month
// offset. Unlike the live endpoints, the city is required here.
func (h *DashboardHandler) GetHistorical(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		writeError(w, http.StatusBadRequest, "city parameter is required")
		return
	}

	month := 1
	if raw := r.URL.Query().Get("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 12 {
			writeError(w, http.StatusBadRequest, "month must be an integer between 1 and 12")
			return
		}
		month = v
	}

	writeJSON(w, http.StatusOK, HistoricalResponse{
		OK:            true,
		City:          city,
		MonthOffset:   month,
		Intersections: simulation.GenerateHistorical(city, month),
	})
}

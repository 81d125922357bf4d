package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sanketa/backend/models"
	"github.com/sanketa/backend/store"
)

// SnapshotStore defines the interface for live snapshot operations
type SnapshotStore interface {
	GetOrCreate(ctx context.Context, city string) (models.Snapshot, error)
	DefaultSnapshot() models.Snapshot
	Find(id string) (models.Intersection, bool)
}

// IntersectionHandler handles HTTP requests for intersection data
type IntersectionHandler struct {
	store SnapshotStore
}

// NewIntersectionHandler creates a new handler with the given store
func NewIntersectionHandler(store SnapshotStore) *IntersectionHandler {
	return &IntersectionHandler{store: store}
}

// IntersectionsResponse is the JSON response structure for GET /api/intersections
type IntersectionsResponse struct {
	OK            bool                  `json:"ok"`
	Meta          models.CityMeta       `json:"meta"`
	Intersections []models.Intersection `json:"intersections"`
}

// GetIntersections handles GET /api/intersections
// Returns the current snapshot for the requested city, or the default set
// when no city is given.
func (h *IntersectionHandler) GetIntersections(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")

	var snap models.Snapshot
	var err error
	if city == "" {
		snap = h.store.DefaultSnapshot()
	} else {
		snap, err = h.store.GetOrCreate(r.Context(), city)
	}

	if err != nil {
		if errors.Is(err, store.ErrCityNotFound) {
			writeJSON(w, http.StatusOK, ErrorEnvelope{OK: false, Error: "City not found"})
			return
		}
		writeError(w, http.StatusInternalServerError, "Lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, IntersectionsResponse{
		OK:            true,
		Meta:          snap.Meta,
		Intersections: snap.Intersections,
	})
}

package models

import "time"

// Location is a resolved city center as returned by the geocoding
// collaborator: coordinates, display name and an optional bounding box
// ([minLat, maxLat, minLng, maxLng], Nominatim order).
type Location struct {
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	DisplayName string    `json:"displayName"`
	BBox        []float64 `json:"bbox,omitempty"`
}

// CityMeta carries the aggregate synthetic metrics for one city. Generated
// once per cache entry; the rotation engine never touches it.
type CityMeta struct {
	CityName  string    `json:"cityName"`
	CenterLat float64   `json:"centerLat"`
	CenterLng float64   `json:"centerLng"`
	BBox      []float64 `json:"bbox,omitempty"`

	UptimePct              float64 `json:"uptimePct"`
	SolarOutputKw          float64 `json:"solarOutputKw"`
	BatteryChargePct       float64 `json:"batteryChargePct"`
	CO2SavedKg             float64 `json:"co2SavedKg"`
	FuelSavedL             float64 `json:"fuelSavedL"`
	IdleReductionPct       float64 `json:"idleReductionPct"`
	EmergencyRequestsToday int     `json:"emergencyRequestsToday"`
	AvgClearSeconds        float64 `json:"avgClearSeconds"`
	AvgGreenUtilizationPct float64 `json:"avgGreenUtilizationPct"`
	PhasesOptimizedToday   int     `json:"phasesOptimizedToday"`
}

// Snapshot is the meta+intersections pair for one city at one point in
// time. Every delivery path (poll, stream, offline simulation) produces
// this shape, so the projection layer is written once against it.
type Snapshot struct {
	Meta          CityMeta       `json:"meta"`
	Intersections []Intersection `json:"intersections"`

	// GeneratedAt is the cache-entry creation time, not the tick time.
	GeneratedAt time.Time `json:"-"`
}

package models

import "time"

// PhaseCounts tallies intersections by signal phase.
type PhaseCounts struct {
	Green   int `json:"green"`
	Amber   int `json:"amber"`
	Red     int `json:"red"`
	Unknown int `json:"unknown"`
}

// LatLng is a plain coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds is the min/max envelope of a set of coordinates.
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MinLng float64 `json:"minLng"`
	MaxLat float64 `json:"maxLat"`
	MaxLng float64 `json:"maxLng"`
}

// DashboardView is the aggregate read model the dashboard renders.
// Centroid, Bounds and Busiest are nil when the snapshot holds no
// intersections; HasData lets the UI show its empty/prompt state instead
// of NaN-ish zeroes.
type DashboardView struct {
	HasData     bool         `json:"hasData"`
	CityName    string       `json:"cityName,omitempty"`
	Count       int          `json:"count"`
	PhaseCounts PhaseCounts  `json:"phaseCounts"`
	Centroid    *LatLng      `json:"centroid,omitempty"`
	Bounds      *Bounds      `json:"bounds,omitempty"`
	Busiest     *Intersection `json:"busiest,omitempty"`

	// Synthetic convenience badges. Illustrative ranges, not load-bearing.
	WaitMinutes          float64 `json:"waitMinutes"`
	EmissionReductionPct float64 `json:"emissionReductionPct"`
	VehiclesProcessed    int     `json:"vehiclesProcessed"`
}

// Alert is a derived congestion/sensor notice shown on the dashboard.
type Alert struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Intersection string `json:"intersection,omitempty"`
	Message      string `json:"message"`
	Severity     string `json:"severity"`
}

// Report is one rotating demo report line.
type Report struct {
	ID   string    `json:"id"`
	Time time.Time `json:"time"`
	Text string    `json:"text"`
}

// SensorStatus is a single simulated sensor's health line.
type SensorStatus struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Status string `json:"status"`
}

// SystemHealth is the simulated score + sensor roster for /api/health.
type SystemHealth struct {
	Score   int            `json:"score"`
	Sensors []SensorStatus `json:"sensors"`
}

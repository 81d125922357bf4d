package projection

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sanketa/backend/models"
)

// Project maps a raw snapshot onto the aggregate dashboard view. It never
// fails: an empty snapshot yields HasData=false with nil centroid/bounds
// instead of NaN leaking into the UI.
func Project(snap models.Snapshot) models.DashboardView {
	view := models.DashboardView{
		CityName: snap.Meta.CityName,
		Count:    len(snap.Intersections),
	}

	for _, in := range snap.Intersections {
		switch models.NormalizePhase(string(in.Phase)) {
		case models.PhaseGreen:
			view.PhaseCounts.Green++
		case models.PhaseAmber:
			view.PhaseCounts.Amber++
		case models.PhaseRed:
			view.PhaseCounts.Red++
		default:
			view.PhaseCounts.Unknown++
		}
	}

	if len(snap.Intersections) == 0 {
		return view
	}
	view.HasData = true
	view.Centroid = centroid(snap.Intersections)
	view.Bounds = bounds(snap.Intersections)
	view.Busiest = Busiest(snap.Intersections)

	// Synthetic badges: phase-count driven with bounded cosmetic noise.
	reds := float64(view.PhaseCounts.Red)
	ambers := float64(view.PhaseCounts.Amber)
	view.WaitMinutes = round1(math.Max(1.8, 1.6+reds*0.25+ambers*0.12+rand.Float64()*0.4))

	adj := 0.0
	if snap.Meta.AvgGreenUtilizationPct > 0 {
		adj = snap.Meta.AvgGreenUtilizationPct - 55
	}
	view.EmissionReductionPct = math.Round(clamp(22-adj+rand.Float64()*3, 10, 35))
	view.VehiclesProcessed = int(math.Round(float64(len(snap.Intersections)) * (80 + rand.Float64()*40)))

	return view
}

// Busiest picks the intersection the dashboard highlights: the RED one
// with the largest countdown when any is RED, otherwise the overall
// largest countdown. Ties keep the first occurrence in input order.
func Busiest(list []models.Intersection) *models.Intersection {
	if len(list) == 0 {
		return nil
	}
	var best *models.Intersection
	for i := range list {
		if list[i].Phase != models.PhaseRed {
			continue
		}
		if best == nil || list[i].RemainingSeconds > best.RemainingSeconds {
			best = &list[i]
		}
	}
	if best == nil {
		for i := range list {
			if best == nil || list[i].RemainingSeconds > best.RemainingSeconds {
				best = &list[i]
			}
		}
	}
	out := *best
	return &out
}

// Alerts derives the active-alert list from a snapshot: one HIGH
// congestion alert per hot RED intersection (capped at two), a MED sensor
// notice while any data is flowing, and a LOW all-clear otherwise.
func Alerts(snap models.Snapshot) []models.Alert {
	var alerts []models.Alert
	for _, in := range snap.Intersections {
		if in.Phase == models.PhaseRed && in.RemainingSeconds > 20 {
			alerts = append(alerts, models.Alert{
				ID:           "al-" + in.ID,
				Type:         "CONGESTION",
				Intersection: in.ID,
				Message:      fmt.Sprintf("Congestion at %s", in.Name),
				Severity:     "HIGH",
			})
			if len(alerts) == 2 {
				break
			}
		}
	}
	if len(snap.Intersections) > 0 {
		alerts = append(alerts, models.Alert{
			ID:       "al-sensor-west",
			Type:     "SENSOR",
			Message:  "Sensor jitter detected on corridor west",
			Severity: "MED",
		})
	}
	if len(alerts) == 0 {
		alerts = append(alerts, models.Alert{
			ID:       "al-clear",
			Type:     "STATUS",
			Message:  "All clear",
			Severity: "LOW",
		})
	}
	return alerts
}

func centroid(list []models.Intersection) *models.LatLng {
	var sumLat, sumLng float64
	for _, in := range list {
		sumLat += in.Lat
		sumLng += in.Lng
	}
	n := float64(len(list))
	return &models.LatLng{Lat: round6(sumLat / n), Lng: round6(sumLng / n)}
}

func bounds(list []models.Intersection) *models.Bounds {
	b := models.Bounds{
		MinLat: list[0].Lat, MaxLat: list[0].Lat,
		MinLng: list[0].Lng, MaxLng: list[0].Lng,
	}
	for _, in := range list[1:] {
		b.MinLat = math.Min(b.MinLat, in.Lat)
		b.MaxLat = math.Max(b.MaxLat, in.Lat)
		b.MinLng = math.Min(b.MinLng, in.Lng)
		b.MaxLng = math.Max(b.MaxLng, in.Lng)
	}
	return &b
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round6(v float64) float64 { return math.Round(v*1000000) / 1000000 }

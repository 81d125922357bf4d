package projection

import (
	"testing"

	"github.com/sanketa/backend/models"
)

func TestProjectEmptySnapshot(t *testing.T) {
	view := Project(models.Snapshot{})

	if view.HasData {
		t.Error("empty snapshot must report HasData=false")
	}
	if view.Count != 0 {
		t.Errorf("expected count 0, got %d", view.Count)
	}
	if view.PhaseCounts != (models.PhaseCounts{}) {
		t.Errorf("expected zero phase counts, got %+v", view.PhaseCounts)
	}
	if view.Centroid != nil || view.Bounds != nil || view.Busiest != nil {
		t.Error("empty snapshot must leave centroid/bounds/busiest nil")
	}
	if view.WaitMinutes != 0 || view.EmissionReductionPct != 0 || view.VehiclesProcessed != 0 {
		t.Error("empty snapshot must not synthesize badge values")
	}
}

func TestProjectPhaseCounts(t *testing.T) {
	snap := models.Snapshot{Intersections: []models.Intersection{
		{ID: "a", Phase: models.PhaseGreen, RemainingSeconds: 10},
		{ID: "b", Phase: "green", RemainingSeconds: 12},
		{ID: "c", Phase: models.PhaseAmber, RemainingSeconds: 4},
		{ID: "d", Phase: models.PhaseRed, RemainingSeconds: 22},
		{ID: "e", Phase: "PURPLE", RemainingSeconds: 9},
		{ID: "f", Phase: "", RemainingSeconds: 3},
	}}

	view := Project(snap)

	want := models.PhaseCounts{Green: 2, Amber: 1, Red: 1, Unknown: 2}
	if view.PhaseCounts != want {
		t.Errorf("phase counts = %+v, want %+v", view.PhaseCounts, want)
	}
}

func TestProjectCentroidAndBounds(t *testing.T) {
	snap := models.Snapshot{Intersections: []models.Intersection{
		{ID: "a", Lat: 10, Lng: 70, Phase: models.PhaseGreen, RemainingSeconds: 5},
		{ID: "b", Lat: 20, Lng: 80, Phase: models.PhaseGreen, RemainingSeconds: 5},
	}}

	view := Project(snap)

	if view.Centroid == nil || view.Centroid.Lat != 15 || view.Centroid.Lng != 75 {
		t.Errorf("centroid = %+v, want (15, 75)", view.Centroid)
	}
	wantBounds := models.Bounds{MinLat: 10, MinLng: 70, MaxLat: 20, MaxLng: 80}
	if view.Bounds == nil || *view.Bounds != wantBounds {
		t.Errorf("bounds = %+v, want %+v", view.Bounds, wantBounds)
	}
}

func TestBusiestPrefersRedWithLargestCountdown(t *testing.T) {
	list := []models.Intersection{
		{ID: "a", Phase: models.PhaseRed, RemainingSeconds: 10},
		{ID: "b", Phase: models.PhaseRed, RemainingSeconds: 25},
		{ID: "c", Phase: models.PhaseGreen, RemainingSeconds: 40},
	}

	busiest := Busiest(list)
	if busiest == nil || busiest.ID != "b" {
		t.Fatalf("expected intersection b (RED, 25), got %+v", busiest)
	}
}

func TestBusiestFallsBackToLargestCountdown(t *testing.T) {
	list := []models.Intersection{
		{ID: "a", Phase: models.PhaseGreen, RemainingSeconds: 12},
		{ID: "b", Phase: models.PhaseAmber, RemainingSeconds: 30},
		{ID: "c", Phase: models.PhaseGreen, RemainingSeconds: 7},
	}

	busiest := Busiest(list)
	if busiest == nil || busiest.ID != "b" {
		t.Fatalf("expected intersection b (AMBER, 30), got %+v", busiest)
	}
}

func TestBusiestTieKeepsFirstOccurrence(t *testing.T) {
	list := []models.Intersection{
		{ID: "a", Phase: models.PhaseRed, RemainingSeconds: 25},
		{ID: "b", Phase: models.PhaseRed, RemainingSeconds: 25},
	}

	busiest := Busiest(list)
	if busiest == nil || busiest.ID != "a" {
		t.Fatalf("tie must keep the first occurrence, got %+v", busiest)
	}
}

func TestBusiestIsACopy(t *testing.T) {
	list := []models.Intersection{
		{ID: "a", Phase: models.PhaseRed, RemainingSeconds: 25},
	}

	busiest := Busiest(list)
	busiest.RemainingSeconds = 0
	if list[0].RemainingSeconds != 25 {
		t.Error("Busiest returned a pointer into the input slice")
	}
}

func TestProjectBadgeRanges(t *testing.T) {
	snap := models.Snapshot{
		Meta: models.CityMeta{AvgGreenUtilizationPct: 60},
		Intersections: []models.Intersection{
			{ID: "a", Phase: models.PhaseRed, RemainingSeconds: 30},
			{ID: "b", Phase: models.PhaseAmber, RemainingSeconds: 4},
			{ID: "c", Phase: models.PhaseGreen, RemainingSeconds: 20},
		},
	}

	for i := 0; i < 50; i++ {
		view := Project(snap)
		if view.WaitMinutes < 1.8 {
			t.Fatalf("wait minutes below floor: %f", view.WaitMinutes)
		}
		if view.EmissionReductionPct < 10 || view.EmissionReductionPct > 35 {
			t.Fatalf("emission badge out of range: %f", view.EmissionReductionPct)
		}
		min, max := 3*80, 3*120
		if view.VehiclesProcessed < min || view.VehiclesProcessed > max {
			t.Fatalf("vehicle badge out of range: %d", view.VehiclesProcessed)
		}
	}
}

func TestAlerts(t *testing.T) {
	t.Run("hot red intersections raise congestion", func(t *testing.T) {
		snap := models.Snapshot{Intersections: []models.Intersection{
			{ID: "a", Name: "Central Junction 1", Phase: models.PhaseRed, RemainingSeconds: 28},
			{ID: "b", Name: "Market Junction 2", Phase: models.PhaseRed, RemainingSeconds: 21},
			{ID: "c", Name: "Station Junction 3", Phase: models.PhaseRed, RemainingSeconds: 44},
			{ID: "d", Name: "College Junction 4", Phase: models.PhaseGreen, RemainingSeconds: 10},
		}}

		alerts := Alerts(snap)

		high := 0
		for _, a := range alerts {
			if a.Severity == "HIGH" {
				high++
			}
		}
		if high != 2 {
			t.Errorf("expected congestion alerts capped at 2, got %d", high)
		}
		if alerts[len(alerts)-1].Severity != "MED" {
			t.Error("expected trailing MED sensor notice while data is flowing")
		}
	})

	t.Run("empty snapshot reports all clear", func(t *testing.T) {
		alerts := Alerts(models.Snapshot{})
		if len(alerts) != 1 || alerts[0].Severity != "LOW" {
			t.Errorf("expected single LOW all-clear, got %+v", alerts)
		}
	})
}

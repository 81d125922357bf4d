package simulation

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/sanketa/backend/models"
)

// DefaultCity is the fallback when no city is selected or the key is blank.
const DefaultCity = "Bengaluru"

// seedSalt separates live snapshots from other seeded derivations of the
// same city name.
const seedSalt = "|sanketa"

// IntersectionCount is the fixed size of every generated city set.
const IntersectionCount = 12

// cityCenters is the known-city table, matching the coordinates the
// dashboard ships for its offline mode.
var cityCenters = map[string][2]float64{
	"Pune":          {18.5204, 73.8567},
	"Mumbai":        {19.0760, 72.8777},
	"Delhi":         {28.6139, 77.2090},
	"Bengaluru":     {12.9716, 77.5946},
	"Hyderabad":     {17.3850, 78.4867},
	"Chennai":       {13.0827, 80.2707},
	"Kolkata":       {22.5726, 88.3639},
	"Ahmedabad":     {23.0225, 72.5714},
	"Jaipur":        {26.9124, 75.7873},
	"Surat":         {21.1702, 72.8311},
	"Nagpur":        {21.1458, 79.0882},
	"Indore":        {22.7196, 75.8577},
	"Thane":         {19.2183, 72.9781},
	"Bhopal":        {23.2599, 77.4126},
	"Visakhapatnam": {17.6868, 83.2185},
	"Patna":         {25.5941, 85.1376},
	"Vadodara":      {22.3072, 73.1812},
	"Ghaziabad":     {28.6692, 77.4538},
	"Ludhiana":      {30.9010, 75.8573},
	"Agra":          {27.1767, 78.0081},
}

// junctionNames cycles through the generated intersection names.
var junctionNames = []string{
	"Central", "Market", "Station", "College", "Airport",
	"Park", "River", "Hill", "Temple", "Mall",
}

// CityNames returns the known city table keys, sorted for stable output.
func CityNames() []string {
	names := make([]string, 0, len(cityCenters))
	for name := range cityCenters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PickCenter resolves a center for a city key without any network access:
// exact table match first, then substring match, then a deterministic
// pseudo-coordinate hashed into the India bounding box so unknown names
// always land on the same point. Blank keys fall back to the default city.
func PickCenter(city string) models.Location {
	city = strings.TrimSpace(city)
	if city == "" {
		center := cityCenters[DefaultCity]
		return models.Location{Lat: center[0], Lng: center[1], DisplayName: DefaultCity}
	}
	lower := strings.ToLower(city)
	for name, center := range cityCenters {
		if lower == strings.ToLower(name) {
			return models.Location{Lat: center[0], Lng: center[1], DisplayName: name}
		}
	}
	for _, name := range CityNames() {
		if strings.Contains(lower, strings.ToLower(name)) {
			center := cityCenters[name]
			return models.Location{Lat: center[0], Lng: center[1], DisplayName: name}
		}
	}
	// Unknown city: map the hash into 8N..37N / 68E..97E.
	h := hashString(city)
	rn := float64((h^0x9e3779b9)%10000) / 10000
	lat := round4(8 + rn*(37-8))
	lng := round4(68 + rn*(97-68))
	return models.Location{Lat: lat, Lng: lng, DisplayName: city}
}

// Generate produces the full reproducible snapshot for a city: a fixed set
// of intersections jittered around the resolved center plus one CityMeta.
// The same key and location always yield the same snapshot.
func Generate(cityKey string, loc models.Location) models.Snapshot {
	key := strings.TrimSpace(cityKey)
	if key == "" {
		key = "default"
	}
	r := NewRand(hashString(key + seedSalt))

	ints := generateIntersections(r, loc, "CINT")
	meta := generateMeta(r, loc)
	return models.Snapshot{Meta: meta, Intersections: ints}
}

// GenerateHistorical produces a reproducible snapshot for a past month
// offset. A different offset yields a different-but-stable layout because
// the offset participates in the seed.
func GenerateHistorical(cityKey string, monthOffset int) []models.Intersection {
	loc := PickCenter(cityKey)
	key := strings.TrimSpace(cityKey)
	if key == "" {
		key = "default"
	}
	r := NewRand(hashString(key + "|historical|" + strconv.Itoa(monthOffset)))
	return generateIntersections(r, loc, "HINT")
}

func generateIntersections(r *Rand, loc models.Location, idPrefix string) []models.Intersection {
	phases := []models.Phase{models.PhaseGreen, models.PhaseAmber, models.PhaseRed}
	out := make([]models.Intersection, 0, IntersectionCount)
	for i := 0; i < IntersectionCount; i++ {
		dlat := (r.Float64() - 0.5) * 0.08
		dlng := (r.Float64() - 0.5) * 0.08
		phase := phases[r.IntN(len(phases))]
		out = append(out, models.Intersection{
			ID:               fmt.Sprintf("%s%03d", idPrefix, i+1),
			Name:             fmt.Sprintf("%s Junction %d", junctionNames[i%len(junctionNames)], i+1),
			Lat:              round6(loc.Lat + dlat),
			Lng:              round6(loc.Lng + dlng),
			Phase:            phase,
			RemainingSeconds: initialRemaining(phase, r),
		})
	}
	return out
}

// initialRemaining picks the generation-time countdown for a phase:
// RED [20,45), AMBER [4,7), GREEN [15,35).
func initialRemaining(phase models.Phase, r *Rand) int {
	switch phase {
	case models.PhaseRed:
		return 20 + r.IntN(25)
	case models.PhaseAmber:
		return 4 + r.IntN(3)
	default:
		return 15 + r.IntN(20)
	}
}

func generateMeta(r *Rand, loc models.Location) models.CityMeta {
	return models.CityMeta{
		CityName:  loc.DisplayName,
		CenterLat: loc.Lat,
		CenterLng: loc.Lng,
		BBox:      loc.BBox,

		UptimePct:              round2(96 + r.Float64()*3),
		SolarOutputKw:          round1(8 + r.Float64()*2),
		BatteryChargePct:       math.Round(70 + r.Float64()*25),
		CO2SavedKg:             round1(8 + r.Float64()*4),
		FuelSavedL:             round1(2 + r.Float64()*3),
		IdleReductionPct:       round1(10 + r.Float64()*6),
		EmergencyRequestsToday: int(math.Round(r.Float64() * 5)),
		AvgClearSeconds:        math.Round(22 + r.Float64()*18),
		AvgGreenUtilizationPct: round1(55 + r.Float64()*25),
		PhasesOptimizedToday:   4 + int(math.Round(r.Float64()*8)),
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
func round6(v float64) float64 { return math.Round(v*1000000) / 1000000 }

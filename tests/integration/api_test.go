package integration

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sanketa/backend/feed"
	"github.com/sanketa/backend/geocode"
	"github.com/sanketa/backend/handlers"
	"github.com/sanketa/backend/mailer"
	"github.com/sanketa/backend/models"
	"github.com/sanketa/backend/store"
)

// setupTestServer wires the full router the way main does, with the static
// geocoder so no test touches the network.
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	static := geocode.Static{}
	st := store.New(static, "Bengaluru", 60*time.Second, nil)
	fd := feed.New(st, 20*time.Millisecond)
	ml := mailer.New("", 587, "", "", "")

	intersectionHandler := handlers.NewIntersectionHandler(st)
	streamHandler := handlers.NewStreamHandler(fd)
	cityHandler := handlers.NewCityHandler(static)
	contactHandler := handlers.NewContactHandler(ml)
	dashboardHandler := handlers.NewDashboardHandler(st)

	r := chi.NewRouter()
	r.Get("/healthz", handlers.GetHealthz)
	r.Get("/api/ping", handlers.GetPing)
	r.Get("/api/status", handlers.GetStatus)
	r.Get("/api/intersections", intersectionHandler.GetIntersections)
	r.Get("/api/stream", streamHandler.GetStream)
	r.Get("/api/cities", cityHandler.GetCities)
	r.Post("/api/contact", contactHandler.PostContact)
	r.Get("/api/dashboard", dashboardHandler.GetDashboard)
	r.Get("/api/alerts", dashboardHandler.GetAlerts)
	r.Get("/api/reports", dashboardHandler.GetReports)
	r.Get("/api/health", dashboardHandler.GetHealth)
	r.Get("/api/spat/{id}", dashboardHandler.GetSpat)
	r.Get("/api/historical", dashboardHandler.GetHistorical)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func getJSON(t *testing.T, url string, out interface{}) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode %s response: %v", url, err)
	}
	return resp
}

func TestStatusEndpoints(t *testing.T) {
	server := setupTestServer(t)

	var status handlers.StatusResponse
	resp := getJSON(t, server.URL+"/api/status", &status)
	if resp.StatusCode != http.StatusOK || !status.OK {
		t.Errorf("unexpected status response: %d %+v", resp.StatusCode, status)
	}

	pong, err := http.Get(server.URL + "/api/ping")
	if err != nil {
		t.Fatalf("ping failed: %v", err)
	}
	defer pong.Body.Close()
	buf := make([]byte, 16)
	n, _ := pong.Body.Read(buf)
	if string(buf[:n]) != "pong" {
		t.Errorf("expected pong, got %q", buf[:n])
	}
}

func TestIntersectionsEndToEnd(t *testing.T) {
	server := setupTestServer(t)

	var resp handlers.IntersectionsResponse
	getJSON(t, server.URL+"/api/intersections?city=Pune", &resp)

	if !resp.OK {
		t.Fatal("expected ok:true for a known city")
	}
	if len(resp.Intersections) != 12 {
		t.Fatalf("expected 12 intersections, got %d", len(resp.Intersections))
	}
	for _, in := range resp.Intersections {
		if err := in.Validate(); err != nil {
			t.Errorf("intersection %s invalid: %v", in.ID, err)
		}
	}
	if resp.Meta.CityName == "" {
		t.Error("expected populated city meta")
	}

	// Same city again within the TTL: identical identity fields.
	var again handlers.IntersectionsResponse
	getJSON(t, server.URL+"/api/intersections?city=Pune", &again)
	if again.Intersections[0].ID != resp.Intersections[0].ID ||
		again.Intersections[0].Lat != resp.Intersections[0].Lat {
		t.Error("cached city must keep its identity within the TTL")
	}
}

func TestCitiesEndToEnd(t *testing.T) {
	server := setupTestServer(t)

	var resp handlers.CitiesResponse
	getJSON(t, server.URL+"/api/cities?query=pu", &resp)

	if !resp.OK {
		t.Fatal("expected ok:true")
	}
	found := false
	for _, c := range resp.Cities {
		if c == "Pune" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected Pune among suggestions, got %v", resp.Cities)
	}
}

func TestContactEndToEnd(t *testing.T) {
	server := setupTestServer(t)

	t.Run("valid submission reports skipped without SMTP", func(t *testing.T) {
		body := `{"name":"Asha","email":"asha@example.com","message":"Hello"}`
		resp, err := http.Post(server.URL+"/api/contact", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("POST failed: %v", err)
		}
		defer resp.Body.Close()

		var out handlers.ContactResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if !out.OK || out.Mail != models.MailSkipped {
			t.Errorf("unexpected response: %+v", out)
		}
	})

	t.Run("invalid submission rejected", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/api/contact", "application/json", strings.NewReader(`{"name":"A"}`))
		if err != nil {
			t.Fatalf("POST failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})
}

func TestDashboardEndToEnd(t *testing.T) {
	server := setupTestServer(t)

	var resp handlers.DashboardResponse
	getJSON(t, server.URL+"/api/dashboard?city=Mumbai", &resp)

	if !resp.OK || !resp.Dashboard.HasData {
		t.Fatalf("expected populated dashboard, got %+v", resp)
	}
	total := resp.Dashboard.PhaseCounts.Green + resp.Dashboard.PhaseCounts.Amber +
		resp.Dashboard.PhaseCounts.Red + resp.Dashboard.PhaseCounts.Unknown
	if total != resp.Dashboard.Count {
		t.Errorf("phase counts %d do not sum to count %d", total, resp.Dashboard.Count)
	}
	if resp.Dashboard.Centroid == nil || resp.Dashboard.Bounds == nil || resp.Dashboard.Busiest == nil {
		t.Error("expected centroid, bounds and busiest for a live city")
	}
}

func TestStreamEndToEnd(t *testing.T) {
	server := setupTestServer(t)

	resp, err := http.Get(server.URL + "/api/stream?city=Pune&session=integration")
	if err != nil {
		t.Fatalf("failed to open stream: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("expected text/event-stream, got %q", ct)
	}

	type event struct {
		Meta          models.CityMeta       `json:"meta"`
		Intersections []models.Intersection `json:"intersections"`
	}

	reader := bufio.NewReader(resp.Body)
	done := make(chan event, 1)
	go func() {
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			if strings.HasPrefix(line, "data: ") {
				var ev event
				if json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(line), "data: ")), &ev) == nil {
					done <- ev
					return
				}
			}
		}
	}()

	select {
	case ev := <-done:
		if len(ev.Intersections) != 12 {
			t.Errorf("expected 12 intersections in the first event, got %d", len(ev.Intersections))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the first stream event")
	}
}

func TestSpatEndToEnd(t *testing.T) {
	server := setupTestServer(t)

	var list handlers.IntersectionsResponse
	getJSON(t, server.URL+"/api/intersections", &list)
	if len(list.Intersections) == 0 {
		t.Fatal("expected default intersections")
	}

	var resp handlers.SpatResponse
	getJSON(t, server.URL+"/api/spat/"+list.Intersections[0].ID, &resp)
	if !resp.OK || resp.Intersection.ID != list.Intersections[0].ID {
		t.Errorf("unexpected spat response: %+v", resp)
	}
}

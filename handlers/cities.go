package handlers

import (
	"context"
	"log"
	"net/http"
)

// Suggester defines the interface for city autocomplete lookups
type Suggester interface {
	Suggest(ctx context.Context, query string, limit int) ([]string, error)
}

// CityHandler handles HTTP requests for city suggestions
type CityHandler struct {
	geo Suggester
}

// NewCityHandler creates a new handler with the given suggester
func NewCityHandler(geo Suggester) *CityHandler {
	return &CityHandler{geo: geo}
}

// CitiesResponse is the JSON response structure for GET /api/cities
type CitiesResponse struct {
	OK     bool     `json:"ok"`
	Cities []string `json:"cities"`
}

// GetCities handles GET /api/cities
// Returns up to ten display names matching the query. Suggestion failures
// degrade to an empty list: autocomplete is never worth an error page.
func (h *CityHandler) GetCities(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	names, err := h.geo.Suggest(r.Context(), query, 10)
	if err != nil {
		log.Printf("Cities: suggestion failed for %q: %v", query, err)
		names = nil
	}
	if names == nil {
		names = []string{}
	}

	writeJSON(w, http.StatusOK, CitiesResponse{OK: true, Cities: names})
}

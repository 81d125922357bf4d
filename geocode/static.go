package geocode

import (
	"context"
	"strings"

	"github.com/sanketa/backend/models"
	"github.com/sanketa/backend/simulation"
)

// Static resolves cities without any network access, for offline mode. It
// uses the built-in city table and deterministic pseudo-coordinates for
// unknown names, so it never reports a city as missing.
type Static struct{}

// Geocode resolves a query against the static city table.
func (Static) Geocode(ctx context.Context, query string) (models.Location, error) {
	return simulation.PickCenter(query), nil
}

// Suggest filters the static city table by substring match.
func (Static) Suggest(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 || limit > 10 {
		limit = 10
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	var names []string
	for _, name := range simulation.CityNames() {
		if strings.Contains(strings.ToLower(name), q) {
			names = append(names, name)
			if len(names) == limit {
				break
			}
		}
	}
	return names, nil
}

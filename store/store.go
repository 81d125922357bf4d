package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/sanketa/backend/models"
	"github.com/sanketa/backend/simulation"
)

// ErrCityNotFound is returned when geocoding yields no usable result for a
// requested city. Upstream failures collapse into the same error so callers
// see one graceful "not found" condition either way.
var ErrCityNotFound = errors.New("city not found")

// Geocoder resolves a free-text city query to a center location.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (models.Location, error)
}

// Store owns every live city entry: the default set plus one cached entry
// per looked-up city. Entries are generated on miss, reused within the TTL,
// and regenerated (re-geocoded) once they age out. The rotation engine
// ticks all of them every second regardless of TTL state.
type Store struct {
	geo Geocoder
	now func() time.Time
	ttl time.Duration

	mu      sync.Mutex
	base    models.Snapshot
	entries map[string]*models.Snapshot

	group singleflight.Group
}

// New creates a store with a pre-generated default-city entry. A nil clock
// means time.Now; tests inject a fake one.
func New(geo Geocoder, defaultCity string, ttl time.Duration, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	if defaultCity == "" {
		defaultCity = simulation.DefaultCity
	}
	base := simulation.Generate(defaultCity, simulation.PickCenter(defaultCity))
	base.GeneratedAt = now()
	return &Store{
		geo:     geo,
		now:     now,
		ttl:     ttl,
		base:    base,
		entries: make(map[string]*models.Snapshot),
	}
}

// DefaultSnapshot returns a copy of the default-city entry.
func (s *Store) DefaultSnapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySnapshot(&s.base)
}

// GetOrCreate returns the current snapshot for a city, generating and
// caching a fresh entry on miss or TTL expiry. Concurrent first lookups of
// the same key share one geocode+generate flight.
func (s *Store) GetOrCreate(ctx context.Context, city string) (models.Snapshot, error) {
	key := normalizeKey(city)
	if key == "" {
		return s.DefaultSnapshot(), nil
	}

	if snap, ok := s.cached(key); ok {
		return snap, nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		// Another waiter may have repopulated the entry while this
		// call queued behind the flight.
		if snap, ok := s.cached(key); ok {
			return snap, nil
		}

		loc, err := s.geo.Geocode(ctx, city)
		if err != nil {
			log.Printf("Store: geocode failed for %q: %v", city, err)
			return models.Snapshot{}, fmt.Errorf("%w: %s", ErrCityNotFound, city)
		}

		snap := simulation.Generate(key, loc)
		snap.GeneratedAt = s.now()

		s.mu.Lock()
		s.entries[key] = &snap
		out := copySnapshot(&snap)
		s.mu.Unlock()
		return out, nil
	})
	if err != nil {
		return models.Snapshot{}, err
	}
	return v.(models.Snapshot), nil
}

// cached returns a copy of the entry for key if it exists and is younger
// than the TTL.
func (s *Store) cached(key string) (models.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok || s.now().Sub(entry.GeneratedAt) >= s.ttl {
		return models.Snapshot{}, false
	}
	return copySnapshot(entry), true
}

// Find looks an intersection up by id across the default set and every
// cached entry.
func (s *Store) Find(id string) (models.Intersection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, in := range s.base.Intersections {
		if in.ID == id {
			return in, true
		}
	}
	for _, entry := range s.entries {
		for _, in := range entry.Intersections {
			if in.ID == id {
				return in, true
			}
		}
	}
	return models.Intersection{}, false
}

// TickAll advances every live entry by one second. Mutation happens under
// the same lock snapshot reads take, so a reader never observes a
// half-applied tick.
func (s *Store) TickAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	simulation.Tick(s.base.Intersections)
	for _, entry := range s.entries {
		simulation.Tick(entry.Intersections)
	}
}

// Run drives the rotation engine until the context is cancelled. Ticks for
// one store are strictly sequential: the next tick cannot start before the
// previous mutation finished.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.TickAll()
		case <-ctx.Done():
			log.Println("Store: tick loop stopped")
			return
		}
	}
}

// normalizeKey is the case-insensitive cache key for a city.
func normalizeKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

func copySnapshot(snap *models.Snapshot) models.Snapshot {
	out := *snap
	out.Intersections = make([]models.Intersection, len(snap.Intersections))
	copy(out.Intersections, snap.Intersections)
	if snap.Meta.BBox != nil {
		out.Meta.BBox = append([]float64(nil), snap.Meta.BBox...)
	}
	return out
}

package models

import (
	"errors"
	"fmt"
	"strings"
)

// Phase is the signal state of one intersection.
type Phase string

const (
	PhaseGreen Phase = "GREEN"
	PhaseAmber Phase = "AMBER"
	PhaseRed   Phase = "RED"

	// PhaseUnknown is the normalization bucket for missing or corrupt
	// phase strings. It is never assigned by the generator or the
	// rotation engine.
	PhaseUnknown Phase = "UNKNOWN"
)

// NormalizePhase maps a raw phase string onto one of the known phases,
// folding case and falling back to PhaseUnknown.
func NormalizePhase(s string) Phase {
	switch Phase(strings.ToUpper(strings.TrimSpace(s))) {
	case PhaseGreen:
		return PhaseGreen
	case PhaseAmber:
		return PhaseAmber
	case PhaseRed:
		return PhaseRed
	default:
		return PhaseUnknown
	}
}

// Intersection represents a single simulated signal-controlled junction.
// ID is stable for the lifetime of a city's intersection set; Lat/Lng never
// change after generation.
type Intersection struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	Phase            Phase   `json:"phase"`
	RemainingSeconds int     `json:"remainingSeconds"`
}

// Validate checks if the Intersection has valid data
// Returns error if any validation fails
func (i *Intersection) Validate() error {
	if i.ID == "" {
		return errors.New("id is required")
	}
	if i.Name == "" {
		return errors.New("name is required")
	}
	if i.Lat < -90 || i.Lat > 90 {
		return errors.New("latitude out of range: must be between -90 and 90")
	}
	if i.Lng < -180 || i.Lng > 180 {
		return errors.New("longitude out of range: must be between -180 and 180")
	}
	if NormalizePhase(string(i.Phase)) == PhaseUnknown {
		return fmt.Errorf("unknown phase: %q", i.Phase)
	}
	if i.RemainingSeconds < 0 {
		return errors.New("remainingSeconds must not be negative")
	}
	return nil
}

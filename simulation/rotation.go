package simulation

import "github.com/sanketa/backend/models"

// transition is one row of the phase-transition table.
type transition struct {
	next    models.Phase
	seconds int
}

// transitions is the authoritative phase cycle: GREEN→AMBER→RED→GREEN.
var transitions = map[models.Phase]transition{
	models.PhaseGreen: {next: models.PhaseAmber, seconds: 5},
	models.PhaseAmber: {next: models.PhaseRed, seconds: 30},
	models.PhaseRed:   {next: models.PhaseGreen, seconds: 25},
}

// Tick advances every intersection in the list by one second. Each
// intersection's transition depends only on its own prior state, so the
// iteration order does not matter.
func Tick(list []models.Intersection) {
	for i := range list {
		Advance(&list[i])
	}
}

// Advance decrements an intersection's countdown and applies the phase
// transition when it expires. A phase with no table entry is left as-is
// with the countdown clamped at zero; corrupt state must never panic the
// tick loop.
func Advance(in *models.Intersection) {
	in.RemainingSeconds--
	if in.RemainingSeconds > 0 {
		return
	}
	t, ok := transitions[in.Phase]
	if !ok {
		in.RemainingSeconds = 0
		return
	}
	in.Phase = t.next
	in.RemainingSeconds = t.seconds
}

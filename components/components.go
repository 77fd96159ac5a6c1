// Package components defines ECS components for the simulation.
package components

// Position represents a creature's cell position on the world grid.
type Position struct {
	X, Y int
}

// Vitals holds a creature's survival state.
// Health and Energy are clamped to [0,100] after every update.
type Vitals struct {
	Health float64
	Energy float64
	Alive  bool
}

// Tokens is the bounded currency balance gating advisory consultations.
// The balance is never negative.
type Tokens struct {
	Balance int
}

// Meta holds creature identity.
type Meta struct {
	ID   uint32
	Name string
}

// Clamp100 clamps v to [0,100].
func Clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

package world

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/dreamers/components"
)

// Effect describes what an accepted or rejected action did to the world.
type Effect uint8

const (
	EffectNone Effect = iota
	EffectBlocked
	EffectMoved
	EffectAte
	EffectMadeSound
)

var effectNames = [...]string{"none", "blocked", "moved", "ate", "made_sound"}

func (e Effect) String() string {
	if int(e) < len(effectNames) {
		return effectNames[e]
	}
	return "unknown"
}

// Outcome is the world's response to a proposed action.
// Accepted=false means the stochastic gate rejected the action outright;
// Accepted=true with EffectBlocked means the action ran but collided with
// an obstacle or another creature.
type Outcome struct {
	Accepted      bool
	Pos           components.Position
	Effect        Effect
	NearCreatures int // Others within Manhattan distance 2 of the final position
	Responded     int // Others within hearing range of an emitted sound
}

// Sound emission constants.
const (
	soundFreqLow   = 0.3
	soundFreqHigh  = 0.7
	soundAmplitude = 0.8
	hearingRange   = 3 // Manhattan distance for sound responses
	socialRange    = 2 // Manhattan distance for proximity counting
)

// Model wraps the grid with stochastic action acceptance. All randomness
// (the acceptance gate, explore directions) draws from the one shared RNG
// so identical seeds reproduce identical trajectories.
type Model struct {
	Grid *Grid

	acceptance float64
	rng        *rand.Rand
	positions  map[uint32]components.Position
}

// NewModel creates a world model around an existing grid.
func NewModel(grid *Grid, acceptanceRate float64, rng *rand.Rand) *Model {
	return &Model{
		Grid:       grid,
		acceptance: acceptanceRate,
		rng:        rng,
		positions:  make(map[uint32]components.Position),
	}
}

// Register records a creature's position so other creatures can perceive and
// collide with it.
func (m *Model) Register(id uint32, pos components.Position) {
	m.positions[id] = pos
}

// Forget removes a creature from position tracking (on death).
func (m *Model) Forget(id uint32) {
	delete(m.positions, id)
}

// OthersAt returns the positions of all tracked creatures except id.
func (m *Model) OthersAt(id uint32) []components.Position {
	out := make([]components.Position, 0, len(m.positions))
	for oid, p := range m.positions {
		if oid != id {
			out = append(out, p)
		}
	}
	return out
}

// LocalViewFor builds a perception snapshot for the given creature.
func (m *Model) LocalViewFor(id uint32, pos components.Position, radius int) *LocalView {
	return m.Grid.LocalView(pos.X, pos.Y, radius, m.OthersAt(id))
}

// ProposeAction validates and stochastically accepts or rejects an action,
// executing it on acceptance. Invalid input is degraded, logged, and never
// fatal: unknown actions are treated as stay, out-of-bounds positions are
// clamped.
func (m *Model) ProposeAction(id uint32, action components.Action, pos components.Position) Outcome {
	if !action.Valid() {
		slog.Warn("unknown action proposed, treating as stay", "creature", id, "action", uint8(action))
		action = components.ActStay
	}
	if !m.Grid.InBounds(pos.X, pos.Y) {
		clamped := m.clamp(pos)
		slog.Warn("out-of-bounds position proposed, clamping",
			"creature", id, "x", pos.X, "y", pos.Y, "clamped_x", clamped.X, "clamped_y", clamped.Y)
		pos = clamped
	}
	m.positions[id] = pos

	if m.rng.Float64() >= m.acceptance {
		return Outcome{Accepted: false, Pos: pos, Effect: EffectBlocked}
	}

	out := m.execute(id, action, pos)
	out.Accepted = true
	m.positions[id] = out.Pos
	return out
}

func (m *Model) clamp(pos components.Position) components.Position {
	x := maxInt(0, minInt(pos.X, m.Grid.Width-1))
	y := maxInt(0, minInt(pos.Y, m.Grid.Height-1))
	return components.Position{X: x, Y: y}
}

// execute applies an accepted action and returns its outcome.
func (m *Model) execute(id uint32, action components.Action, pos components.Position) Outcome {
	out := Outcome{Pos: pos, Effect: EffectNone}

	switch {
	case action.IsMovement():
		m.executeMove(id, action, pos, &out)

	case action == components.ActEat:
		if m.Grid.ClearFood(pos.X, pos.Y) {
			out.Effect = EffectAte
		}

	case action.IsSound():
		freq := soundFreqLow
		if action == components.ActSoundHigh {
			freq = soundFreqHigh
		}
		m.Grid.EmitSound(pos.X, pos.Y, freq, soundAmplitude)
		out.Effect = EffectMadeSound
		out.Responded = m.countOthersWithin(id, pos, hearingRange)
	}

	out.NearCreatures = m.countOthersWithin(id, out.Pos, socialRange)
	return out
}

// executeMove computes the movement target, clamps to bounds, and blocks
// entry into obstacle cells or cells occupied by another creature.
func (m *Model) executeMove(id uint32, action components.Action, pos components.Position, out *Outcome) {
	target := pos
	dir := action
	if action == components.ActExplore {
		dir = components.Action(m.rng.Intn(4)) // one of the four movement actions
	}
	switch dir {
	case components.ActMoveNorth:
		target.Y--
	case components.ActMoveSouth:
		target.Y++
	case components.ActMoveEast:
		target.X++
	case components.ActMoveWest:
		target.X--
	}
	if !m.Grid.InBounds(target.X, target.Y) {
		return // at the world edge, stay put
	}
	if target == pos {
		return
	}

	if m.Grid.CellAt(target.X, target.Y) == CellObstacle {
		out.Effect = EffectBlocked
		return
	}
	for oid, op := range m.positions {
		if oid != id && op == target {
			out.Effect = EffectBlocked
			return
		}
	}

	out.Pos = target
	out.Effect = EffectMoved
}

func (m *Model) countOthersWithin(id uint32, pos components.Position, dist int) int {
	n := 0
	for oid, op := range m.positions {
		if oid == id {
			continue
		}
		if absInt(op.X-pos.X)+absInt(op.Y-pos.Y) <= dist {
			n++
		}
	}
	return n
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

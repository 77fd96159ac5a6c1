package sim

import (
	"github.com/pthm-cable/dreamers/components"
	"github.com/pthm-cable/dreamers/world"
)

// CreatureSnapshot is the per-creature slice of a world snapshot.
type CreatureSnapshot struct {
	ID      uint32  `json:"id"`
	Name    string  `json:"name"`
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Health  float64 `json:"health"`
	Energy  float64 `json:"energy"`
	Alive   bool    `json:"alive"`
	Valence float64 `json:"valence"`
	Arousal float64 `json:"arousal"`
	Tokens  int     `json:"tokens"`
}

// Snapshot is a read-only view of the simulation state for external viewers.
type Snapshot struct {
	Step      int                   `json:"step"`
	Width     int                   `json:"w"`
	Height    int                   `json:"h"`
	Food      []components.Position `json:"food"`
	Obstacles []components.Position `json:"obstacles"`
	Creatures []CreatureSnapshot    `json:"creatures"`
}

// Snapshot captures the current state. Dead creatures are included with
// Alive=false so viewers can render them.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Step:      e.step,
		Width:     e.grid.Width,
		Height:    e.grid.Height,
		Food:      e.grid.Cells(world.CellFood),
		Obstacles: e.grid.Cells(world.CellObstacle),
	}

	query := e.filter.Query()
	for query.Next() {
		pos, vit, tok, meta := query.Get()
		b := e.brains[meta.ID]
		snap.Creatures = append(snap.Creatures, CreatureSnapshot{
			ID:      meta.ID,
			Name:    meta.Name,
			X:       pos.X,
			Y:       pos.Y,
			Health:  vit.Health,
			Energy:  vit.Energy,
			Alive:   vit.Alive,
			Valence: b.Mood.Valence,
			Arousal: b.Mood.Arousal,
			Tokens:  tok.Balance,
		})
	}

	return snap
}

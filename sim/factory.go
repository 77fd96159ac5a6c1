package sim

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dreamers/brain"
	"github.com/pthm-cable/dreamers/components"
	"github.com/pthm-cable/dreamers/world"
)

// spawnInitialPopulation creates the starting creatures on free cells.
func (e *Engine) spawnInitialPopulation() {
	for i := 0; i < e.cfg.Creature.InitialCount; i++ {
		e.spawnCreature(fmt.Sprintf("creature_%d", i))
	}
}

// spawnCreature places a new creature on a random empty, unoccupied cell.
func (e *Engine) spawnCreature(name string) ecs.Entity {
	id := e.nextID
	e.nextID++

	pos := e.freePosition()
	vit := components.Vitals{
		Health: e.cfg.Creature.StartingHealth,
		Energy: e.cfg.Creature.StartingEnergy,
		Alive:  true,
	}
	tok := components.Tokens{Balance: e.cfg.Tokens.Initial}
	meta := components.Meta{ID: id, Name: name}

	e.brains[id] = brain.New(id, &e.cfg.Mood, &e.cfg.Learning)
	e.model.Register(id, pos)
	e.alive++

	return e.mapper.NewEntity(&pos, &vit, &tok, &meta)
}

// freePosition draws random cells until one is empty and unoccupied.
func (e *Engine) freePosition() components.Position {
	for {
		p := components.Position{
			X: e.rng.Intn(e.grid.Width),
			Y: e.rng.Intn(e.grid.Height),
		}
		if e.grid.CellAt(p.X, p.Y) != world.CellEmpty {
			continue
		}
		if e.occupied(p) {
			continue
		}
		return p
	}
}

func (e *Engine) occupied(p components.Position) bool {
	for _, op := range e.model.OthersAt(^uint32(0)) {
		if op == p {
			return true
		}
	}
	return false
}

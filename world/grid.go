// Package world owns the resource/obstacle grid, the sound field, and the
// non-deterministic model that executes creature actions against them.
package world

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/dreamers/components"
	"github.com/pthm-cable/dreamers/config"
)

// Cell is the state of a single grid cell.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellFood
	CellObstacle
)

// Sound is the per-cell sound field state.
type Sound struct {
	Frequency float64
	Amplitude float64
}

// Grid is the 2D resource/obstacle grid with a parallel sound field.
// Obstacles are immutable after initialization; food is consumed by accepted
// eat actions and respawned by Step.
type Grid struct {
	Width  int
	Height int

	cells []Cell
	sound []Sound

	respawnProb   float64
	respawnAmount float64
	soundDecay    float64
	attenuation   float64
	patchiness    float64

	noise opensimplex.Noise
	rng   *rand.Rand
}

// patchScale is the noise frequency used for clustered food placement.
const patchScale = 0.08

// NewGrid creates a grid with configured food and obstacle densities.
func NewGrid(cfg *config.WorldConfig, rng *rand.Rand) *Grid {
	g := &Grid{
		Width:  cfg.Width,
		Height: cfg.Height,

		cells: make([]Cell, cfg.Width*cfg.Height),
		sound: make([]Sound, cfg.Width*cfg.Height),

		respawnProb:   cfg.FoodRespawnProbability,
		respawnAmount: cfg.FoodRespawnAmount,
		soundDecay:    cfg.SoundDecayRate,
		attenuation:   cfg.SoundAttenuation,
		patchiness:    cfg.FoodPatchiness,

		noise: opensimplex.NewNormalized(rng.Int63()),
		rng:   rng,
	}

	g.spawnFood(cfg.FoodSpawnRate)
	g.spawnObstacles(cfg.ObstacleDensity)

	return g
}

func (g *Grid) idx(x, y int) int {
	return y*g.Width + x
}

// InBounds reports whether (x,y) is a valid cell coordinate.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// CellAt returns the cell state at (x,y).
func (g *Grid) CellAt(x, y int) Cell {
	return g.cells[g.idx(x, y)]
}

// SoundAt returns the sound field state at (x,y).
func (g *Grid) SoundAt(x, y int) Sound {
	return g.sound[g.idx(x, y)]
}

// ClearFood empties a food cell. Non-food cells are left untouched.
func (g *Grid) ClearFood(x, y int) bool {
	i := g.idx(x, y)
	if g.cells[i] != CellFood {
		return false
	}
	g.cells[i] = CellEmpty
	return true
}

// spawnFood places food into empty cells at the given density.
// With patchiness > 0, candidate cells must fall inside high-noise patches;
// a bounded retry keeps the realized density close to the target.
func (g *Grid) spawnFood(density float64) {
	count := int(float64(g.Width*g.Height) * density)
	for i := 0; i < count; i++ {
		tries := 1
		if g.patchiness > 0 {
			tries = 10
		}
		for t := 0; t < tries; t++ {
			x := g.rng.Intn(g.Width)
			y := g.rng.Intn(g.Height)
			if g.patchiness > 0 {
				n := g.noise.Eval2(float64(x)*patchScale, float64(y)*patchScale)
				if n < 1.0-g.patchiness {
					continue
				}
			}
			if g.cells[g.idx(x, y)] == CellEmpty {
				g.cells[g.idx(x, y)] = CellFood
			}
			break
		}
	}
}

// spawnObstacles places obstacles into empty cells at the given density.
func (g *Grid) spawnObstacles(density float64) {
	count := int(float64(g.Width*g.Height) * density)
	for i := 0; i < count; i++ {
		x := g.rng.Intn(g.Width)
		y := g.rng.Intn(g.Height)
		if g.cells[g.idx(x, y)] == CellEmpty {
			g.cells[g.idx(x, y)] = CellObstacle
		}
	}
}

// EmitSound writes (frequency, amplitude) at the source cell and propagates
// to the 8 neighbors at the attenuation factor. A cell is only overwritten
// if the incoming sound is louder than what is already there.
func (g *Grid) EmitSound(x, y int, frequency, amplitude float64) {
	if !g.InBounds(x, y) {
		return
	}
	if amplitude > g.sound[g.idx(x, y)].Amplitude {
		g.sound[g.idx(x, y)] = Sound{Frequency: frequency, Amplitude: amplitude}
	}

	propagated := amplitude * g.attenuation
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !g.InBounds(nx, ny) {
				continue
			}
			if propagated > g.sound[g.idx(nx, ny)].Amplitude {
				g.sound[g.idx(nx, ny)] = Sound{Frequency: frequency, Amplitude: propagated}
			}
		}
	}
}

// Step applies the global per-timestep world update: geometric sound decay
// and an occasional food respawn pass. Runs exactly once per timestep, after
// all creatures have been processed.
func (g *Grid) Step() {
	for i := range g.sound {
		g.sound[i].Amplitude *= g.soundDecay
	}

	if g.rng.Float64() < g.respawnProb {
		g.spawnFood(g.respawnAmount)
	}
}

// FoodRemaining counts food cells.
func (g *Grid) FoodRemaining() int {
	n := 0
	for _, c := range g.cells {
		if c == CellFood {
			n++
		}
	}
	return n
}

// MeanAmplitude returns the mean sound amplitude over the whole field.
func (g *Grid) MeanAmplitude() float64 {
	if len(g.sound) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range g.sound {
		sum += s.Amplitude
	}
	return sum / float64(len(g.sound))
}

// Cells returns cell coordinates matching the given state, row-major.
func (g *Grid) Cells(want Cell) []components.Position {
	var out []components.Position
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.cells[g.idx(x, y)] == want {
				out = append(out, components.Position{X: x, Y: y})
			}
		}
	}
	return out
}

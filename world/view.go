package world

import "github.com/pthm-cable/dreamers/components"

// LocalView is an owned snapshot of a bounded sub-rectangle of the grid and
// sound field, plus aggregate counts. It is copied out of the grid's backing
// storage so later mutations in the same timestep cannot leak into an
// earlier creature's perception.
type LocalView struct {
	Visual     [][]Cell
	SoundField [][]Sound

	FoodCount     int
	ObstacleCount int
	CreatureCount int

	// Offset of the requesting creature within the view rectangle.
	CenterX int
	CenterY int
}

// LocalView extracts a snapshot centered on (x,y), clipped to grid bounds.
// others are the positions of other creatures; those inside the rectangle
// are counted into CreatureCount.
func (g *Grid) LocalView(x, y, radius int, others []components.Position) *LocalView {
	x1, x2 := maxInt(0, x-radius), minInt(g.Width, x+radius+1)
	y1, y2 := maxInt(0, y-radius), minInt(g.Height, y+radius+1)

	v := &LocalView{
		Visual:     make([][]Cell, y2-y1),
		SoundField: make([][]Sound, y2-y1),
		CenterX:    x - x1,
		CenterY:    y - y1,
	}

	for row := y1; row < y2; row++ {
		vr := make([]Cell, x2-x1)
		sr := make([]Sound, x2-x1)
		for col := x1; col < x2; col++ {
			c := g.cells[g.idx(col, row)]
			vr[col-x1] = c
			sr[col-x1] = g.sound[g.idx(col, row)]
			switch c {
			case CellFood:
				v.FoodCount++
			case CellObstacle:
				v.ObstacleCount++
			}
		}
		v.Visual[row-y1] = vr
		v.SoundField[row-y1] = sr
	}

	for _, p := range others {
		if p.X >= x1 && p.X < x2 && p.Y >= y1 && p.Y < y2 {
			v.CreatureCount++
		}
	}

	return v
}

// MeanAmplitude returns the mean sound amplitude across the view, or 0 for
// a nil or empty view.
func (v *LocalView) MeanAmplitude() float64 {
	if v == nil || len(v.SoundField) == 0 {
		return 0
	}
	sum := 0.0
	n := 0
	for _, row := range v.SoundField {
		for _, s := range row {
			sum += s.Amplitude
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

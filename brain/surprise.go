package brain

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/dreamers/world"
)

// historyCap bounds the perception history.
const historyCap = 20

// Surprise combination weights: food change, creature change, sound change.
const (
	surpriseFoodWeight     = 0.3
	surpriseCreatureWeight = 0.3
	surpriseSoundWeight    = 0.4
)

// firstPerceptionSurprise is returned when the history is empty; the first
// perception is inherently novel.
const firstPerceptionSurprise = 0.5

// viewStats is the compact form of a local view kept in perception history.
type viewStats struct {
	food      float64
	creatures float64
	meanAmp   float64
}

// SurpriseEstimator scores how different the current perception is from the
// most recent remembered one.
type SurpriseEstimator struct {
	history []viewStats
}

// NewSurpriseEstimator creates an estimator with an empty history.
func NewSurpriseEstimator() *SurpriseEstimator {
	return &SurpriseEstimator{history: make([]viewStats, 0, historyCap)}
}

// Estimate returns a surprise score in [0,1] for the given view and appends
// it to the history, evicting entries beyond the bound. A nil or malformed
// view is substituted with neutral values and logged, never a panic.
func (e *SurpriseEstimator) Estimate(v *world.LocalView) float64 {
	stats := statsOf(v)

	if len(e.history) == 0 {
		e.push(stats)
		return firstPerceptionSurprise
	}

	last := e.history[len(e.history)-1]
	s := surpriseFoodWeight*math.Abs(stats.food-last.food) +
		surpriseCreatureWeight*math.Abs(stats.creatures-last.creatures) +
		surpriseSoundWeight*math.Abs(stats.meanAmp-last.meanAmp)
	if s > 1 {
		s = 1
	}

	e.push(stats)
	return s
}

// HistoryLen returns the number of remembered perceptions.
func (e *SurpriseEstimator) HistoryLen() int {
	return len(e.history)
}

func (e *SurpriseEstimator) push(s viewStats) {
	e.history = append(e.history, s)
	if len(e.history) > historyCap {
		e.history = e.history[len(e.history)-historyCap:]
	}
}

func statsOf(v *world.LocalView) viewStats {
	if v == nil {
		slog.Warn("nil perception, substituting neutral values")
		return viewStats{}
	}
	return viewStats{
		food:      float64(v.FoodCount),
		creatures: float64(v.CreatureCount),
		meanAmp:   v.MeanAmplitude(),
	}
}

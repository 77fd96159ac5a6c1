// Package telemetry collects windowed simulation statistics and writes them
// as CSV for offline analysis.
package telemetry

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of simulation steps.
type WindowStats struct {
	WindowStartStep int `csv:"-"`
	WindowEndStep   int `csv:"window_end"`

	// Population at window end
	Alive  int `csv:"alive"`
	Deaths int `csv:"deaths"`

	// Action outcomes during the window
	Actions    int     `csv:"actions"`
	Rejected   int     `csv:"rejected"`
	Collisions int     `csv:"collisions"`
	Meals      int     `csv:"meals"`
	Sounds     int     `csv:"sounds"`
	AcceptRate float64 `csv:"accept_rate"`

	// Advisory and token economy
	AdvisoryUsed int `csv:"advisory_used"`
	TokensEarned int `csv:"tokens_earned"`
	TokensSpent  int `csv:"tokens_spent"`

	// Mood distribution across living creatures (sampled at window end)
	ValenceMean float64 `csv:"valence_mean"`
	ValenceStd  float64 `csv:"valence_std"`
	ArousalMean float64 `csv:"arousal_mean"`
	ArousalStd  float64 `csv:"arousal_std"`

	// Learning signals averaged over the window
	MeanReward   float64 `csv:"mean_reward"`
	MeanSurprise float64 `csv:"mean_surprise"`

	// World state at window end
	FoodRemaining      int     `csv:"food_remaining"`
	MeanSoundAmplitude float64 `csv:"mean_sound_amplitude"`
}

// MeanStd returns mean and standard deviation of values, zero-safe for
// empty or single-element slices.
func MeanStd(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean = stat.Mean(values, nil)
	if len(values) > 1 {
		std = stat.StdDev(values, nil)
		if math.IsNaN(std) {
			std = 0
		}
	}
	return mean, std
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	rank := p * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// SortedCopy returns an ascending copy of values.
func SortedCopy(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
}

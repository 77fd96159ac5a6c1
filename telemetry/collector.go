package telemetry

import "github.com/pthm-cable/dreamers/world"

// Collector accumulates events within step windows and produces WindowStats.
type Collector struct {
	windowSteps     int
	windowStartStep int

	// Event counters for the current window
	actions      int
	rejected     int
	collisions   int
	meals        int
	sounds       int
	deaths       int
	advisoryUsed int
	tokensEarned int
	tokensSpent  int

	rewardSum   float64
	surpriseSum float64
	samples     int
}

// NewCollector creates a stats collector flushing every windowSteps steps.
func NewCollector(windowSteps int) *Collector {
	if windowSteps < 1 {
		windowSteps = 1
	}
	return &Collector{windowSteps: windowSteps}
}

// RecordOutcome records one proposed action and its outcome.
func (c *Collector) RecordOutcome(out world.Outcome) {
	c.actions++
	if !out.Accepted {
		c.rejected++
		return
	}
	switch out.Effect {
	case world.EffectBlocked:
		c.collisions++
	case world.EffectAte:
		c.meals++
	case world.EffectMadeSound:
		c.sounds++
	}
}

// RecordLearning records the per-creature learning signals for one step.
func (c *Collector) RecordLearning(surprise, reward float64) {
	c.surpriseSum += surprise
	c.rewardSum += reward
	c.samples++
}

// RecordDeath records a creature death.
func (c *Collector) RecordDeath() {
	c.deaths++
}

// RecordAdvisory records a successful advisory consultation.
func (c *Collector) RecordAdvisory() {
	c.advisoryUsed++
}

// RecordTokens records token movement: earned from surprise, spent on
// consultations.
func (c *Collector) RecordTokens(earned, spent int) {
	c.tokensEarned += earned
	c.tokensSpent += spent
}

// ShouldFlush returns true when the current window is complete.
func (c *Collector) ShouldFlush(step int) bool {
	return step-c.windowStartStep >= c.windowSteps
}

// Flush produces a WindowStats from the window's counters plus the caller's
// end-of-window population samples, then resets for the next window.
func (c *Collector) Flush(step, alive, foodRemaining int, valences, arousals []float64, meanSoundAmp float64) WindowStats {
	acceptRate := 0.0
	if c.actions > 0 {
		acceptRate = float64(c.actions-c.rejected) / float64(c.actions)
	}

	meanReward, meanSurprise := 0.0, 0.0
	if c.samples > 0 {
		meanReward = c.rewardSum / float64(c.samples)
		meanSurprise = c.surpriseSum / float64(c.samples)
	}

	valMean, valStd := MeanStd(valences)
	aroMean, aroStd := MeanStd(arousals)

	stats := WindowStats{
		WindowStartStep: c.windowStartStep,
		WindowEndStep:   step,

		Alive:  alive,
		Deaths: c.deaths,

		Actions:    c.actions,
		Rejected:   c.rejected,
		Collisions: c.collisions,
		Meals:      c.meals,
		Sounds:     c.sounds,
		AcceptRate: acceptRate,

		AdvisoryUsed: c.advisoryUsed,
		TokensEarned: c.tokensEarned,
		TokensSpent:  c.tokensSpent,

		ValenceMean: valMean,
		ValenceStd:  valStd,
		ArousalMean: aroMean,
		ArousalStd:  aroStd,

		MeanReward:   meanReward,
		MeanSurprise: meanSurprise,

		FoodRemaining:      foodRemaining,
		MeanSoundAmplitude: meanSoundAmp,
	}

	c.windowStartStep = step
	c.actions = 0
	c.rejected = 0
	c.collisions = 0
	c.meals = 0
	c.sounds = 0
	c.deaths = 0
	c.advisoryUsed = 0
	c.tokensEarned = 0
	c.tokensSpent = 0
	c.rewardSum = 0
	c.surpriseSum = 0
	c.samples = 0

	return stats
}

// WindowSteps returns the number of steps per window.
func (c *Collector) WindowSteps() int {
	return c.windowSteps
}

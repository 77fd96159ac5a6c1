// Package brain implements creature cognition: perceptual surprise, reward
// prediction driven mood, action-value learning, and mood-biased action
// selection with an optional external advisory capability.
package brain

import "github.com/pthm-cable/dreamers/config"

// Brain bundles the per-creature cognition state. One Brain per creature,
// owned by the simulation loop and looked up by creature ID.
type Brain struct {
	ID uint32

	Mood     *MoodEngine
	Values   *ValueLearner
	Surprise *SurpriseEstimator
}

// New creates a brain with the configured mood and learning parameters.
func New(id uint32, moodCfg *config.MoodConfig, learnCfg *config.LearningConfig) *Brain {
	return &Brain{
		ID:       id,
		Mood:     NewMoodEngine(moodCfg),
		Values:   NewValueLearner(learnCfg.ValueLearningRate),
		Surprise: NewSurpriseEstimator(),
	}
}

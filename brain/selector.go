package brain

import (
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/pthm-cable/dreamers/components"
	"github.com/pthm-cable/dreamers/config"
	"github.com/pthm-cable/dreamers/world"
)

// Mood thresholds and bias magnitudes for action selection.
const (
	highArousal     = 0.7
	lowArousal      = 0.3
	positiveValence = 0.3
	negativeValence = -0.3

	arousalExploreBias = 0.3
	arousalSoundBias   = 0.2
	calmStayBias       = 0.3
	calmListenBias     = 0.2
	affiliativeBias    = 0.2
	affiliativeDrift   = 0.1
	avoidanceBias      = 0.2
	avoidanceStayBias  = 0.1

	eatOverride      = 0.8
	foodApproachBias = 0.4
	lowEnergyStay    = 0.7

	probFloor = 0.01
)

// Selector samples actions from a mood- and situation-biased distribution,
// optionally short-circuited by an external advisory consultation. One
// Selector is shared by all creatures; all randomness comes from the shared
// seeded RNG.
type Selector struct {
	rng     *rand.Rand
	advisor Advisor
	econ    *TokenEconomy

	advisoryProb float64
	timeout      time.Duration

	valueBiasWeight    float64
	lowHealthThreshold float64
	lowEnergyThreshold float64
}

// NewSelector creates a selector. advisor may be nil, in which case the
// local probabilistic path is always used.
func NewSelector(cfg *config.Config, rng *rand.Rand, advisor Advisor, econ *TokenEconomy) *Selector {
	return &Selector{
		rng:                rng,
		advisor:            advisor,
		econ:               econ,
		advisoryProb:       cfg.Action.AdvisoryProbability,
		timeout:            time.Duration(cfg.Action.AdvisoryTimeoutMS) * time.Millisecond,
		valueBiasWeight:    cfg.Learning.ValueBiasWeight,
		lowHealthThreshold: cfg.Creature.LowHealthThreshold,
		lowEnergyThreshold: cfg.Creature.LowEnergyThreshold,
	}
}

// Select picks an action for the creature. The second return value reports
// whether the action came from a successful advisory consultation.
func (s *Selector) Select(b *Brain, view *world.LocalView, vit *components.Vitals, tok *components.Tokens) (components.Action, bool) {
	biases := s.actionBiases(b, view, vit)

	if s.advisor != nil && s.econ.CanConsult(tok) && s.rng.Float64() < s.advisoryProb {
		if act, ok := s.consult(b, view, vit); ok {
			s.econ.Charge(tok)
			return act, true
		}
	}

	return s.sample(&biases), false
}

// actionBiases accumulates mood, learned-value, and situational biases into
// a fixed array indexed by the action enum.
func (s *Selector) actionBiases(b *Brain, view *world.LocalView, vit *components.Vitals) [components.ActionCount]float64 {
	var bias [components.ActionCount]float64
	valence, arousal := b.Mood.Valence, b.Mood.Arousal

	// High arousal seeks stimulation, low arousal conserves.
	if arousal > highArousal {
		bias[components.ActExplore] += arousalExploreBias
		bias[components.ActSoundHigh] += arousalSoundBias
	}
	if arousal < lowArousal {
		bias[components.ActStay] += calmStayBias
		bias[components.ActListen] += calmListenBias
	}

	// Positive mood is affiliative, negative mood avoidant.
	if valence > positiveValence {
		bias[components.ActSoundLow] += affiliativeBias
		bias[components.ActMoveNorth] += affiliativeDrift
	}
	if valence < negativeValence {
		bias[components.ActMoveSouth] += avoidanceBias
		bias[components.ActStay] += avoidanceStayBias
	}

	// Learned action values as a secondary nudge.
	for a := 0; a < components.ActionCount; a++ {
		bias[a] += b.Values.Value(components.Action(a)) * s.valueBiasWeight
	}

	// Situational overrides trump mood for the affected actions.
	foodVisible := view != nil && view.FoodCount > 0
	if foodVisible && vit.Health < s.lowHealthThreshold {
		bias[components.ActEat] = eatOverride
		bias[components.ActMoveNorth] = foodApproachBias
	}
	if vit.Energy < s.lowEnergyThreshold {
		bias[components.ActStay] = lowEnergyStay
	}

	return bias
}

// sample normalizes base+bias scores into a distribution and draws from it.
func (s *Selector) sample(bias *[components.ActionCount]float64) components.Action {
	base := 1.0 / float64(components.ActionCount)

	var probs [components.ActionCount]float64
	total := 0.0
	for a := 0; a < components.ActionCount; a++ {
		p := base + bias[a]
		if p < probFloor {
			p = probFloor
		}
		probs[a] = p
		total += p
	}

	r := s.rng.Float64() * total
	cum := 0.0
	for a := 0; a < components.ActionCount; a++ {
		cum += probs[a]
		if r < cum {
			return components.Action(a)
		}
	}
	return components.Action(components.ActionCount - 1)
}

// consult runs one advisory consultation. Any failure, including an action
// outside the legal set, degrades silently to the local path and costs
// nothing.
func (s *Selector) consult(b *Brain, view *world.LocalView, vit *components.Vitals) (components.Action, bool) {
	req := Request{
		Valence:      b.Mood.Valence,
		Arousal:      b.Mood.Arousal,
		Health:       vit.Health,
		Energy:       vit.Energy,
		LegalActions: components.ActionNames(),
	}
	if view != nil {
		req.FoodCount = view.FoodCount
		req.CreatureCount = view.CreatureCount
		req.MeanAmplitude = view.MeanAmplitude()
	}

	res := s.advisor.Suggest(req, s.timeout)
	if !res.OK {
		slog.Debug("advisory consultation failed", "creature", b.ID, "reason", res.Reason)
		return 0, false
	}

	act, ok := components.ParseAction(strings.ToLower(strings.TrimSpace(res.Action)))
	if !ok {
		slog.Debug("advisory returned illegal action", "creature", b.ID, "action", res.Action)
		return 0, false
	}
	return act, true
}

package brain

import (
	"github.com/pthm-cable/dreamers/config"
	"github.com/pthm-cable/dreamers/world"
)

// proximityCap limits how many nearby creatures earn social reward.
const proximityCap = 3

// RewardParams holds the reward calculation weights.
type RewardParams struct {
	SurpriseMultiplier float64
	FoodReward         float64
	SocialSoundReward  float64
	CollisionPenalty   float64
	ProximityReward    float64
}

// RewardParamsFrom builds params from config.
func RewardParamsFrom(cfg *config.RewardConfig) RewardParams {
	return RewardParams{
		SurpriseMultiplier: cfg.SurpriseMultiplier,
		FoodReward:         cfg.FoodReward,
		SocialSoundReward:  cfg.SocialSoundReward,
		CollisionPenalty:   cfg.CollisionPenalty,
		ProximityReward:    cfg.ProximityReward,
	}
}

// Total combines the surprise reward with survival and social outcomes.
// A blocked effect on an accepted action is a collision (obstacle or another
// creature); a gate rejection carries no penalty.
func (p RewardParams) Total(surprise float64, out world.Outcome) float64 {
	reward := surprise * p.SurpriseMultiplier

	switch out.Effect {
	case world.EffectAte:
		reward += p.FoodReward
	case world.EffectMadeSound:
		if out.Responded > 0 {
			reward += p.SocialSoundReward * float64(out.Responded)
		}
	case world.EffectBlocked:
		if out.Accepted {
			reward += p.CollisionPenalty
		}
	}

	if out.NearCreatures > 0 {
		n := out.NearCreatures
		if n > proximityCap {
			n = proximityCap
		}
		reward += p.ProximityReward * float64(n)
	}

	return reward
}

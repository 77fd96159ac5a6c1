package brain

import (
	"math"
	"testing"

	"github.com/pthm-cable/dreamers/world"
)

func testRewardParams() RewardParams {
	return RewardParams{
		SurpriseMultiplier: 0.5,
		FoodReward:         1.0,
		SocialSoundReward:  0.3,
		CollisionPenalty:   -0.2,
		ProximityReward:    0.1,
	}
}

func TestRewardTotal(t *testing.T) {
	p := testRewardParams()

	tests := []struct {
		name     string
		surprise float64
		out      world.Outcome
		want     float64
	}{
		{"surprise only", 0.6, world.Outcome{Accepted: true, Effect: world.EffectMoved}, 0.3},
		{"eating", 0.0, world.Outcome{Accepted: true, Effect: world.EffectAte}, 1.0},
		{"sound heard by two", 0.0, world.Outcome{Accepted: true, Effect: world.EffectMadeSound, Responded: 2}, 0.6},
		{"sound unheard", 0.0, world.Outcome{Accepted: true, Effect: world.EffectMadeSound}, 0.0},
		{"collision", 0.0, world.Outcome{Accepted: true, Effect: world.EffectBlocked}, -0.2},
		{"gate rejection is free", 0.0, world.Outcome{Accepted: false, Effect: world.EffectBlocked}, 0.0},
		{"proximity", 0.0, world.Outcome{Accepted: true, Effect: world.EffectNone, NearCreatures: 2}, 0.2},
		{"proximity capped", 0.0, world.Outcome{Accepted: true, Effect: world.EffectNone, NearCreatures: 9}, 0.3},
		{
			"combined eat near others", 0.5,
			world.Outcome{Accepted: true, Effect: world.EffectAte, NearCreatures: 1},
			0.25 + 1.0 + 0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Total(tt.surprise, tt.out); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Total = %v, want %v", got, tt.want)
			}
		})
	}
}

package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/dreamers/world"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(100)

	if c.ShouldFlush(50) {
		t.Error("ShouldFlush mid-window")
	}
	if !c.ShouldFlush(100) {
		t.Error("ShouldFlush false at window boundary")
	}

	c.RecordOutcome(world.Outcome{Accepted: true, Effect: world.EffectMoved})
	c.RecordOutcome(world.Outcome{Accepted: true, Effect: world.EffectAte})
	c.RecordOutcome(world.Outcome{Accepted: true, Effect: world.EffectMadeSound})
	c.RecordOutcome(world.Outcome{Accepted: true, Effect: world.EffectBlocked})
	c.RecordOutcome(world.Outcome{Accepted: false, Effect: world.EffectBlocked})
	c.RecordLearning(0.5, 1.0)
	c.RecordLearning(0.3, 0.0)
	c.RecordDeath()
	c.RecordAdvisory()
	c.RecordTokens(4, 3)

	stats := c.Flush(100, 9, 42, []float64{0.1, 0.3}, []float64{0.5, 0.5}, 0.02)

	if stats.Actions != 5 || stats.Rejected != 1 {
		t.Errorf("actions/rejected = %d/%d, want 5/1", stats.Actions, stats.Rejected)
	}
	if stats.Meals != 1 || stats.Sounds != 1 || stats.Collisions != 1 {
		t.Errorf("meals/sounds/collisions = %d/%d/%d, want 1/1/1",
			stats.Meals, stats.Sounds, stats.Collisions)
	}
	if math.Abs(stats.AcceptRate-0.8) > 1e-9 {
		t.Errorf("accept rate = %v, want 0.8", stats.AcceptRate)
	}
	if stats.Deaths != 1 || stats.AdvisoryUsed != 1 {
		t.Errorf("deaths/advisory = %d/%d, want 1/1", stats.Deaths, stats.AdvisoryUsed)
	}
	if stats.TokensEarned != 4 || stats.TokensSpent != 3 {
		t.Errorf("tokens = %d/%d, want 4/3", stats.TokensEarned, stats.TokensSpent)
	}
	if math.Abs(stats.MeanSurprise-0.4) > 1e-9 || math.Abs(stats.MeanReward-0.5) > 1e-9 {
		t.Errorf("mean surprise/reward = %v/%v, want 0.4/0.5", stats.MeanSurprise, stats.MeanReward)
	}
	if math.Abs(stats.ValenceMean-0.2) > 1e-9 {
		t.Errorf("valence mean = %v, want 0.2", stats.ValenceMean)
	}
	if stats.Alive != 9 || stats.FoodRemaining != 42 {
		t.Errorf("alive/food = %d/%d, want 9/42", stats.Alive, stats.FoodRemaining)
	}

	// Flush resets the window.
	if c.ShouldFlush(150) {
		t.Error("ShouldFlush true 50 steps into the new window")
	}
	stats = c.Flush(200, 9, 42, nil, nil, 0)
	if stats.Actions != 0 || stats.Deaths != 0 || stats.MeanReward != 0 {
		t.Errorf("second window not reset: %+v", stats)
	}
	if stats.WindowStartStep != 100 || stats.WindowEndStep != 200 {
		t.Errorf("window bounds = [%d,%d], want [100,200]", stats.WindowStartStep, stats.WindowEndStep)
	}
}

func TestCollectorEmptyFlushSafe(t *testing.T) {
	c := NewCollector(10)
	stats := c.Flush(10, 0, 0, nil, nil, 0)
	if stats.AcceptRate != 0 || stats.MeanReward != 0 || stats.ValenceStd != 0 {
		t.Errorf("empty flush produced nonzero stats: %+v", stats)
	}
}

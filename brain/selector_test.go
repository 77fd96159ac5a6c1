package brain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/pthm-cable/dreamers/components"
	"github.com/pthm-cable/dreamers/config"
)

// scriptedAdvisor returns a fixed result and records how it was asked.
type scriptedAdvisor struct {
	result   Result
	requests []Request
}

func (a *scriptedAdvisor) Suggest(req Request, timeout time.Duration) Result {
	a.requests = append(a.requests, req)
	return a.result
}

func selectorConfig(advisoryProb float64) *config.Config {
	cfg := &config.Config{}
	cfg.Action.AdvisoryProbability = advisoryProb
	cfg.Action.AdvisoryTimeoutMS = 500
	cfg.Learning.ValueBiasWeight = 0.2
	cfg.Creature.LowHealthThreshold = 70
	cfg.Creature.LowEnergyThreshold = 20
	return cfg
}

func testBrain() *Brain {
	return New(1, &config.MoodConfig{
		FastLearningRate: 0.1,
		SlowLearningRate: 0.01,
		ArousalDecay:     0.99,
		InitialArousal:   0.5,
	}, &config.LearningConfig{ValueLearningRate: 0.1})
}

func TestSelectReturnsValidActions(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := NewSelector(selectorConfig(0), rng, nil, testTokenEconomy(3))
	b := testBrain()
	vit := components.Vitals{Health: 100, Energy: 100, Alive: true}
	tok := components.Tokens{Balance: 10}

	for i := 0; i < 500; i++ {
		act, advised := s.Select(b, viewWith(0, 0, 0), &vit, &tok)
		if !act.Valid() {
			t.Fatalf("Select returned invalid action %d", act)
		}
		if advised {
			t.Fatal("advised = true with nil advisor")
		}
	}
}

func TestEatDominatesWhenHungryNearFood(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	s := NewSelector(selectorConfig(0), rng, nil, testTokenEconomy(3))
	b := testBrain()
	vit := components.Vitals{Health: 50, Energy: 100, Alive: true}
	tok := components.Tokens{Balance: 10}
	view := viewWith(3, 0, 0)

	counts := map[components.Action]int{}
	const draws = 2000
	for i := 0; i < draws; i++ {
		act, _ := s.Select(b, view, &vit, &tok)
		counts[act]++
	}

	for a, n := range counts {
		if a != components.ActEat && n >= counts[components.ActEat] {
			t.Errorf("%s drawn %d times, eat only %d", a, n, counts[components.ActEat])
		}
	}
	// The eat override is strong enough that eat should carry a large share.
	if counts[components.ActEat] < draws/4 {
		t.Errorf("eat drawn %d of %d, want a dominant share", counts[components.ActEat], draws)
	}
}

func TestEveryActionRemainsPossible(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s := NewSelector(selectorConfig(0), rng, nil, testTokenEconomy(3))
	b := testBrain()
	b.Mood.Valence = -1
	b.Mood.Arousal = 0
	vit := components.Vitals{Health: 100, Energy: 5, Alive: true}
	tok := components.Tokens{Balance: 10}

	seen := map[components.Action]bool{}
	for i := 0; i < 20000; i++ {
		act, _ := s.Select(b, viewWith(0, 0, 0), &vit, &tok)
		seen[act] = true
	}
	for a := 0; a < components.ActionCount; a++ {
		if !seen[components.Action(a)] {
			t.Errorf("action %s never drawn despite probability floor", components.Action(a))
		}
	}
}

func TestAdvisorySuccess(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	adv := &scriptedAdvisor{result: Result{OK: true, Action: "eat"}}
	s := NewSelector(selectorConfig(1.0), rng, adv, testTokenEconomy(3))
	b := testBrain()
	vit := components.Vitals{Health: 100, Energy: 100, Alive: true}
	tok := components.Tokens{Balance: 10}

	act, advised := s.Select(b, viewWith(1, 2, 0.4), &vit, &tok)
	if !advised || act != components.ActEat {
		t.Fatalf("Select = (%s, %v), want (eat, true)", act, advised)
	}
	if tok.Balance != 7 {
		t.Errorf("balance = %d, want 7 after charge", tok.Balance)
	}

	if len(adv.requests) != 1 {
		t.Fatalf("advisor consulted %d times, want 1", len(adv.requests))
	}
	req := adv.requests[0]
	if req.FoodCount != 1 || req.CreatureCount != 2 {
		t.Errorf("request context = %+v, want food=1 creatures=2", req)
	}
	if len(req.LegalActions) != components.ActionCount {
		t.Errorf("legal actions = %d, want %d", len(req.LegalActions), components.ActionCount)
	}
}

func TestAdvisorySynonymAccepted(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	adv := &scriptedAdvisor{result: Result{OK: true, Action: " Rest "}}
	s := NewSelector(selectorConfig(1.0), rng, adv, testTokenEconomy(3))
	b := testBrain()
	vit := components.Vitals{Health: 100, Energy: 100, Alive: true}
	tok := components.Tokens{Balance: 10}

	act, advised := s.Select(b, viewWith(0, 0, 0), &vit, &tok)
	if !advised || act != components.ActStay {
		t.Fatalf("Select = (%s, %v), want (stay, true)", act, advised)
	}
}

func TestAdvisoryIllegalActionFallsBack(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	adv := &scriptedAdvisor{result: Result{OK: true, Action: "fly"}}
	s := NewSelector(selectorConfig(1.0), rng, adv, testTokenEconomy(3))
	b := testBrain()
	vit := components.Vitals{Health: 100, Energy: 100, Alive: true}
	tok := components.Tokens{Balance: 10}

	act, advised := s.Select(b, viewWith(0, 0, 0), &vit, &tok)
	if advised {
		t.Error("advised = true for illegal advisory action")
	}
	if !act.Valid() {
		t.Errorf("fallback action invalid: %d", act)
	}
	if tok.Balance != 10 {
		t.Errorf("balance = %d, want 10 (failed consultations are free)", tok.Balance)
	}
}

func TestAdvisoryFailureIsFree(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	adv := &scriptedAdvisor{result: Result{OK: false, Reason: "timeout"}}
	s := NewSelector(selectorConfig(1.0), rng, adv, testTokenEconomy(3))
	b := testBrain()
	vit := components.Vitals{Health: 100, Energy: 100, Alive: true}
	tok := components.Tokens{Balance: 10}

	_, advised := s.Select(b, viewWith(0, 0, 0), &vit, &tok)
	if advised {
		t.Error("advised = true after advisor failure")
	}
	if tok.Balance != 10 {
		t.Errorf("balance = %d, want 10", tok.Balance)
	}
}

func TestAdvisorySkippedWithoutTokens(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	adv := &scriptedAdvisor{result: Result{OK: true, Action: "eat"}}
	s := NewSelector(selectorConfig(1.0), rng, adv, testTokenEconomy(3))
	b := testBrain()
	vit := components.Vitals{Health: 100, Energy: 100, Alive: true}
	tok := components.Tokens{Balance: 2}

	_, advised := s.Select(b, viewWith(0, 0, 0), &vit, &tok)
	if advised {
		t.Error("advised = true with balance below cost")
	}
	if len(adv.requests) != 0 {
		t.Errorf("advisor consulted %d times, want 0", len(adv.requests))
	}
}

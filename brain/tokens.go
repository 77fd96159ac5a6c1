package brain

import (
	"github.com/pthm-cable/dreamers/components"
	"github.com/pthm-cable/dreamers/config"
)

// TokenEconomy grants tokens for surprising perceptions and charges them for
// advisory consultations. Balances are bounded to [0, max].
type TokenEconomy struct {
	max       int
	threshold float64
	rate      float64
	cost      int
}

// NewTokenEconomy creates an economy from config.
func NewTokenEconomy(cfg *config.TokensConfig, advisoryCost int) *TokenEconomy {
	return &TokenEconomy{
		max:       cfg.Max,
		threshold: cfg.SurpriseThreshold,
		rate:      cfg.RewardRate,
		cost:      advisoryCost,
	}
}

// Earn grants tokens proportional to surprise, if it clears the threshold.
// Returns the amount granted after capping.
func (e *TokenEconomy) Earn(t *components.Tokens, surprise float64) int {
	if surprise < e.threshold {
		return 0
	}
	gained := int(surprise * e.rate)
	if gained <= 0 {
		return 0
	}
	before := t.Balance
	t.Balance += gained
	if t.Balance > e.max {
		t.Balance = e.max
	}
	return t.Balance - before
}

// CanConsult reports whether the balance covers one consultation.
func (e *TokenEconomy) CanConsult(t *components.Tokens) bool {
	return t.Balance >= e.cost
}

// Charge deducts the consultation cost. Call only after a successful
// consultation; failed ones are free.
func (e *TokenEconomy) Charge(t *components.Tokens) {
	t.Balance -= e.cost
	if t.Balance < 0 {
		t.Balance = 0
	}
}

// Cost returns the per-consultation token cost.
func (e *TokenEconomy) Cost() int {
	return e.cost
}

package brain

import "github.com/pthm-cable/dreamers/components"

// ValueLearner keeps an exponential moving average of the realized reward
// following each action. A fixed-size array indexed by the action enum keeps
// the table complete by construction. Used as a diagnostic and a secondary
// selection bias, not the primary selector.
type ValueLearner struct {
	values [components.ActionCount]float64
	alpha  float64
}

// NewValueLearner creates a learner with the given EMA learning rate.
func NewValueLearner(alpha float64) *ValueLearner {
	return &ValueLearner{alpha: alpha}
}

// Update folds a realized reward into the action's running value.
func (l *ValueLearner) Update(a components.Action, reward float64) {
	if !a.Valid() {
		return
	}
	l.values[a] += l.alpha * (reward - l.values[a])
}

// Value returns the current estimate for an action.
func (l *ValueLearner) Value(a components.Action) float64 {
	if !a.Valid() {
		return 0
	}
	return l.values[a]
}

// Values returns a copy of the full value table.
func (l *ValueLearner) Values() [components.ActionCount]float64 {
	return l.values
}

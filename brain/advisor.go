package brain

import "time"

// Request is the compact perception/mood summary passed to an advisor.
type Request struct {
	FoodCount     int
	CreatureCount int
	MeanAmplitude float64

	Valence float64
	Arousal float64
	Health  float64
	Energy  float64

	LegalActions []string
}

// Result is the tagged outcome of a consultation. OK=false covers every
// expected failure: timeout, transport error, empty response. The core
// branches on the tag; failures here are never Go errors.
type Result struct {
	OK     bool
	Action string // action name, validated by the caller against the legal set
	Reason string // failure reason when OK is false
}

// Advisor is a synchronous, timeout-bounded capability that may suggest an
// action. Implementations must return within the given timeout; the core
// does not retry within a step. The network mechanics of any real advisor
// live outside this module.
type Advisor interface {
	Suggest(req Request, timeout time.Duration) Result
}

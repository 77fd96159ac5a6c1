package components

// Action is the fixed enumeration of things a creature can do.
// Bias tables are fixed-size arrays indexed by Action, so every action is
// accounted for at compile time instead of hiding behind map keys.
type Action uint8

const (
	ActMoveNorth Action = iota
	ActMoveSouth
	ActMoveEast
	ActMoveWest
	ActStay
	ActEat
	ActSoundLow
	ActSoundHigh
	ActListen
	ActExplore
)

// ActionCount is the size of the legal action set.
const ActionCount = int(ActExplore) + 1

var actionNames = [ActionCount]string{
	"move_north",
	"move_south",
	"move_east",
	"move_west",
	"stay",
	"eat",
	"make_sound_low",
	"make_sound_high",
	"listen",
	"explore",
}

// String returns the wire name of the action.
func (a Action) String() string {
	if int(a) < ActionCount {
		return actionNames[a]
	}
	return "unknown"
}

// Valid reports whether a is in the legal action set.
func (a Action) Valid() bool {
	return int(a) < ActionCount
}

// IsMovement reports whether a moves the creature (explore included).
func (a Action) IsMovement() bool {
	return a <= ActMoveWest || a == ActExplore
}

// IsSound reports whether a emits into the sound field.
func (a Action) IsSound() bool {
	return a == ActSoundLow || a == ActSoundHigh
}

// actionSynonyms maps common natural-language variants to canonical names.
// Advisory responses are normalized through this before validation.
var actionSynonyms = map[string]string{
	"rest":             "stay",
	"wait":             "stay",
	"listen carefully": "listen",
	"sing low":         "make_sound_low",
	"sing high":        "make_sound_high",
}

// ParseAction resolves an action name (or known synonym) to an Action.
// The second return value is false for names outside the legal set.
func ParseAction(name string) (Action, bool) {
	if canon, ok := actionSynonyms[name]; ok {
		name = canon
	}
	for i, n := range actionNames {
		if n == name {
			return Action(i), true
		}
	}
	return ActStay, false
}

// ActionNames returns the legal action names in enumeration order.
func ActionNames() []string {
	out := make([]string, ActionCount)
	copy(out, actionNames[:])
	return out
}

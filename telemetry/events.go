package telemetry

// SoundEvent is the notification handed to an external audio synthesizer
// when a creature vocalizes. The hints are derived from mood; the waveform
// itself is synthesized elsewhere.
type SoundEvent struct {
	Step       int     `csv:"step"`
	CreatureID uint32  `csv:"creature_id"`
	X          int     `csv:"x"`
	Y          int     `csv:"y"`
	// FrequencyHint is the emitted base frequency class (0.3 low, 0.7 high).
	FrequencyHint float64 `csv:"frequency_hint"`
	// AmplitudeHint scales loudness with arousal.
	AmplitudeHint float64 `csv:"amplitude_hint"`
	// PitchDrift is the valence-driven vibrato depth.
	PitchDrift float64 `csv:"pitch_drift"`
}

// amplitudeBase/amplitudeSpan map arousal onto the loudness hint.
const (
	amplitudeBase = 0.4
	amplitudeSpan = 0.6
	pitchDriftK   = 0.05
)

// NewSoundEvent derives synthesis hints from the creature's mood.
func NewSoundEvent(step int, creatureID uint32, x, y int, frequency, valence, arousal float64) SoundEvent {
	a := arousal
	if a < 0 {
		a = -a
	}
	return SoundEvent{
		Step:          step,
		CreatureID:    creatureID,
		X:             x,
		Y:             y,
		FrequencyHint: frequency,
		AmplitudeHint: amplitudeBase + a*amplitudeSpan,
		PitchDrift:    valence * pitchDriftK,
	}
}

// DeathEvent records a creature death for reporting.
type DeathEvent struct {
	Step       int    `csv:"step"`
	CreatureID uint32 `csv:"creature_id"`
	X          int    `csv:"x"`
	Y          int    `csv:"y"`
}

package brain

import "github.com/pthm-cable/dreamers/config"

// Fingerprint is a discretized situation key for reward memory. It is a
// value type so it can index a map without hashing games.
type Fingerprint struct {
	FoodNearby     bool
	CreatureBucket uint8 // 0, 1, 2, 3 (3 = three or more)
	SoundHigh      bool  // mean amplitude above 0.5
}

// soundHighLevel splits sound intensity into the low/high buckets.
const soundHighLevel = 0.5

// FingerprintOf discretizes a perceptual context.
func FingerprintOf(foodCount, creatureCount int, soundLevel float64) Fingerprint {
	bucket := creatureCount
	if bucket > 3 {
		bucket = 3
	}
	if bucket < 0 {
		bucket = 0
	}
	return Fingerprint{
		FoodNearby:     foodCount > 0,
		CreatureBucket: uint8(bucket),
		SoundHigh:      soundLevel > soundHighLevel,
	}
}

// rewardMemoryCap bounds the rewards remembered per fingerprint.
const rewardMemoryCap = 10

// rewardRing is a fixed-capacity ring buffer of observed rewards.
type rewardRing struct {
	vals [rewardMemoryCap]float64
	n    int
	next int
}

func (r *rewardRing) push(v float64) {
	r.vals[r.next] = v
	r.next = (r.next + 1) % rewardMemoryCap
	if r.n < rewardMemoryCap {
		r.n++
	}
}

func (r *rewardRing) mean() float64 {
	if r.n == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < r.n; i++ {
		sum += r.vals[i]
	}
	return sum / float64(r.n)
}

// MoodUpdate is the result of processing one experience.
type MoodUpdate struct {
	Valence         float64
	Arousal         float64
	PredictionError float64
}

// MoodEngine maintains valence and arousal driven by reward prediction
// errors. Arousal is the fast channel (big surprises in either direction
// spike it, then it decays passively); valence is the slow channel, so it
// behaves like a stable personality trait over long runs.
type MoodEngine struct {
	Valence float64 // [-1,1]
	Arousal float64 // [0,1]

	fastRate float64
	slowRate float64
	decay    float64

	memory map[Fingerprint]*rewardRing
}

// NewMoodEngine creates a mood engine with configured initial state and
// learning rates.
func NewMoodEngine(cfg *config.MoodConfig) *MoodEngine {
	return &MoodEngine{
		Valence:  cfg.InitialValence,
		Arousal:  cfg.InitialArousal,
		fastRate: cfg.FastLearningRate,
		slowRate: cfg.SlowLearningRate,
		decay:    cfg.ArousalDecay,
		memory:   make(map[Fingerprint]*rewardRing),
	}
}

// Predict returns the expected reward for a situation: the mean of the
// remembered rewards, or 0 for an unseen fingerprint. No hallucinated
// expectation for situations never experienced. Side-effect free.
func (m *MoodEngine) Predict(fp Fingerprint) float64 {
	if ring, ok := m.memory[fp]; ok {
		return ring.mean()
	}
	return 0.0
}

// Update processes one experience. The very first experience of a
// fingerprint yields error = reward - 0, so a novel-but-rewarding situation
// bumps valence by the raw reward; that is intentional.
func (m *MoodEngine) Update(fp Fingerprint, actualReward float64) MoodUpdate {
	err := actualReward - m.Predict(fp)

	m.Arousal = clamp(m.Arousal+abs(err)*m.fastRate, 0, 1)
	m.Arousal *= m.decay

	m.Valence = clamp(m.Valence+err*m.slowRate, -1, 1)

	ring, ok := m.memory[fp]
	if !ok {
		ring = &rewardRing{}
		m.memory[fp] = ring
	}
	ring.push(actualReward)

	return MoodUpdate{Valence: m.Valence, Arousal: m.Arousal, PredictionError: err}
}

// MemorySize returns the number of distinct fingerprints remembered.
func (m *MoodEngine) MemorySize() int {
	return len(m.memory)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

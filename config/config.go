// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Creature  CreatureConfig  `yaml:"creature"`
	Mood      MoodConfig      `yaml:"mood"`
	Action    ActionConfig    `yaml:"action"`
	Reward    RewardConfig    `yaml:"reward"`
	Tokens    TokensConfig    `yaml:"tokens"`
	Learning  LearningConfig  `yaml:"learning"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Sim       SimConfig       `yaml:"sim"`
}

// WorldConfig holds grid and sound-field parameters.
type WorldConfig struct {
	Width                  int     `yaml:"width"`
	Height                 int     `yaml:"height"`
	FoodSpawnRate          float64 `yaml:"food_spawn_rate"`          // Initial food density
	FoodRespawnProbability float64 `yaml:"food_respawn_probability"` // Chance per step of a respawn pass
	FoodRespawnAmount      float64 `yaml:"food_respawn_amount"`      // Density added by a respawn pass
	FoodPatchiness         float64 `yaml:"food_patchiness"`          // 0 = uniform spawn, >0 = noise-clustered
	ObstacleDensity        float64 `yaml:"obstacle_density"`
	SoundDecayRate         float64 `yaml:"sound_decay_rate"`  // Amplitude multiplier per step
	SoundAttenuation       float64 `yaml:"sound_attenuation"` // Amplitude multiplier per propagation hop
}

// CreatureConfig holds creature creation and survival parameters.
type CreatureConfig struct {
	InitialCount            int     `yaml:"initial_count"`
	StartingHealth          float64 `yaml:"starting_health"`
	StartingEnergy          float64 `yaml:"starting_energy"`
	PerceptionRadius        int     `yaml:"perception_radius"`
	EnergyCostPerStep       float64 `yaml:"energy_cost_per_step"`
	HealthDecayWhenNoEnergy float64 `yaml:"health_decay_when_no_energy"`
	LowHealthThreshold      float64 `yaml:"low_health_threshold"` // Below this, visible food strongly biases eat
	LowEnergyThreshold      float64 `yaml:"low_energy_threshold"` // Below this, stay is strongly biased
	FoodHealthGain          float64 `yaml:"food_health_gain"`
	FoodEnergyGain          float64 `yaml:"food_energy_gain"`
}

// MoodConfig holds the two-timescale mood dynamics parameters.
type MoodConfig struct {
	FastLearningRate float64 `yaml:"fast_learning_rate"` // Arousal channel
	SlowLearningRate float64 `yaml:"slow_learning_rate"` // Valence channel
	ArousalDecay     float64 `yaml:"arousal_decay"`      // Passive de-arousal per update
	InitialValence   float64 `yaml:"initial_valence"`
	InitialArousal   float64 `yaml:"initial_arousal"`
}

// ActionConfig holds acceptance-gate and advisory parameters.
type ActionConfig struct {
	AcceptanceRate      float64 `yaml:"acceptance_rate"`      // Uniform across action types
	AdvisoryProbability float64 `yaml:"advisory_probability"` // Chance per selection of consulting the advisor
	AdvisoryCost        int     `yaml:"advisory_cost"`        // Tokens charged on a successful consultation
	AdvisoryTimeoutMS   int     `yaml:"advisory_timeout_ms"`
}

// RewardConfig holds reward calculation weights.
type RewardConfig struct {
	SurpriseMultiplier float64 `yaml:"surprise_multiplier"`
	FoodReward         float64 `yaml:"food_reward"`
	SocialSoundReward  float64 `yaml:"social_sound_reward"` // Per creature that heard the sound
	CollisionPenalty   float64 `yaml:"collision_penalty"`
	ProximityReward    float64 `yaml:"proximity_reward"` // Per nearby creature, capped at 3
}

// TokensConfig holds the token economy parameters.
type TokensConfig struct {
	Initial           int     `yaml:"initial"`
	Max               int     `yaml:"max"`
	SurpriseThreshold float64 `yaml:"surprise_threshold"` // Minimum surprise that earns tokens
	RewardRate        float64 `yaml:"reward_rate"`        // Tokens granted = int(surprise * rate)
}

// LearningConfig holds action-value learning parameters.
type LearningConfig struct {
	ValueLearningRate float64 `yaml:"value_learning_rate"` // EMA alpha
	ValueBiasWeight   float64 `yaml:"value_bias_weight"`   // Learned value contribution to selection bias
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // Steps per stats window
}

// SimConfig holds run parameters.
type SimConfig struct {
	MaxSteps int `yaml:"max_steps"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration invariants. Validation failure is the only
// fatal error path in the system; everything downstream degrades instead.
func (c *Config) Validate() error {
	w := &c.World
	if w.Width < 20 || w.Width > 500 {
		return fmt.Errorf("world width must be in [20,500], got %d", w.Width)
	}
	if w.Height < 20 || w.Height > 500 {
		return fmt.Errorf("world height must be in [20,500], got %d", w.Height)
	}
	if w.FoodSpawnRate < 0 || w.FoodSpawnRate > 1 {
		return fmt.Errorf("food spawn rate must be in [0,1], got %v", w.FoodSpawnRate)
	}
	if w.ObstacleDensity < 0 || w.ObstacleDensity > 0.5 {
		return fmt.Errorf("obstacle density must be in [0,0.5], got %v", w.ObstacleDensity)
	}
	if w.SoundDecayRate < 0 || w.SoundDecayRate > 1 {
		return fmt.Errorf("sound decay rate must be in [0,1], got %v", w.SoundDecayRate)
	}
	if w.SoundAttenuation < 0 || w.SoundAttenuation > 1 {
		return fmt.Errorf("sound attenuation must be in [0,1], got %v", w.SoundAttenuation)
	}

	cr := &c.Creature
	if cr.InitialCount < 1 {
		return fmt.Errorf("initial creature count must be at least 1, got %d", cr.InitialCount)
	}
	if cr.StartingHealth <= 0 {
		return fmt.Errorf("starting health must be positive, got %v", cr.StartingHealth)
	}
	if cr.StartingEnergy <= 0 {
		return fmt.Errorf("starting energy must be positive, got %v", cr.StartingEnergy)
	}
	if cr.PerceptionRadius < 1 {
		return fmt.Errorf("perception radius must be at least 1, got %d", cr.PerceptionRadius)
	}

	m := &c.Mood
	if m.FastLearningRate <= 0 || m.FastLearningRate > 1 {
		return fmt.Errorf("fast learning rate must be in (0,1], got %v", m.FastLearningRate)
	}
	if m.SlowLearningRate <= 0 || m.SlowLearningRate > 1 {
		return fmt.Errorf("slow learning rate must be in (0,1], got %v", m.SlowLearningRate)
	}
	if m.ArousalDecay < 0 || m.ArousalDecay > 1 {
		return fmt.Errorf("arousal decay must be in [0,1], got %v", m.ArousalDecay)
	}
	if m.InitialValence < -1 || m.InitialValence > 1 {
		return fmt.Errorf("initial valence must be in [-1,1], got %v", m.InitialValence)
	}
	if m.InitialArousal < 0 || m.InitialArousal > 1 {
		return fmt.Errorf("initial arousal must be in [0,1], got %v", m.InitialArousal)
	}

	a := &c.Action
	if a.AcceptanceRate < 0 || a.AcceptanceRate > 1 {
		return fmt.Errorf("acceptance rate must be in [0,1], got %v", a.AcceptanceRate)
	}
	if a.AdvisoryProbability < 0 || a.AdvisoryProbability > 1 {
		return fmt.Errorf("advisory probability must be in [0,1], got %v", a.AdvisoryProbability)
	}
	if a.AdvisoryCost < 0 {
		return fmt.Errorf("advisory cost must be non-negative, got %d", a.AdvisoryCost)
	}

	t := &c.Tokens
	if t.Initial < 0 || t.Max < 0 || t.Initial > t.Max {
		return fmt.Errorf("token bounds invalid: initial=%d max=%d", t.Initial, t.Max)
	}

	l := &c.Learning
	if l.ValueLearningRate <= 0 || l.ValueLearningRate > 1 {
		return fmt.Errorf("value learning rate must be in (0,1], got %v", l.ValueLearningRate)
	}

	if c.Telemetry.StatsWindow < 1 {
		return fmt.Errorf("stats window must be at least 1 step, got %d", c.Telemetry.StatsWindow)
	}

	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Package sim runs the simulation: an ECS world of creatures processed
// strictly sequentially each timestep against the shared world model.
package sim

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dreamers/brain"
	"github.com/pthm-cable/dreamers/components"
	"github.com/pthm-cable/dreamers/config"
	"github.com/pthm-cable/dreamers/telemetry"
	"github.com/pthm-cable/dreamers/world"
)

// Options configures an engine run.
type Options struct {
	Seed      int64
	OutputDir string
	LogStats  bool
	Advisor   brain.Advisor // nil disables advisory consultations
}

// Engine holds the complete simulation state. Creatures live as ECS
// entities; their brains are kept in a side map keyed by creature ID. Dead
// creatures stay in the ECS (for reporting and stable iteration order) but
// are excluded from all processing.
type Engine struct {
	cfg *config.Config

	entities *ecs.World
	mapper   *ecs.Map4[
		components.Position,
		components.Vitals,
		components.Tokens,
		components.Meta,
	]
	filter *ecs.Filter4[
		components.Position,
		components.Vitals,
		components.Tokens,
		components.Meta,
	]

	brains map[uint32]*brain.Brain

	grid     *world.Grid
	model    *world.Model
	selector *brain.Selector
	econ     *brain.TokenEconomy
	rewards  brain.RewardParams

	collector *telemetry.Collector
	output    *telemetry.OutputManager

	rng      *rand.Rand
	step     int
	nextID   uint32
	alive    int
	logStats bool

	// OnSound, when set, receives each sound emission notification in
	// addition to the CSV output. Used by the external synthesizer hookup.
	OnSound func(telemetry.SoundEvent)
}

// New creates an engine from the global config and the given options.
func New(opts Options) (*Engine, error) {
	cfg := config.Cfg()
	rng := rand.New(rand.NewSource(opts.Seed))

	grid := world.NewGrid(&cfg.World, rng)
	model := world.NewModel(grid, cfg.Action.AcceptanceRate, rng)
	econ := brain.NewTokenEconomy(&cfg.Tokens, cfg.Action.AdvisoryCost)

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, err
	}

	entities := ecs.NewWorld()
	e := &Engine{
		cfg:      cfg,
		entities: entities,
		mapper: ecs.NewMap4[
			components.Position,
			components.Vitals,
			components.Tokens,
			components.Meta,
		](entities),
		filter: ecs.NewFilter4[
			components.Position,
			components.Vitals,
			components.Tokens,
			components.Meta,
		](entities),
		brains:    make(map[uint32]*brain.Brain),
		grid:      grid,
		model:     model,
		selector:  brain.NewSelector(cfg, rng, opts.Advisor, econ),
		econ:      econ,
		rewards:   brain.RewardParamsFrom(&cfg.Reward),
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		output:    output,
		rng:       rng,
		logStats:  opts.LogStats,
	}

	e.spawnInitialPopulation()
	return e, nil
}

// Step returns the number of completed timesteps.
func (e *Engine) Step() int {
	return e.step
}

// AliveCount returns the number of living creatures.
func (e *Engine) AliveCount() int {
	return e.alive
}

// AllDead reports whether no creatures remain alive.
func (e *Engine) AllDead() bool {
	return e.alive == 0
}

// Close flushes and closes telemetry output.
func (e *Engine) Close() {
	e.output.Close()
}

// StepOnce runs one full timestep: every living creature's cognitive cycle
// in stable spawn order, then the single global world update. Grid and
// sound-field mutations from an earlier creature are visible to later
// creatures in the same timestep; who acts first gets the food.
func (e *Engine) StepOnce() {
	radius := e.cfg.Creature.PerceptionRadius

	query := e.filter.Query()
	for query.Next() {
		pos, vit, tok, meta := query.Get()
		if !vit.Alive {
			continue
		}
		e.processCreature(pos, vit, tok, meta, radius)
	}

	e.grid.Step()
	e.step++

	if e.collector.ShouldFlush(e.step) {
		e.flushStats()
	}
}

// processCreature runs one creature's perceive-select-act-learn cycle.
func (e *Engine) processCreature(pos *components.Position, vit *components.Vitals, tok *components.Tokens, meta *components.Meta, radius int) {
	b := e.brains[meta.ID]

	view := e.model.LocalViewFor(meta.ID, *pos, radius)
	surprise := b.Surprise.Estimate(view)
	fp := brain.FingerprintOf(view.FoodCount, view.CreatureCount, view.MeanAmplitude())

	action, advisoryUsed := e.selector.Select(b, view, vit, tok)
	if advisoryUsed {
		e.collector.RecordAdvisory()
		e.collector.RecordTokens(0, e.econ.Cost())
	}

	outcome := e.model.ProposeAction(meta.ID, action, *pos)
	*pos = outcome.Pos

	reward := e.rewards.Total(surprise, outcome)
	update := b.Mood.Update(fp, reward)
	b.Values.Update(action, reward)
	earned := e.econ.Earn(tok, surprise)
	if earned > 0 {
		e.collector.RecordTokens(earned, 0)
	}

	e.settleVitals(vit, outcome)

	if outcome.Effect == world.EffectMadeSound {
		e.emitSoundEvent(meta.ID, action, outcome, update)
	}

	e.collector.RecordOutcome(outcome)
	e.collector.RecordLearning(surprise, reward)

	if vit.Health <= 0 {
		e.handleDeath(pos, vit, meta)
	}
}

// settleVitals applies outcome effects and the per-step survival costs.
func (e *Engine) settleVitals(vit *components.Vitals, outcome world.Outcome) {
	cr := &e.cfg.Creature

	if outcome.Effect == world.EffectAte {
		vit.Health = components.Clamp100(vit.Health + cr.FoodHealthGain)
		vit.Energy = components.Clamp100(vit.Energy + cr.FoodEnergyGain)
	}

	vit.Energy -= cr.EnergyCostPerStep
	if vit.Energy <= 0 {
		vit.Health -= cr.HealthDecayWhenNoEnergy
	}
	vit.Energy = components.Clamp100(vit.Energy)
	vit.Health = components.Clamp100(vit.Health)
}

// handleDeath flips the alive flag exactly once and removes the creature
// from world tracking. The entity itself is retained for reporting.
func (e *Engine) handleDeath(pos *components.Position, vit *components.Vitals, meta *components.Meta) {
	vit.Alive = false
	e.alive--
	e.model.Forget(meta.ID)
	e.collector.RecordDeath()

	ev := telemetry.DeathEvent{Step: e.step, CreatureID: meta.ID, X: pos.X, Y: pos.Y}
	if err := e.output.WriteDeath(ev); err != nil {
		slog.Warn("writing death event", "error", err)
	}
	slog.Info("creature died", "creature", meta.Name, "step", e.step, "x", pos.X, "y", pos.Y)
}

// emitSoundEvent notifies the external synthesizer about a vocalization.
func (e *Engine) emitSoundEvent(id uint32, action components.Action, outcome world.Outcome, update brain.MoodUpdate) {
	freq := 0.3
	if action == components.ActSoundHigh {
		freq = 0.7
	}
	ev := telemetry.NewSoundEvent(e.step, id, outcome.Pos.X, outcome.Pos.Y, freq, update.Valence, update.Arousal)

	if err := e.output.WriteSound(ev); err != nil {
		slog.Warn("writing sound event", "error", err)
	}
	if e.OnSound != nil {
		e.OnSound(ev)
	}
}

// flushStats samples end-of-window population state and writes a stats row.
func (e *Engine) flushStats() {
	var valences, arousals []float64

	query := e.filter.Query()
	for query.Next() {
		_, vit, _, meta := query.Get()
		if !vit.Alive {
			continue
		}
		b := e.brains[meta.ID]
		valences = append(valences, b.Mood.Valence)
		arousals = append(arousals, b.Mood.Arousal)
	}

	stats := e.collector.Flush(e.step, e.alive, e.grid.FoodRemaining(), valences, arousals, e.grid.MeanAmplitude())

	if err := e.output.WriteTelemetry(stats); err != nil {
		slog.Warn("writing telemetry", "error", err)
	}
	if e.logStats {
		slog.Info("window",
			"step", stats.WindowEndStep,
			"alive", stats.Alive,
			"deaths", stats.Deaths,
			"accept_rate", stats.AcceptRate,
			"meals", stats.Meals,
			"valence_mean", stats.ValenceMean,
			"arousal_mean", stats.ArousalMean,
			"food", stats.FoodRemaining,
		)
	}
}

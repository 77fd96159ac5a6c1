package sim

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pthm-cable/dreamers/config"
)

// testConfig installs a small deterministic configuration and returns it for
// per-test tweaks.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	config.MustInit("")
	cfg := config.Cfg()
	cfg.World.Width = 40
	cfg.World.Height = 40
	cfg.Creature.InitialCount = 5
	cfg.Telemetry.StatsWindow = 100
	return cfg
}

func TestNewEngineSpawnsPopulation(t *testing.T) {
	cfg := testConfig(t)
	e, err := New(Options{Seed: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Close()

	if e.AliveCount() != cfg.Creature.InitialCount {
		t.Errorf("alive = %d, want %d", e.AliveCount(), cfg.Creature.InitialCount)
	}

	snap := e.Snapshot()
	if len(snap.Creatures) != cfg.Creature.InitialCount {
		t.Fatalf("snapshot creatures = %d, want %d", len(snap.Creatures), cfg.Creature.InitialCount)
	}
	seen := map[[2]int]bool{}
	for _, c := range snap.Creatures {
		if !c.Alive {
			t.Errorf("creature %d spawned dead", c.ID)
		}
		if c.Health != cfg.Creature.StartingHealth || c.Energy != cfg.Creature.StartingEnergy {
			t.Errorf("creature %d vitals = %v/%v, want starting values", c.ID, c.Health, c.Energy)
		}
		if c.X < 0 || c.X >= snap.Width || c.Y < 0 || c.Y >= snap.Height {
			t.Errorf("creature %d out of bounds at (%d,%d)", c.ID, c.X, c.Y)
		}
		if seen[[2]int{c.X, c.Y}] {
			t.Errorf("two creatures spawned at (%d,%d)", c.X, c.Y)
		}
		seen[[2]int{c.X, c.Y}] = true
	}
}

func TestIdenticalSeedsIdenticalRuns(t *testing.T) {
	run := func() Snapshot {
		testConfig(t)
		e, err := New(Options{Seed: 99})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		defer e.Close()
		for i := 0; i < 150; i++ {
			e.StepOnce()
		}
		return e.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("identical seeds produced diverging trajectories")
	}
	if a.Step != 150 {
		t.Errorf("step = %d, want 150", a.Step)
	}
}

func TestEnergyDrainWithoutFood(t *testing.T) {
	cfg := testConfig(t)
	cfg.World.FoodSpawnRate = 0
	cfg.World.FoodRespawnProbability = 0
	cfg.World.ObstacleDensity = 0

	e, err := New(Options{Seed: 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Close()

	for i := 0; i < 10; i++ {
		e.StepOnce()
	}

	want := cfg.Creature.StartingEnergy - 10*cfg.Creature.EnergyCostPerStep
	for _, c := range e.Snapshot().Creatures {
		if c.Energy != want {
			t.Errorf("creature %d energy = %v, want %v", c.ID, c.Energy, want)
		}
		if c.Health != cfg.Creature.StartingHealth {
			t.Errorf("creature %d health = %v, want untouched while energy > 0", c.ID, c.Health)
		}
	}
}

func TestDeathRemovesFromProcessing(t *testing.T) {
	cfg := testConfig(t)
	cfg.Creature.InitialCount = 3
	cfg.Creature.EnergyCostPerStep = 200
	cfg.Creature.HealthDecayWhenNoEnergy = 200
	cfg.World.FoodSpawnRate = 0
	cfg.World.FoodRespawnProbability = 0

	e, err := New(Options{Seed: 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Close()

	e.StepOnce()
	if !e.AllDead() {
		t.Fatalf("alive = %d after lethal step, want 0", e.AliveCount())
	}

	// Dead creatures stay visible in snapshots but are never processed again.
	snap := e.Snapshot()
	if len(snap.Creatures) != 3 {
		t.Fatalf("snapshot lost dead creatures: %d", len(snap.Creatures))
	}
	for _, c := range snap.Creatures {
		if c.Alive {
			t.Errorf("creature %d still alive", c.ID)
		}
	}

	before := e.Snapshot()
	e.StepOnce()
	after := e.Snapshot()
	if e.AliveCount() != 0 {
		t.Error("death count changed on a dead population")
	}
	if !reflect.DeepEqual(before.Creatures, after.Creatures) {
		t.Error("dead creatures changed state after death")
	}
}

func TestTelemetryFilesWritten(t *testing.T) {
	cfg := testConfig(t)
	cfg.Telemetry.StatsWindow = 100
	dir := t.TempDir()

	e, err := New(Options{Seed: 4, OutputDir: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 250; i++ {
		e.StepOnce()
	}
	e.Close()

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("reading telemetry.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// Header plus one row per completed window.
	if len(lines) != 3 {
		t.Errorf("telemetry.csv has %d lines, want 3", len(lines))
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "sounds.csv")); err != nil {
		t.Errorf("sounds.csv not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "deaths.csv")); err != nil {
		t.Errorf("deaths.csv not created: %v", err)
	}
}

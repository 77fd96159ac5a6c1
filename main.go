package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/dreamers/config"
	"github.com/pthm-cable/dreamers/sim"
	"github.com/pthm-cable/dreamers/web"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxSteps := flag.Int("max-steps", 0, "Stop after N steps (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	serveAddr := flag.String("serve", "", "Serve viewer websocket on this address (empty = disabled)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	steps := cfg.Sim.MaxSteps
	if *maxSteps > 0 {
		steps = *maxSteps
	}

	engine, err := sim.New(sim.Options{
		Seed:      rngSeed,
		OutputDir: *outputDir,
		LogStats:  *logStats,
	})
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}
	defer engine.Close()

	var hub *web.Hub
	if *serveAddr != "" {
		hub = web.NewHub()
		web.Serve(*serveAddr, hub)
	}

	slog.Info("starting simulation",
		"seed", rngSeed,
		"creatures", cfg.Creature.InitialCount,
		"world", cfg.World.Width*cfg.World.Height,
		"max_steps", steps,
	)

	for engine.Step() < steps {
		engine.StepOnce()

		if hub != nil {
			hub.Broadcast(engine.Snapshot())
		}

		if engine.AllDead() {
			slog.Info("all creatures dead", "step", engine.Step())
			break
		}
	}

	slog.Info("simulation finished", "steps", engine.Step(), "alive", engine.AliveCount())
}

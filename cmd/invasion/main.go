// Command invasion runs the zombie invasion simulator.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/invasion/internal/api"
	"github.com/talgya/invasion/internal/config"
	"github.com/talgya/invasion/internal/engine"
	"github.com/talgya/invasion/internal/persistence"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config (defaults used when empty)")
		seed       = flag.Int64("seed", 0, "random seed override (0 = use config)")
		dbPath     = flag.String("db", "", "SQLite path for run history (empty = no recording)")
		apiPort    = flag.Int("api", 0, "observation API port (0 = disabled)")
		render     = flag.Bool("render", false, "draw the grid in the terminal each turn")
		delay      = flag.Duration("delay", 0, "pause between turns, e.g. 100ms")
		logLevel   = flag.String("log", "info", "log level: debug, info, warn, error")
	)
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	slog.Info("Zombie Invasion Simulator")

	// ── Configuration ─────────────────────────────────────────────────
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
		slog.Info("config loaded", "path", *configPath)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	params, err := cfg.Params()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// ── Simulation ────────────────────────────────────────────────────
	sim, err := engine.New(params, cfg.Seed)
	if err != nil {
		slog.Error("failed to construct simulation", "error", err)
		os.Exit(1)
	}
	runner := engine.NewRunner(sim)

	start := sim.Stats()
	slog.Info("population seeded",
		"grid", params.Bounds,
		"seed", cfg.Seed,
		"humans", start.Humans,
		"hunters", start.Hunters,
		"zombies", start.Zombies,
	)

	// ── Run recorder (optional) ───────────────────────────────────────
	var recorder *persistence.Recorder
	var db *persistence.DB
	if *dbPath != "" {
		db, err = persistence.Open(*dbPath)
		if err != nil {
			slog.Error("failed to open run database", "path", *dbPath, "error", err)
			os.Exit(1)
		}
		defer db.Close()

		recorder, err = db.BeginRun(sim)
		if err != nil {
			slog.Error("failed to begin run record", "error", err)
			os.Exit(1)
		}
		slog.Info("recording run", "path", *dbPath, "run_id", recorder.RunID())
	}

	// ── Observation API (optional) ────────────────────────────────────
	var server *api.Server
	if *apiPort > 0 {
		server = &api.Server{Runner: runner, DB: db, Port: *apiPort}
		server.Start()
	}

	// ── Run loop ──────────────────────────────────────────────────────
	began := time.Now()
	outcome := runner.Run(cfg.MaxTurns, func(stats engine.Stats) {
		if err := recorder.RecordTurn(stats); err != nil {
			slog.Warn("turn record failed", "turn", stats.Turn, "error", err)
		}
		if server != nil {
			server.Broadcast(runner.Snapshot())
		}
		if *render {
			draw(os.Stdout, runner.Snapshot())
		}
		if *delay > 0 {
			time.Sleep(*delay)
		}
	})

	final := runner.Status().Stats
	if err := recorder.FinishRun(outcome, final); err != nil {
		slog.Warn("finish record failed", "error", err)
	}

	slog.Info("invasion finished",
		"outcome", outcome,
		"turns", humanize.Comma(int64(final.Turn)),
		"humans", final.Humans,
		"hunters", final.Hunters,
		"zombies", final.Zombies,
		"elapsed", time.Since(began).Round(time.Millisecond),
	)
}

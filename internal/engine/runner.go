// Runner drives a simulation to completion and gives concurrent observers a
// consistent view between turns.
package engine

import (
	"log/slog"
	"sync"

	"github.com/talgya/invasion/internal/agents"
)

// Outcome describes how a run ended.
type Outcome string

const (
	OutcomeHumansExtinct  Outcome = "humans_extinct"
	OutcomeZombiesExtinct Outcome = "zombies_extinct"
	OutcomeTurnLimit      Outcome = "turn_limit"
)

// Runner wraps a Simulation with the run loop and a lock so that the
// observation API can read state while the loop is going. The simulation
// itself stays single-threaded: only MakeTurn mutates, and only under the
// write lock.
type Runner struct {
	mu      sync.RWMutex
	sim     *Simulation
	running bool
}

// NewRunner wraps a seeded simulation.
func NewRunner(sim *Simulation) *Runner {
	return &Runner{sim: sim}
}

// Run repeats turns until one population is exhausted, or until maxTurns
// completes when maxTurns > 0. onTurn, if set, is called after every turn
// with that turn's stats; it runs outside the lock and must not call back
// into the runner's write path.
func (r *Runner) Run(maxTurns uint64, onTurn func(Stats)) Outcome {
	r.mu.Lock()
	r.running = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	for {
		r.mu.Lock()
		if r.sim.Done() {
			out := r.outcomeLocked()
			r.mu.Unlock()
			slog.Info("run complete", "turn", r.sim.Turn(), "outcome", out)
			return out
		}
		if maxTurns > 0 && r.sim.Turn() >= maxTurns {
			r.mu.Unlock()
			slog.Info("turn limit reached", "turn", maxTurns)
			return OutcomeTurnLimit
		}
		r.sim.MakeTurn()
		stats := r.sim.Stats()
		r.mu.Unlock()

		slog.Debug("turn complete",
			"turn", stats.Turn,
			"humans", stats.Humans,
			"hunters", stats.Hunters,
			"zombies", stats.Zombies,
		)
		if onTurn != nil {
			onTurn(stats)
		}
	}
}

func (r *Runner) outcomeLocked() Outcome {
	if r.sim.CountOf(agents.KindHuman) == 0 {
		return OutcomeHumansExtinct
	}
	return OutcomeZombiesExtinct
}

// Status is the runner's public state summary.
type Status struct {
	Running bool  `json:"running"`
	Seed    int64 `json:"seed"`
	Stats
}

// Status returns the current run status.
func (r *Runner) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Status{Running: r.running, Seed: r.sim.Seed(), Stats: r.sim.Stats()}
}

// Snapshot returns a consistent copy of the grid state.
func (r *Runner) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sim.Snapshot()
}

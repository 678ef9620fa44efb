// Simulation construction and the single-turn state machine: an interact
// phase over the live grid, then a move phase over a frozen snapshot.
package engine

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/talgya/invasion/internal/agents"
	"github.com/talgya/invasion/internal/world"
)

// KindParams holds the per-kind tunables. Slugs and ReloadTurns only apply
// to Hunters.
type KindParams struct {
	Initial     int
	Paces       int
	Slugs       int
	ReloadTurns int
}

// Params configures a simulation run.
type Params struct {
	Bounds world.Bounds
	Kinds  []agents.Kind // Seeding order
	Human  KindParams
	Hunter KindParams
	Zombie KindParams
}

// DefaultParams returns the classic invasion setup: a 60x40 grid with 30
// Humans, 60 Hunters, and 3 Zombies.
func DefaultParams() Params {
	return Params{
		Bounds: world.Bounds{X: 60, Y: 40},
		Kinds:  []agents.Kind{agents.KindHuman, agents.KindHunter, agents.KindZombie},
		Human:  KindParams{Initial: 30, Paces: 3},
		Hunter: KindParams{Initial: 60, Paces: 3, Slugs: 3, ReloadTurns: 3},
		Zombie: KindParams{Initial: 3, Paces: 1},
	}
}

func (p Params) kindParams(kind agents.Kind) KindParams {
	switch kind {
	case agents.KindHunter:
		return p.Hunter
	case agents.KindZombie:
		return p.Zombie
	default:
		return p.Human
	}
}

func (p Params) validate() error {
	if p.Bounds.X <= 0 || p.Bounds.Y <= 0 {
		return fmt.Errorf("grid bounds must be positive, got %dx%d", p.Bounds.X, p.Bounds.Y)
	}
	if len(p.Kinds) == 0 {
		return fmt.Errorf("no character kinds configured")
	}
	seen := make(map[agents.Kind]bool)
	for _, k := range p.Kinds {
		if seen[k] {
			return fmt.Errorf("character kind %s configured twice", k)
		}
		seen[k] = true

		kp := p.kindParams(k)
		if kp.Initial < 0 {
			return fmt.Errorf("%s: initial count must not be negative", k)
		}
		if kp.Paces < 1 {
			return fmt.Errorf("%s: paces must be at least 1", k)
		}
		if k == agents.KindHunter && (kp.Slugs < 0 || kp.ReloadTurns < 0) {
			return fmt.Errorf("%s: slugs and reload turns must not be negative", k)
		}
	}
	return nil
}

// Simulation is a single invasion run: the grid plus its random source.
type Simulation struct {
	grid   *Grid
	rng    *rand.Rand
	seed   int64
	params Params
}

// New validates the parameters, seeds the population, and returns a
// simulation ready to step. The same seed and parameters replay identically.
func New(p Params, seed int64) (*Simulation, error) {
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	s := &Simulation{
		grid:   NewGrid(p.Bounds),
		rng:    rand.New(rand.NewSource(seed)),
		seed:   seed,
		params: p,
	}

	sdr := newSeeder(s.rng)
	for _, kind := range p.Kinds {
		slog.Debug("seeding population", "kind", kind, "count", p.kindParams(kind).Initial)
		if err := sdr.populate(s.grid, kind, p); err != nil {
			return nil, fmt.Errorf("seeding %s: %w", kind, err)
		}
	}
	return s, nil
}

// MakeTurn advances the simulation by one turn: interactions, then moves,
// then the counter.
func (s *Simulation) MakeTurn() {
	slog.Debug("making turn", "turn", s.grid.turn)
	s.processInteractions()
	s.grid.MoveAll(s.rng)
	s.grid.turn++
	s.grid.compact()
}

// processInteractions runs every agent's interact rule against the live
// grid. Removals and conversions made mid-phase are visible to agents
// processed later in the same phase; an agent removed before its slot comes
// up is skipped.
func (s *Simulation) processInteractions() {
	for _, a := range s.grid.All() {
		pos, ok := s.grid.CoordOf(a)
		if !ok {
			continue
		}
		a.Interact(pos, s.grid)
	}
}

// Done reports whether a terminal population state has been reached: one
// side wiped out.
func (s *Simulation) Done() bool {
	return s.grid.CountOf(agents.KindHuman) == 0 || s.grid.CountOf(agents.KindZombie) == 0
}

// Seed returns the seed this run was constructed with.
func (s *Simulation) Seed() int64 {
	return s.seed
}

// Turn returns the number of completed turns.
func (s *Simulation) Turn() uint64 {
	return s.grid.Turn()
}

// CountOf returns the number of present agents matching the kind. Hunters
// count as Humans.
func (s *Simulation) CountOf(kind agents.Kind) int {
	return s.grid.CountOf(kind)
}

// PositionsOf returns the coordinates of present agents matching the kind.
func (s *Simulation) PositionsOf(kind agents.Kind) []world.Coord {
	return s.grid.PositionsOf(kind)
}

// Stats summarizes the population after a turn. Humans includes Hunters.
type Stats struct {
	Turn    uint64 `json:"turn"`
	Humans  int    `json:"humans"`
	Hunters int    `json:"hunters"`
	Zombies int    `json:"zombies"`
}

// Stats returns the current turn and per-kind counts.
func (s *Simulation) Stats() Stats {
	return Stats{
		Turn:    s.grid.Turn(),
		Humans:  s.grid.CountOf(agents.KindHuman),
		Hunters: s.grid.CountOf(agents.KindHunter),
		Zombies: s.grid.CountOf(agents.KindZombie),
	}
}

// AgentState is one agent's public position record.
type AgentState struct {
	ID   agents.AgentID `json:"id"`
	Kind string         `json:"kind"`
	X    int            `json:"x"`
	Y    int            `json:"y"`
}

// Snapshot is a read-only copy of the visible grid state, safe to hand to
// renderers and the observation API between turns.
type Snapshot struct {
	Turn   uint64       `json:"turn"`
	Bounds world.Bounds `json:"bounds"`
	Agents []AgentState `json:"agents"`
}

// Snapshot captures the current grid state.
func (s *Simulation) Snapshot() Snapshot {
	all := s.grid.All()
	snap := Snapshot{
		Turn:   s.grid.Turn(),
		Bounds: s.grid.Bounds(),
		Agents: make([]AgentState, 0, len(all)),
	}
	for _, a := range all {
		c, ok := s.grid.CoordOf(a)
		if !ok {
			continue
		}
		snap.Agents = append(snap.Agents, AgentState{ID: a.ID, Kind: a.Kind.String(), X: c.X, Y: c.Y})
	}
	return snap
}

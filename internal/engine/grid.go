// Package engine provides the grid state, population seeding, and the
// turn-based run loop.
package engine

import (
	"log/slog"
	"math/rand"

	"github.com/talgya/invasion/internal/agents"
	"github.com/talgya/invasion/internal/world"
)

// Grid owns the agent position map, the bounds, and the turn counter.
// Agents iterate in insertion order so that seeded runs replay identically.
type Grid struct {
	bounds    world.Bounds
	order     []*agents.Agent
	positions map[*agents.Agent]world.Coord
	turn      uint64
}

// NewGrid creates an empty grid with the given bounds.
func NewGrid(b world.Bounds) *Grid {
	return &Grid{
		bounds:    b,
		positions: make(map[*agents.Agent]world.Coord),
	}
}

// Bounds returns the grid extent.
func (g *Grid) Bounds() world.Bounds {
	return g.bounds
}

// Turn returns the number of completed turns since the run started.
func (g *Grid) Turn() uint64 {
	return g.turn
}

// Place inserts an agent at a coordinate, or moves it there if already
// present. Seeding is responsible for coordinate validity.
func (g *Grid) Place(a *agents.Agent, c world.Coord) {
	if _, ok := g.positions[a]; !ok {
		g.order = append(g.order, a)
	}
	g.positions[a] = c
}

// Remove deletes an agent from the grid; a no-op if it is already absent.
func (g *Grid) Remove(a *agents.Agent) {
	delete(g.positions, a)
}

// CoordOf returns an agent's coordinate, with ok=false if it is absent.
func (g *Grid) CoordOf(a *agents.Agent) (world.Coord, bool) {
	c, ok := g.positions[a]
	return c, ok
}

// All returns every present agent in insertion order.
func (g *Grid) All() []*agents.Agent {
	out := make([]*agents.Agent, 0, len(g.positions))
	for _, a := range g.order {
		if _, ok := g.positions[a]; ok {
			out = append(out, a)
		}
	}
	return out
}

// PositionsOf returns the coordinates of all present agents matching the
// kind. Stacked agents contribute one entry each.
func (g *Grid) PositionsOf(kind agents.Kind) []world.Coord {
	var out []world.Coord
	for _, a := range g.order {
		c, ok := g.positions[a]
		if ok && a.Kind.Is(kind) {
			out = append(out, c)
		}
	}
	return out
}

// CountOf returns the number of present agents matching the kind.
func (g *Grid) CountOf(kind agents.Kind) int {
	n := 0
	for a := range g.positions {
		if a.Kind.Is(kind) {
			n++
		}
	}
	return n
}

// AgentsAt returns the present agents of the given kind at a coordinate, in
// insertion order.
func (g *Grid) AgentsAt(c world.Coord, kind agents.Kind) []*agents.Agent {
	var out []*agents.Agent
	for _, a := range g.order {
		pc, ok := g.positions[a]
		if ok && pc == c && a.Kind.Is(kind) {
			out = append(out, a)
		}
	}
	return out
}

// MoveAll runs every present agent's move rule against a snapshot of the
// position map frozen before any move commits, so outcomes do not depend on
// processing order. Out-of-bounds candidates are forfeited silently: the
// agent stays put and the caller never observes an error.
func (g *Grid) MoveAll(rng *rand.Rand) {
	snap := g.snapshot()
	for _, a := range g.All() {
		pos := g.positions[a]
		next := a.Move(pos, snap, rng)
		if !g.bounds.Contains(next) {
			slog.Debug("forfeiting move", "agent", a, "to", next)
			continue
		}
		g.positions[a] = next
	}
}

// compact drops removed agents from the iteration order. Called between
// turns to keep passes over long runs proportional to the live population.
func (g *Grid) compact() {
	if len(g.order) == len(g.positions) {
		return
	}
	live := g.order[:0]
	for _, a := range g.order {
		if _, ok := g.positions[a]; ok {
			live = append(live, a)
		}
	}
	g.order = live
}

// snapshot returns a frozen read-only copy of the grid implementing
// agents.View. Remove on a snapshot only affects the copy.
func (g *Grid) snapshot() *Grid {
	pos := make(map[*agents.Agent]world.Coord, len(g.positions))
	for a, c := range g.positions {
		pos[a] = c
	}
	order := make([]*agents.Agent, len(g.order))
	copy(order, g.order)
	return &Grid{
		bounds:    g.bounds,
		order:     order,
		positions: pos,
		turn:      g.turn,
	}
}

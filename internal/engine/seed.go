// Population seeding: places the initial agents of each configured kind.
package engine

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/talgya/invasion/internal/agents"
	"github.com/talgya/invasion/internal/world"
)

// placementRetries bounds the random search for a free zombie cell before
// falling back to a row-major scan, so seeding terminates even on a
// crowded grid.
const placementRetries = 1000

// seeder creates agents and issues their IDs.
type seeder struct {
	rng    *rand.Rand
	nextID agents.AgentID
}

func newSeeder(rng *rand.Rand) *seeder {
	return &seeder{rng: rng, nextID: 1}
}

// populate places the initial population for one kind. Humans and Hunters
// land anywhere in bounds and may stack; Zombies only take unoccupied cells.
func (s *seeder) populate(g *Grid, kind agents.Kind, p Params) error {
	kp := p.kindParams(kind)
	for i := 0; i < kp.Initial; i++ {
		a := s.spawn(kind, kp)

		var c world.Coord
		if kind == agents.KindZombie {
			free, err := s.freeCell(g)
			if err != nil {
				return fmt.Errorf("placing %s: %w", a, err)
			}
			c = free
		} else {
			c = s.randomCell(g.Bounds())
		}
		slog.Debug("placing agent", "agent", a, "at", c)
		g.Place(a, c)
	}
	return nil
}

func (s *seeder) spawn(kind agents.Kind, kp KindParams) *agents.Agent {
	id := s.nextID
	s.nextID++

	switch kind {
	case agents.KindHunter:
		return agents.NewHunter(id, kp.Paces, kp.Slugs, kp.ReloadTurns)
	case agents.KindZombie:
		return agents.NewZombie(id, kp.Paces)
	default:
		return agents.NewHuman(id, kp.Paces)
	}
}

func (s *seeder) randomCell(b world.Bounds) world.Coord {
	return world.Coord{X: s.rng.Intn(b.X), Y: s.rng.Intn(b.Y)}
}

// freeCell finds an unoccupied coordinate: bounded random retries first, then
// a row-major scan for the first free cell. Errors only when the grid is full.
func (s *seeder) freeCell(g *Grid) (world.Coord, error) {
	occupied := make(map[world.Coord]bool, len(g.positions))
	for _, c := range g.positions {
		occupied[c] = true
	}

	b := g.Bounds()
	for i := 0; i < placementRetries; i++ {
		c := s.randomCell(b)
		if !occupied[c] {
			return c, nil
		}
	}
	for y := 0; y < b.Y; y++ {
		for x := 0; x < b.X; x++ {
			c := world.Coord{X: x, Y: y}
			if !occupied[c] {
				slog.Debug("random placement exhausted retries, scanning", "found", c)
				return c, nil
			}
		}
	}
	return world.Coord{}, fmt.Errorf("no free cell on %dx%d grid", b.X, b.Y)
}

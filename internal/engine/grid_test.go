package engine

import (
	"math/rand"
	"testing"

	"github.com/talgya/invasion/internal/agents"
	"github.com/talgya/invasion/internal/world"
)

func TestGridPlaceAndQueries(t *testing.T) {
	g := NewGrid(world.Bounds{X: 10, Y: 10})
	h := agents.NewHuman(1, 3)
	hunter := agents.NewHunter(2, 3, 3, 3)
	z := agents.NewZombie(3, 1)

	g.Place(h, world.Coord{X: 1, Y: 1})
	g.Place(hunter, world.Coord{X: 1, Y: 1}) // stacking is allowed
	g.Place(z, world.Coord{X: 5, Y: 5})

	if got := g.CountOf(agents.KindHuman); got != 2 {
		t.Errorf("CountOf(human) = %d, want 2 (hunter counts as human)", got)
	}
	if got := g.CountOf(agents.KindHunter); got != 1 {
		t.Errorf("CountOf(hunter) = %d, want 1", got)
	}
	if got := g.CountOf(agents.KindZombie); got != 1 {
		t.Errorf("CountOf(zombie) = %d, want 1", got)
	}

	if got := g.PositionsOf(agents.KindHuman); len(got) != 2 {
		t.Errorf("PositionsOf(human) = %v, want two stacked entries", got)
	}
	if got := g.AgentsAt(world.Coord{X: 1, Y: 1}, agents.KindHuman); len(got) != 2 {
		t.Errorf("AgentsAt(1,1) = %d agents, want 2", len(got))
	}

	// Re-placing moves rather than duplicating.
	g.Place(h, world.Coord{X: 2, Y: 2})
	if got := len(g.All()); got != 3 {
		t.Errorf("All() = %d agents after re-place, want 3", got)
	}
}

func TestGridRemoveIsIdempotent(t *testing.T) {
	g := NewGrid(world.Bounds{X: 10, Y: 10})
	z := agents.NewZombie(1, 1)
	g.Place(z, world.Coord{X: 0, Y: 0})

	g.Remove(z)
	if _, ok := g.CoordOf(z); ok {
		t.Fatal("agent still present after Remove")
	}
	g.Remove(z) // absent: a no-op, not a fault
	if got := g.CountOf(agents.KindZombie); got != 0 {
		t.Errorf("CountOf(zombie) = %d, want 0", got)
	}
}

func TestMoveAllForfeitsOutOfBounds(t *testing.T) {
	g := NewGrid(world.Bounds{X: 5, Y: 5})
	h := agents.NewHuman(1, 100) // every candidate lands outside a 5x5 grid
	start := world.Coord{X: 2, Y: 2}
	g.Place(h, start)

	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 20; i++ {
		g.MoveAll(rng)
		if c, _ := g.CoordOf(h); c != start {
			t.Fatalf("forfeited move changed position to %v", c)
		}
	}
}

func TestSnapshotIsFrozen(t *testing.T) {
	g := NewGrid(world.Bounds{X: 10, Y: 10})
	h := agents.NewHuman(1, 3)
	z := agents.NewZombie(2, 1)
	g.Place(h, world.Coord{X: 1, Y: 1})
	g.Place(z, world.Coord{X: 8, Y: 8})

	snap := g.snapshot()
	g.Place(h, world.Coord{X: 4, Y: 4})
	g.Remove(z)

	if c, ok := snap.CoordOf(h); !ok || c != (world.Coord{X: 1, Y: 1}) {
		t.Errorf("snapshot saw the later move: %v", c)
	}
	if _, ok := snap.CoordOf(z); !ok {
		t.Error("snapshot saw the later removal")
	}
}

func TestCompactDropsRemovedAgents(t *testing.T) {
	g := NewGrid(world.Bounds{X: 10, Y: 10})
	keep := agents.NewHuman(1, 3)
	gone := agents.NewHuman(2, 3)
	g.Place(keep, world.Coord{X: 0, Y: 0})
	g.Place(gone, world.Coord{X: 1, Y: 1})

	g.Remove(gone)
	g.compact()

	if len(g.order) != 1 || g.order[0] != keep {
		t.Fatalf("order = %v after compact, want only the live agent", g.order)
	}
}

func TestHunterReloadWindow(t *testing.T) {
	g := NewGrid(world.Bounds{X: 10, Y: 10})
	h := agents.NewHunter(1, 3, 3, 3)
	pos := world.Coord{X: 5, Y: 5}
	g.Place(h, pos)

	shot := uint64(1)
	h.LastShot = &shot
	h.AmmoLeft = 0

	// Not enough turns since the last shot: still dry.
	g.turn = 4 // 4-1 == reloadTurns, not strictly greater
	h.Interact(pos, g)
	if h.AmmoLeft != 0 {
		t.Fatalf("ammo = %d before the reload window elapsed, want 0", h.AmmoLeft)
	}

	g.turn = 5
	h.Interact(pos, g)
	if h.AmmoLeft != 3 {
		t.Fatalf("ammo = %d after the reload window, want 3", h.AmmoLeft)
	}
}

package agents

import (
	"fmt"

	"github.com/talgya/invasion/internal/world"
)

// AgentID is a unique identifier for an agent, issued at seeding time.
type AgentID uint64

// Agent is a simulated actor on the grid. Kind-specific state is meaningful
// only while the agent is present in the grid's position map.
type Agent struct {
	ID    AgentID `json:"id"`
	Kind  Kind    `json:"kind"`
	Paces int     `json:"paces"` // Max per-axis step units per turn

	// Hunter state.
	AmmoCap     int     `json:"-"` // Slugs held when fully loaded
	ReloadTurns int     `json:"-"` // Turns to reload after running dry
	AmmoLeft    int     `json:"-"`
	LastShot    *uint64 `json:"-"` // Turn of the last shot, nil if never fired

	// Zombie state. The remembered target may go stale: it can be shot,
	// converted, or escape the tie group. Staleness is tolerated, never a fault.
	LastHunted *Agent `json:"-"`
}

// NewHuman creates a plain Human.
func NewHuman(id AgentID, paces int) *Agent {
	return &Agent{ID: id, Kind: KindHuman, Paces: paces}
}

// NewHunter creates a Hunter with a full shotgun.
func NewHunter(id AgentID, paces, slugs, reloadTurns int) *Agent {
	return &Agent{
		ID:          id,
		Kind:        KindHunter,
		Paces:       paces,
		AmmoCap:     slugs,
		ReloadTurns: reloadTurns,
		AmmoLeft:    slugs,
	}
}

// NewZombie creates a Zombie with no remembered target.
func NewZombie(id AgentID, paces int) *Agent {
	return &Agent{ID: id, Kind: KindZombie, Paces: paces}
}

// convertToZombie rewrites the agent in place as a Zombie matching the
// converter. Identity is preserved; Human and Hunter state is discarded and
// Zombie state starts fresh.
func (a *Agent) convertToZombie(by *Agent) {
	a.Kind = KindZombie
	a.Paces = by.Paces
	a.AmmoCap = 0
	a.ReloadTurns = 0
	a.AmmoLeft = 0
	a.LastShot = nil
	a.LastHunted = nil
}

// String returns a short identity tag for logging.
func (a *Agent) String() string {
	return fmt.Sprintf("%s %d", a.Kind, a.ID)
}

// View is the read surface a behavior consults, plus removal for combat.
// During the interact phase it is the live grid, so removals and conversions
// are immediately visible to agents processed later in the same phase. During
// the move phase it is a frozen snapshot, making move outcomes independent of
// processing order.
type View interface {
	// Turn returns the current turn number.
	Turn() uint64
	// Bounds returns the grid extent.
	Bounds() world.Bounds
	// CoordOf returns an agent's coordinate, with ok=false if absent.
	CoordOf(a *Agent) (world.Coord, bool)
	// All returns every present agent.
	All() []*Agent
	// PositionsOf returns the coordinates of all present agents matching the
	// kind, duplicates included when agents stack.
	PositionsOf(kind Kind) []world.Coord
	// AgentsAt returns the present agents of the given kind at a coordinate.
	AgentsAt(c world.Coord, kind Kind) []*Agent
	// Remove deletes an agent; a no-op if it is already gone.
	Remove(a *Agent)
}

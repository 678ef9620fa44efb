// Per-kind movement and interaction rules. Move produces a candidate
// coordinate only; bounds validation and the commit belong to the grid.
package agents

import (
	"log/slog"
	"math/rand"

	"github.com/talgya/invasion/internal/spatial"
	"github.com/talgya/invasion/internal/world"
)

// Move computes the agent's candidate coordinate for this turn, routing by
// kind. The result may be out of bounds; the caller decides whether to commit.
func (a *Agent) Move(pos world.Coord, v View, rng *rand.Rand) world.Coord {
	if a.Kind == KindZombie {
		return a.pursue(pos, v, rng)
	}
	return a.wander(pos, rng)
}

// Interact applies the agent's interaction rule against the live view.
// Plain Humans have none.
func (a *Agent) Interact(pos world.Coord, v View) {
	switch a.Kind {
	case KindHunter:
		a.shoot(pos, v)
	case KindZombie:
		a.convert(pos, v)
	}
}

// wander moves a Human by its pace budget in one of the eight compass
// headings. The vector's first component is drawn from {0, +n, -n}; the
// second may be zero only when the first is not, so a full stop never occurs.
func (a *Agent) wander(pos world.Coord, rng *rand.Rand) world.Coord {
	n := a.Paces
	dx := [3]int{0, n, -n}[rng.Intn(3)]
	var dy int
	if dx == 0 {
		dy = [2]int{n, -n}[rng.Intn(2)]
	} else {
		dy = [3]int{0, n, -n}[rng.Intn(3)]
	}
	slog.Debug("move vector", "agent", a, "dx", dx, "dy", dy)
	return pos.Add(dx, dy)
}

// shoot fires at one adjacent Zombie, at most once per turn, when slugs are
// available. An empty shotgun is refilled first once enough turns have passed
// since the last shot.
func (a *Agent) shoot(pos world.Coord, v View) {
	turn := v.Turn()
	if a.AmmoLeft == 0 && (a.LastShot == nil || turn-*a.LastShot > uint64(a.ReloadTurns)) {
		slog.Debug("reloading", "agent", a, "slugs", a.AmmoCap)
		a.AmmoLeft = a.AmmoCap
	}

	for _, other := range v.All() {
		oc, ok := v.CoordOf(other)
		if !ok {
			continue
		}
		firedThisTurn := a.LastShot != nil && *a.LastShot == turn
		if world.Adjacent(oc, pos) && other.Kind == KindZombie && a.AmmoLeft > 0 && !firedThisTurn {
			slog.Info("shooting zombie", "hunter", a, "zombie", other, "at", oc)
			a.AmmoLeft--
			shot := turn
			a.LastShot = &shot
			v.Remove(other)
		}
	}
}

// convert turns every Human-kind agent standing on this Zombie's square into
// a Zombie. Identity is preserved in the grid; only kind and kind state change.
func (a *Agent) convert(pos world.Coord, v View) {
	for _, other := range v.All() {
		oc, ok := v.CoordOf(other)
		if !ok {
			continue
		}
		if oc == pos && other.Kind.Is(KindHuman) {
			slog.Info("turning human", "zombie", a, "victim", other, "at", pos)
			other.convertToZombie(a)
		}
	}
}

// pursue walks toward the nearest Human-kind agent. Co-located targets are
// ignored (conversion handles those); among targets tied at the minimum
// distance the previously hunted agent is kept if it is still in the tie
// group, otherwise a new target is drawn uniformly from the group's occupants.
func (a *Agent) pursue(pos world.Coord, v View, rng *rand.Rand) world.Coord {
	b := v.Bounds()
	// Enough candidates to cover every target even when they all line the
	// grid edges.
	maxCandidates := 2*b.X + 2*b.Y

	targets := v.PositionsOf(KindHuman)
	if len(targets) == 0 {
		slog.Debug("no humans left, standing still", "zombie", a)
		return pos
	}

	candidates := spatial.Build(targets).Nearest(pos, maxCandidates)

	minDist := -1
	for _, c := range candidates {
		if c.DistSq == 0 {
			continue
		}
		if minDist == -1 || c.DistSq < minDist {
			minDist = c.DistSq
		}
	}
	if minDist == -1 {
		// Only co-located humans remain.
		return pos
	}

	tieGroup := make(map[world.Coord]bool)
	for _, c := range candidates {
		if c.DistSq == minDist {
			tieGroup[c.Coord] = true
		}
	}

	if a.LastHunted != nil {
		c, present := v.CoordOf(a.LastHunted)
		if !present || !a.LastHunted.Kind.Is(KindHuman) || !tieGroup[c] {
			a.LastHunted = nil
		}
	}
	if a.LastHunted == nil {
		// Stacked humans appear once per occupant in the candidate list; walk
		// each tied coordinate once so the draw is uniform over agents.
		var occupants []*Agent
		seen := make(map[world.Coord]bool)
		for _, c := range candidates {
			if c.DistSq == minDist && !seen[c.Coord] {
				seen[c.Coord] = true
				occupants = append(occupants, v.AgentsAt(c.Coord, KindHuman)...)
			}
		}
		a.LastHunted = occupants[rng.Intn(len(occupants))]
		slog.Debug("chose new target", "zombie", a, "target", a.LastHunted)
	}

	target, _ := v.CoordOf(a.LastHunted)
	return walkToward(pos, target, a.Paces)
}

// walkToward steps up to paces times toward the target, one unit along each
// axis whose offset is nonzero, stopping early on arrival. With a large
// enough pace budget the walk lands exactly on the target.
func walkToward(pos, target world.Coord, paces int) world.Coord {
	next := pos
	for i := 0; i < paces; i++ {
		next = next.Add(sign(target.X-next.X), sign(target.Y-next.Y))
		if next == target {
			break
		}
	}
	return next
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

// Package spatial provides nearest-neighbor queries over grid coordinates.
// The tree is built fresh for every query: the population changes each turn,
// so an incrementally maintained structure would be stale by the time it is
// consulted.
package spatial

import (
	"sort"

	"github.com/talgya/invasion/internal/world"
)

// Neighbor is a candidate returned by a nearest-neighbor query.
type Neighbor struct {
	Coord  world.Coord
	DistSq int
}

// Tree is a 2-d tree over a fixed set of coordinates.
type Tree struct {
	root *node
}

type node struct {
	point       world.Coord
	axis        int // 0 = x, 1 = y
	left, right *node
}

// Build constructs a balanced 2-d tree from the given points. Duplicate
// points are kept; the internal ordering between equidistant points is
// arbitrary and callers must not rely on it.
func Build(points []world.Coord) *Tree {
	pts := make([]world.Coord, len(points))
	copy(pts, points)
	return &Tree{root: build(pts, 0)}
}

func build(pts []world.Coord, axis int) *node {
	if len(pts) == 0 {
		return nil
	}
	sort.Slice(pts, func(i, j int) bool {
		if axis == 0 {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	mid := len(pts) / 2
	return &node{
		point: pts[mid],
		axis:  axis,
		left:  build(pts[:mid], 1-axis),
		right: build(pts[mid+1:], 1-axis),
	}
}

// Nearest returns up to k points closest to the query coordinate, ordered by
// increasing squared Euclidean distance.
func (t *Tree) Nearest(query world.Coord, k int) []Neighbor {
	if t.root == nil || k <= 0 {
		return nil
	}
	h := &best{limit: k}
	t.root.search(query, h)
	sort.Slice(h.items, func(i, j int) bool { return h.items[i].DistSq < h.items[j].DistSq })
	return h.items
}

// best keeps the k closest candidates seen so far.
type best struct {
	items []Neighbor
	limit int
}

func (b *best) worst() int {
	w := -1
	for _, n := range b.items {
		if n.DistSq > w {
			w = n.DistSq
		}
	}
	return w
}

func (b *best) add(n Neighbor) {
	if len(b.items) < b.limit {
		b.items = append(b.items, n)
		return
	}
	// Replace the current worst if this candidate is closer.
	wi, wd := 0, b.items[0].DistSq
	for i, it := range b.items {
		if it.DistSq > wd {
			wi, wd = i, it.DistSq
		}
	}
	if n.DistSq < wd {
		b.items[wi] = n
	}
}

func (b *best) full() bool {
	return len(b.items) == b.limit
}

func (n *node) search(query world.Coord, h *best) {
	if n == nil {
		return
	}
	h.add(Neighbor{Coord: n.point, DistSq: n.point.DistSq(query)})

	var diff int
	if n.axis == 0 {
		diff = query.X - n.point.X
	} else {
		diff = query.Y - n.point.Y
	}

	near, far := n.left, n.right
	if diff > 0 {
		near, far = n.right, n.left
	}
	near.search(query, h)

	// The far side can only matter if the splitting plane is closer than the
	// worst candidate kept so far, or the candidate set is not full yet.
	if !h.full() || diff*diff <= h.worst() {
		far.search(query, h)
	}
}

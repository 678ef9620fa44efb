// Package world provides the bounded rectangular grid geometry: coordinates,
// bounds, and the adjacency rule used for combat resolution.
package world

import "fmt"

// Coord is a position on the grid. Coordinates start at the upper-left
// corner and are zero-based.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the coordinate shifted by the given deltas.
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// DistSq returns the squared Euclidean distance to another coordinate.
func (c Coord) DistSq(o Coord) int {
	dx := c.X - o.X
	dy := c.Y - o.Y
	return dx*dx + dy*dy
}

// String returns the coordinate as "(x,y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Bounds is the extent of the grid. Valid coordinates satisfy
// 0 <= x < X and 0 <= y < Y.
type Bounds struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Contains reports whether the coordinate lies inside the grid.
func (b Bounds) Contains(c Coord) bool {
	return 0 <= c.X && c.X < b.X && 0 <= c.Y && c.Y < b.Y
}

// Cells returns the total number of grid cells.
func (b Bounds) Cells() int {
	return b.X * b.Y
}

// Adjacent reports whether two coordinates are adjacent for combat purposes:
// both axis deltas must have absolute value exactly 1. A coordinate is not
// adjacent to itself, and axis-only neighbors (one delta 1, the other 0) do
// not qualify. The rule is deliberately narrower than Chebyshev distance 1.
func Adjacent(p1, p2 Coord) bool {
	return abs(p1.X-p2.X) == 1 && abs(p1.Y-p2.Y) == 1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Terminal rendering of grid snapshots: one colored two-digit occupant count
// per cell, zombies over hunters over humans when a cell is contested.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/talgya/invasion/internal/engine"
)

const (
	ansiClear = "\033[H\033[J"
	ansiGreen = "\x1b[1;32m"
	ansiBlue  = "\x1b[1;34m"
	ansiRed   = "\x1b[1;31m"
	ansiReset = "\x1b[0m"
)

type cell struct {
	count   int
	zombies int
	hunters int
}

// draw clears the screen and paints the snapshot.
func draw(w io.Writer, snap engine.Snapshot) {
	cells := make(map[[2]int]*cell)
	humans, hunters, zombies := 0, 0, 0
	for _, a := range snap.Agents {
		key := [2]int{a.X, a.Y}
		c := cells[key]
		if c == nil {
			c = &cell{}
			cells[key] = c
		}
		c.count++
		switch a.Kind {
		case "zombie":
			c.zombies++
			zombies++
		case "hunter":
			c.hunters++
			hunters++
			humans++
		default:
			humans++
		}
	}

	var b strings.Builder
	b.WriteString(ansiClear)
	fmt.Fprintf(&b, "Zombie Invasion Simulator :: Turn: %d  %sHumans: %02d%s %sHunters: %02d%s %sZombies: %02d%s\n",
		snap.Turn,
		ansiGreen, humans, ansiReset,
		ansiBlue, hunters, ansiReset,
		ansiRed, zombies, ansiReset,
	)

	for y := 0; y < snap.Bounds.Y; y++ {
		for x := 0; x < snap.Bounds.X; x++ {
			c, ok := cells[[2]int{x, y}]
			switch {
			case !ok:
				b.WriteString("00 ")
			case c.zombies > 0:
				fmt.Fprintf(&b, "%s%02d%s ", ansiRed, c.count, ansiReset)
			case c.hunters > 0:
				fmt.Fprintf(&b, "%s%02d%s ", ansiBlue, c.count, ansiReset)
			default:
				fmt.Fprintf(&b, "%s%02d%s ", ansiGreen, c.count, ansiReset)
			}
		}
		b.WriteByte('\n')
	}
	fmt.Fprint(w, b.String())
}

// Package rules answers move legality questions about a grid without
// changing it.
package rules

import "github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"

// Directions in action-mask order
var Directions = [4]core.Direction{core.Up, core.Right, core.Down, core.Left}

// MoveTargets returns the in-bounds, non-mountain neighbours of at: the
// cells a selection at at could move into.
func MoveTargets(g *core.Grid, at core.Coordinate) []core.Coordinate {
	var out []core.Coordinate
	for _, n := range at.ValidNeighbors(g.W, g.H) {
		if !g.At(n).IsMountain() {
			out = append(out, n)
		}
	}
	return out
}

// ActionMask returns a flattened mask of the moves side could order now.
// For a W x H grid there are W*H*4 entries, index (y*W+x)*4+d with d
// following Directions.
func ActionMask(g *core.Grid, side core.Side) []bool {
	mask := make([]bool, g.W*g.H*4)
	if !side.Valid() {
		return mask
	}
	for idx := range g.Cells {
		if g.Cells[idx].Owner != side {
			continue
		}
		x, y := g.XY(idx)
		for d, dir := range Directions {
			order := core.MoveOrder{Side: side, From: core.Coordinate{X: x, Y: y}, Direction: dir}
			if order.Validate(g) == nil {
				mask[idx*4+d] = true
			}
		}
	}
	return mask
}

// Mobility counts the legal moves of side
func Mobility(g *core.Grid, side core.Side) int {
	n := 0
	for _, ok := range ActionMask(g, side) {
		if ok {
			n++
		}
	}
	return n
}

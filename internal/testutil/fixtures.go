package testutil

import (
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
)

// CellSpec describes one cell to place on a test grid
type CellSpec struct {
	Terrain core.Terrain
	Owner   core.Side
	Units   int
}

// CreateTestGrid creates an empty grid of the given dimensions
func CreateTestGrid(width, height int) *core.Grid {
	return core.NewGrid(width, height)
}

// CreateTestGridWithCells creates a test grid and sets up specific cells.
// Display counts start equal to the real counts.
func CreateTestGridWithCells(width, height int, cells map[core.Coordinate]CellSpec) *core.Grid {
	grid := core.NewGrid(width, height)
	for at, spec := range cells {
		SetCell(grid, at, spec)
	}
	return grid
}

// SetCell overwrites a single cell
func SetCell(grid *core.Grid, at core.Coordinate, spec CellSpec) {
	c := grid.At(at)
	c.Terrain = spec.Terrain
	c.Owner = spec.Owner
	c.Units = spec.Units
	c.DisplayUnits = spec.Units
}

// CreateDuelSetup creates a standard 16x12 grid with Base A at (1,1) and
// Base B at (14,10), one unit each
func CreateDuelSetup() (*core.Grid, core.Coordinate, core.Coordinate) {
	baseA := core.Coordinate{X: 1, Y: 1}
	baseB := core.Coordinate{X: 14, Y: 10}
	grid := CreateTestGridWithCells(core.GridWidth, core.GridHeight, map[core.Coordinate]CellSpec{
		baseA: {Terrain: core.Base, Owner: core.SideA, Units: 1},
		baseB: {Terrain: core.Base, Owner: core.SideB, Units: 1},
	})
	return grid, baseA, baseB
}

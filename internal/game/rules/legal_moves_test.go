package rules

import (
	"testing"

	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func at(x, y int) core.Coordinate { return core.Coordinate{X: x, Y: y} }

func TestMoveTargets(t *testing.T) {
	g := testutil.CreateTestGridWithCells(4, 3, map[core.Coordinate]testutil.CellSpec{
		at(1, 0): {Terrain: core.Mountain},
	})

	assert.ElementsMatch(t, []core.Coordinate{at(0, 1)}, MoveTargets(g, at(0, 0)))
	assert.ElementsMatch(t, []core.Coordinate{at(0, 1), at(2, 1), at(1, 2)}, MoveTargets(g, at(1, 1)))
	assert.ElementsMatch(t, []core.Coordinate{at(2, 2), at(3, 1)}, MoveTargets(g, at(3, 2)))
}

func TestActionMask(t *testing.T) {
	g := testutil.CreateTestGridWithCells(3, 3, map[core.Coordinate]testutil.CellSpec{
		at(0, 0): {Owner: core.SideA, Units: 5},
		at(1, 0): {Terrain: core.Mountain},
		at(2, 2): {Owner: core.SideA, Units: 1},
		at(1, 1): {Owner: core.SideB, Units: 9},
	})

	mask := ActionMask(g, core.SideA)
	assert.Len(t, mask, 3*3*4)

	// (0,0): up and left leave the grid, right is a mountain
	assert.False(t, mask[0*4+0])
	assert.False(t, mask[0*4+1])
	assert.True(t, mask[0*4+2])
	assert.False(t, mask[0*4+3])

	assert.Equal(t, 1, Mobility(g, core.SideA), "a single unit cannot move")
	// (1,1): up is blocked by the mountain at (1,0)
	maskB := ActionMask(g, core.SideB)
	assert.False(t, maskB[4*4+0])
	assert.Equal(t, 3, Mobility(g, core.SideB))
	assert.Zero(t, Mobility(g, core.SideNone))
}

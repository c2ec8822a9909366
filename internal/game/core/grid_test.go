package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinateMoveAndClamp(t *testing.T) {
	c := Coordinate{X: 0, Y: 0}

	assert.Equal(t, Coordinate{X: 0, Y: -1}, c.Move(Up))
	assert.Equal(t, Coordinate{X: 0, Y: 1}, c.Move(Down))
	assert.Equal(t, Coordinate{X: -1, Y: 0}, c.Move(Left))
	assert.Equal(t, Coordinate{X: 1, Y: 0}, c.Move(Right))
	assert.Equal(t, c, c.Move(DirNone))

	assert.Equal(t, Coordinate{X: 0, Y: 0}, c.Move(Up).Clamp(GridWidth, GridHeight))
	assert.Equal(t, Coordinate{X: 15, Y: 11}, Coordinate{X: 40, Y: 40}.Clamp(GridWidth, GridHeight))
}

func TestCoordinateDistanceAndIndex(t *testing.T) {
	a := Coordinate{X: 1, Y: 2}
	b := Coordinate{X: 4, Y: 0}

	assert.Equal(t, 5, a.DistanceTo(b))
	assert.Equal(t, 5, b.DistanceTo(a))
	assert.Equal(t, a, FromIndex(a.ToIndex(GridWidth), GridWidth))
	assert.Len(t, Coordinate{}.ValidNeighbors(GridWidth, GridHeight), 2)
	assert.Len(t, Coordinate{X: 5, Y: 5}.ValidNeighbors(GridWidth, GridHeight), 4)
}

func TestSideOpponent(t *testing.T) {
	assert.Equal(t, SideB, SideA.Opponent())
	assert.Equal(t, SideA, SideB.Opponent())
	assert.Equal(t, SideNone, SideNone.Opponent())
	assert.False(t, SideNone.Valid())
}

func TestGridAt(t *testing.T) {
	g := NewStandardGrid()
	require.Len(t, g.Cells, GridWidth*GridHeight)

	assert.Nil(t, g.At(Coordinate{X: -1, Y: 0}))
	assert.Nil(t, g.At(Coordinate{X: GridWidth, Y: 0}))
	require.NotNil(t, g.At(Coordinate{X: GridWidth - 1, Y: GridHeight - 1}))

	g.At(Coordinate{X: 3, Y: 2}).Units = 7
	assert.Equal(t, 7, g.Cells[2*GridWidth+3].Units)
	x, y := g.XY(2*GridWidth + 3)
	assert.Equal(t, 3, x)
	assert.Equal(t, 2, y)
}

func TestGridCheckInvariants(t *testing.T) {
	g := NewStandardGrid()
	require.NoError(t, g.CheckInvariants())

	g.At(Coordinate{X: 1, Y: 1}).Units = 3
	assert.Error(t, g.CheckInvariants(), "unowned cell with units")

	g.Reset()
	setCell(g, 1, 1, Empty, SideA, MaxUnits+1)
	assert.Error(t, g.CheckInvariants(), "garrison over cap")

	g.Reset()
	setCell(g, 1, 1, Mountain, SideB, 0)
	assert.Error(t, g.CheckInvariants(), "owned mountain")
}

func TestGridAnimateDisplay(t *testing.T) {
	g := NewStandardGrid()
	c := setCell(g, 0, 0, Tower, SideA, 30)

	// 0 -> 10 -> 16 -> 20 -> 23 ... converges without overshoot
	g.AnimateDisplay()
	assert.Equal(t, 10, c.DisplayUnits)
	g.AnimateDisplay()
	assert.Equal(t, 16, c.DisplayUnits)

	for i := 0; i < 20; i++ {
		g.AnimateDisplay()
	}
	assert.Equal(t, 30, c.DisplayUnits)

	c.Units = 28
	g.AnimateDisplay()
	assert.Equal(t, 29, c.DisplayUnits, "small gaps step by one")
}

func TestGridFindBaseAndCount(t *testing.T) {
	g := NewStandardGrid()
	setCell(g, 2, 3, Base, SideA, 4)
	setCell(g, 3, 3, Empty, SideA, 6)
	setCell(g, 9, 9, Base, SideB, 1)

	at, ok := g.FindBase(SideA)
	require.True(t, ok)
	assert.Equal(t, Coordinate{X: 2, Y: 3}, at)

	cells, units := g.CountOwned(SideA)
	assert.Equal(t, 2, cells)
	assert.Equal(t, 10, units)

	_, ok = g.FindBase(SideNone)
	assert.False(t, ok)
}

func TestGridString(t *testing.T) {
	g := NewGrid(2, 1)
	setCell(g, 0, 0, Base, SideA, 5)
	setCell(g, 1, 0, Mountain, SideNone, 0)

	assert.Equal(t, "A 5*  ^^ \n", g.String())
}

package core

import (
	"fmt"
	"strings"
)

// Fixed board geometry and garrison limits. None of these are configurable.
const (
	GridWidth          = 16
	GridHeight         = 12
	MaxUnits           = 99
	ProductionInterval = 4
	MinBaseDistance    = (GridWidth + GridHeight) / 2
)

// Terrain is the static type of a cell
type Terrain int

const (
	Empty Terrain = iota
	Mountain
	Base
	Tower
)

func (t Terrain) String() string {
	switch t {
	case Empty:
		return "empty"
	case Mountain:
		return "mountain"
	case Base:
		return "base"
	case Tower:
		return "tower"
	default:
		return fmt.Sprintf("terrain(%d)", int(t))
	}
}

// Produces reports whether owned cells of this terrain gain units on production ticks
func (t Terrain) Produces() bool {
	return t == Base || t == Tower
}

// Side identifies a player. SideA plays blue, SideB plays red.
type Side int

const (
	SideNone Side = iota
	SideA
	SideB
)

func (s Side) String() string {
	switch s {
	case SideA:
		return "A"
	case SideB:
		return "B"
	default:
		return "none"
	}
}

// Valid reports whether s is one of the two players
func (s Side) Valid() bool {
	return s == SideA || s == SideB
}

// Opponent returns the other player. SideNone has no opponent.
func (s Side) Opponent() Side {
	switch s {
	case SideA:
		return SideB
	case SideB:
		return SideA
	default:
		return SideNone
	}
}

// Cell is one grid square.
// Owner == SideNone implies Units == 0.
// DisplayUnits is presentation only and never read by the rules.
type Cell struct {
	Terrain      Terrain
	Owner        Side
	Units        int
	DisplayUnits int
}

func (c *Cell) IsOwned() bool    { return c.Owner != SideNone }
func (c *Cell) IsMountain() bool { return c.Terrain == Mountain }
func (c *Cell) IsBase() bool     { return c.Terrain == Base }

// Grid is the fixed-size territory map, stored row-major
type Grid struct {
	W, H  int
	Cells []Cell
}

// NewGrid returns an empty, unowned grid of the given size
func NewGrid(w, h int) *Grid {
	return &Grid{W: w, H: h, Cells: make([]Cell, w*h)}
}

// NewStandardGrid returns an empty 16x12 grid
func NewStandardGrid() *Grid {
	return NewGrid(GridWidth, GridHeight)
}

func (g *Grid) Idx(x, y int) int { return y*g.W + x }

func (g *Grid) XY(idx int) (x, y int) { return idx % g.W, idx / g.W }

func (g *Grid) InBounds(c Coordinate) bool { return c.IsValid(g.W, g.H) }

// At returns the cell at c, or nil when c is off the grid
func (g *Grid) At(c Coordinate) *Cell {
	if !g.InBounds(c) {
		return nil
	}
	return &g.Cells[g.Idx(c.X, c.Y)]
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	cp := &Grid{W: g.W, H: g.H, Cells: make([]Cell, len(g.Cells))}
	copy(cp.Cells, g.Cells)
	return cp
}

// Reset clears every cell back to empty, unowned terrain
func (g *Grid) Reset() {
	for i := range g.Cells {
		g.Cells[i] = Cell{}
	}
}

// CountOwned returns the number of cells and units held by side
func (g *Grid) CountOwned(side Side) (cells, units int) {
	for i := range g.Cells {
		if g.Cells[i].Owner == side {
			cells++
			units += g.Cells[i].Units
		}
	}
	return cells, units
}

// FindBase returns the location of the Base owned by side
func (g *Grid) FindBase(side Side) (Coordinate, bool) {
	for i := range g.Cells {
		if g.Cells[i].Terrain == Base && g.Cells[i].Owner == side {
			return FromIndex(i, g.W), true
		}
	}
	return Coordinate{}, false
}

// CheckInvariants verifies the per-cell ownership and garrison rules
func (g *Grid) CheckInvariants() error {
	for i := range g.Cells {
		c := &g.Cells[i]
		x, y := g.XY(i)
		switch {
		case c.Units < 0 || c.Units > MaxUnits:
			return fmt.Errorf("cell (%d,%d): unit count %d outside [0,%d]", x, y, c.Units, MaxUnits)
		case c.Owner == SideNone && c.Units != 0:
			return fmt.Errorf("cell (%d,%d): unowned cell holds %d units", x, y, c.Units)
		case c.Terrain == Mountain && c.Owner != SideNone:
			return fmt.Errorf("cell (%d,%d): mountain owned by %s", x, y, c.Owner)
		}
	}
	return nil
}

// AnimateDisplay moves every DisplayUnits one frame closer to Units.
// The step is a third of the gap, never less than one.
func (g *Grid) AnimateDisplay() {
	for i := range g.Cells {
		c := &g.Cells[i]
		if c.DisplayUnits == c.Units {
			continue
		}
		diff := c.Units - c.DisplayUnits
		step := abs(diff) / 3
		if step < 1 {
			step = 1
		}
		if diff > 0 {
			c.DisplayUnits += step
		} else {
			c.DisplayUnits -= step
		}
	}
}

// String renders the grid as text, one row per line.
// Mountains print as ^^, bases as A*/B*, towers with a T suffix.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := &g.Cells[g.Idx(x, y)]
			sb.WriteString(cellGlyph(c))
			if x < g.W-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func cellGlyph(c *Cell) string {
	if c.Terrain == Mountain {
		return " ^^ "
	}
	owner := "."
	switch c.Owner {
	case SideA:
		owner = "A"
	case SideB:
		owner = "B"
	}
	mark := " "
	switch c.Terrain {
	case Base:
		mark = "*"
	case Tower:
		mark = "T"
	}
	return fmt.Sprintf("%s%2d%s", owner, c.Units, mark)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

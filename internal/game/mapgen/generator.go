package mapgen

import (
	"math/rand"

	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
)

// MapConfig holds configuration for map generation
type MapConfig struct {
	Width           int
	Height          int
	EmptyPercent    int // rolls below this are Empty
	MountainPercent int // the next band of rolls is Mountain, the rest Tower
	MinBaseDistance int
	// MaxBaseAttempts bounds the resampling of the second base before
	// falling back to the farthest cell.
	MaxBaseAttempts int
}

// DefaultMapConfig returns the standard 16x12 configuration:
// 85% empty, 10% mountain, 5% tower, bases at least (W+H)/2 apart.
func DefaultMapConfig() MapConfig {
	return MapConfig{
		Width:           core.GridWidth,
		Height:          core.GridHeight,
		EmptyPercent:    85,
		MountainPercent: 10,
		MinBaseDistance: core.MinBaseDistance,
		MaxBaseAttempts: core.GridWidth * core.GridHeight * 4,
	}
}

// Generator handles map generation with deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
}

// NewGenerator creates a new map generator
func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// Placement records where the two bases were put
type Placement struct {
	BaseA core.Coordinate
	BaseB core.Coordinate
	// Attempts is the number of samples drawn for BaseB
	Attempts int
	// Fallback is set when the sampling budget ran out
	Fallback bool
}

// GenerateMap creates a new grid with terrain rolled and both bases placed.
// The result is a pure function of the generator's RNG state.
func (g *Generator) GenerateMap() (*core.Grid, Placement) {
	grid := core.NewGrid(g.config.Width, g.config.Height)

	g.rollTerrain(grid)
	placement := g.placeBases(grid)

	return grid, placement
}

// rollTerrain draws one roll per cell, column by column
func (g *Generator) rollTerrain(grid *core.Grid) {
	for x := 0; x < grid.W; x++ {
		for y := 0; y < grid.H; y++ {
			c := grid.At(core.Coordinate{X: x, Y: y})
			roll := g.rng.Intn(100)
			switch {
			case roll < g.config.EmptyPercent:
				c.Terrain = core.Empty
			case roll < g.config.EmptyPercent+g.config.MountainPercent:
				c.Terrain = core.Mountain
			default:
				c.Terrain = core.Tower
			}
			c.Owner = core.SideNone
			c.Units = 0
			c.DisplayUnits = 0
		}
	}
}

func (g *Generator) placeBases(grid *core.Grid) Placement {
	a := g.randomCell(grid)
	b := g.randomCell(grid)
	attempts := 1

	fallback := false
	for a.DistanceTo(b) < g.config.MinBaseDistance {
		if attempts >= g.config.MaxBaseAttempts {
			b = farthestFrom(grid, a)
			fallback = true
			break
		}
		b = g.randomCell(grid)
		attempts++
	}

	g.setBase(grid, a, core.SideA)
	g.setBase(grid, b, core.SideB)

	return Placement{BaseA: a, BaseB: b, Attempts: attempts, Fallback: fallback}
}

func (g *Generator) randomCell(grid *core.Grid) core.Coordinate {
	x := g.rng.Intn(grid.W)
	y := g.rng.Intn(grid.H)
	return core.Coordinate{X: x, Y: y}
}

func (g *Generator) setBase(grid *core.Grid, at core.Coordinate, side core.Side) {
	c := grid.At(at)
	c.Terrain = core.Base
	c.Owner = side
	c.Units = 0
	c.DisplayUnits = 0
}

// farthestFrom scans column by column and keeps the first cell at maximum distance
func farthestFrom(grid *core.Grid, from core.Coordinate) core.Coordinate {
	best := from
	bestDist := -1
	for x := 0; x < grid.W; x++ {
		for y := 0; y < grid.H; y++ {
			c := core.Coordinate{X: x, Y: y}
			if d := from.DistanceTo(c); d > bestDist {
				best, bestDist = c, d
			}
		}
	}
	return best
}

package game

import (
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/rules"
)

// Cursor is a player's selection cursor.
// FastMove mirrors the held modifier key (shift for A, ctrl for B).
type Cursor struct {
	Pos       core.Coordinate
	Selecting bool
	FastMove  bool
}

// GameState is everything a session owns. It is only touched on the CPU
// goroutine, from the main loop or from interrupt handlers it runs.
type GameState struct {
	GameID string
	Seed   int64
	Grid   *core.Grid
	Ended  bool
	Winner core.Side

	cursors [3]Cursor // indexed by core.Side, slot 0 unused
}

// NewGameState returns an empty session around grid
func NewGameState(grid *core.Grid) *GameState {
	return &GameState{Grid: grid}
}

// Cursor returns the cursor of side, or nil for SideNone
func (gs *GameState) Cursor(side core.Side) *Cursor {
	if !side.Valid() {
		return nil
	}
	return &gs.cursors[side]
}

// FlashNeighbors returns the in-bounds, non-mountain neighbours of a
// selecting player's cursor. Renderers blink them as move targets.
func (gs *GameState) FlashNeighbors(side core.Side) []core.Coordinate {
	c := gs.Cursor(side)
	if c == nil || !c.Selecting {
		return nil
	}
	return rules.MoveTargets(gs.Grid, c.Pos)
}

// Snapshot is a copy of the state safe to hand to another goroutine
type Snapshot struct {
	GameID         string
	Grid           *core.Grid
	Cursors        [2]Cursor // A then B
	Ended          bool
	Winner         core.Side
	TrueTick       int
	CalculatedTick int
}

// Cursor returns the snapshot cursor of side
func (s Snapshot) Cursor(side core.Side) Cursor {
	if side == core.SideB {
		return s.Cursors[1]
	}
	return s.Cursors[0]
}

func (gs *GameState) snapshot() Snapshot {
	return Snapshot{
		GameID:  gs.GameID,
		Grid:    gs.Grid.Clone(),
		Cursors: [2]Cursor{gs.cursors[core.SideA], gs.cursors[core.SideB]},
		Ended:   gs.Ended,
		Winner:  gs.Winner,
	}
}

package render

import (
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
)

// FlashPeriod is the blink cycle of selection targets, in simulation ticks.
// Targets are lit for the first half of each cycle.
const FlashPeriod = 4

// Scene is everything one frame shows
type Scene struct {
	Grid *core.Grid
	// Cursors holds the cursor cell of each side
	Cursors map[core.Side]core.Coordinate
	// Targets holds the blinking move targets of each selecting side
	Targets map[core.Side][]core.Coordinate
	Tick    int
	Winner  core.Side
}

// FlashOn reports whether selection targets are lit at tick
func FlashOn(tick int) bool {
	return tick%FlashPeriod < FlashPeriod/2
}

// DrawScene issues the draw calls of one frame. It does not swap.
func DrawScene(r Renderer, s Scene) {
	g := s.Grid
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			at := core.Coordinate{X: x, Y: y}
			c := g.At(at)
			r.DrawCell(at, c.Terrain, c.Owner, c.DisplayUnits)
		}
	}

	for _, side := range []core.Side{core.SideA, core.SideB} {
		if at, ok := s.Cursors[side]; ok {
			r.DrawCursorHighlight(at, side)
		}
	}
	if FlashOn(s.Tick) {
		for _, side := range []core.Side{core.SideA, core.SideB} {
			for _, at := range s.Targets[side] {
				r.DrawCursorHighlight(at, side)
			}
		}
	}

	for i, line := range HelpLines {
		r.DrawText(HelpCol, HelpRow+i, line)
	}
	if s.Winner.Valid() {
		r.DrawText(WinCol, WinRow, WinText(s.Winner))
		r.DrawText(WinCol, WinRow+1, ResetHint)
	}
}

// DrawPrompt issues the entropy prompt frame
func DrawPrompt(r Renderer) {
	for i, line := range PromptLines {
		r.DrawText(PromptCol, PromptRow+i, line)
	}
}

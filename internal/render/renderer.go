// Package render is the display side of the board: a Renderer interface the
// main loop draws through, a double-buffered display list that front ends
// scan out, and the scene layout shared by every front end.
package render

import (
	"context"

	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
)

// Renderer receives one frame per main-loop iteration
type Renderer interface {
	DrawCell(at core.Coordinate, terrain core.Terrain, owner core.Side, units int)
	DrawCursorHighlight(at core.Coordinate, side core.Side)
	DrawText(col, row int, text string)
	SwapBuffers()
	WaitForVsync(ctx context.Context) error
}

// Character buffer layout. Every grid cell covers CellChars x CellChars
// characters and the grid starts GridOffsetX cells from the left and
// GridOffsetY cells from the top.
const (
	TextCols    = 80
	TextRows    = 60
	CellChars   = 4
	CharPixels  = 4
	GridOffsetX = 2
	GridOffsetY = 1

	PromptCol = 2
	PromptRow = 2
	HelpCol   = 5
	HelpRow   = (core.GridHeight+GridOffsetY)*CellChars + 1
	WinCol    = 2
	WinRow    = 58

	// ScreenWidth and ScreenHeight are the pixel size of the display
	ScreenWidth  = TextCols * CharPixels
	ScreenHeight = TextRows * CharPixels
)

// HelpLines are shown under the grid for the whole session
var HelpLines = []string{
	"Player 1: WASD = move cursor, Space = Select",
	"          Hold shift when moving unit to move half instead of all",
	"Player 2: Arrow keys = move cursor, Enter = Select",
	"          Hold ctrl when moving unit to move half instead of all",
}

// PromptLines ask for switch input before a map can be generated
var PromptLines = []string{
	"User input needed to generate data entropy",
	"Turn on and off switch 0 to generate random map",
}

// ResetHint follows the winner line
const ResetHint = "Press button 0 to reset"

// WinText names the winning side
func WinText(side core.Side) string {
	if side == core.SideA {
		return "Blue Side Had Won"
	}
	return "Red Side Had Won"
}

// CellOrigin returns the character position of the top-left of a grid cell
func CellOrigin(at core.Coordinate) (col, row int) {
	return (at.X + GridOffsetX) * CellChars, (at.Y + GridOffsetY) * CellChars
}

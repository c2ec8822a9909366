package render

import (
	"context"
	"testing"
	"time"

	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(x, y int) core.Coordinate { return core.Coordinate{X: x, Y: y} }

func TestLayout(t *testing.T) {
	assert.Equal(t, 53, HelpRow)
	assert.Equal(t, 320, ScreenWidth)
	assert.Equal(t, 240, ScreenHeight)

	col, row := CellOrigin(at(0, 0))
	assert.Equal(t, 8, col)
	assert.Equal(t, 4, row)
	col, row = CellOrigin(at(core.GridWidth-1, core.GridHeight-1))
	assert.LessOrEqual(t, col+CellChars, TextCols)
	assert.Less(t, row+CellChars, HelpRow)
}

func TestWinText(t *testing.T) {
	assert.Equal(t, "Blue Side Had Won", WinText(core.SideA))
	assert.Equal(t, "Red Side Had Won", WinText(core.SideB))
}

func TestFlashOn(t *testing.T) {
	var lit []bool
	for tick := 0; tick < 8; tick++ {
		lit = append(lit, FlashOn(tick))
	}
	assert.Equal(t, []bool{true, true, false, false, true, true, false, false}, lit)
}

func TestFrameBuffer_SwapOnVsync(t *testing.T) {
	fb := NewFrameBuffer(4, 3)

	fb.DrawCell(at(1, 2), core.Base, core.SideA, 7)
	fb.DrawCursorHighlight(at(1, 2), core.SideA)
	fb.DrawText(2, 3, "hello")

	assert.False(t, fb.Front().Cell(at(1, 2)).Drawn, "nothing shown before the swap")
	assert.False(t, fb.Vsync(), "no swap requested")

	fb.SwapBuffers()
	waited := make(chan error, 1)
	go func() { waited <- fb.WaitForVsync(context.Background()) }()

	select {
	case <-waited:
		t.Fatal("wait returned before the display swapped")
	case <-time.After(20 * time.Millisecond):
	}

	assert.True(t, fb.Vsync())
	require.NoError(t, <-waited)

	front := fb.Front()
	assert.Equal(t, uint64(1), front.Seq)
	cell := front.Cell(at(1, 2))
	require.NotNil(t, cell)
	assert.Equal(t, CellDraw{Terrain: core.Base, Owner: core.SideA, Units: 7, Drawn: true}, *cell)
	assert.Equal(t, []core.Side{core.SideA}, front.HighlightsAt(at(1, 2)))
	assert.Equal(t, "  hello", front.TextLines()[3])
	assert.Nil(t, front.Cell(at(4, 0)))

	fb.SwapBuffers()
	fb.Vsync()
	assert.False(t, fb.Front().Cell(at(1, 2)).Drawn, "back buffer starts each frame empty")
	assert.Equal(t, uint64(2), fb.Swaps())
}

func TestFrameBuffer_WaitWithoutSwapReturns(t *testing.T) {
	fb := NewFrameBuffer(2, 2)
	assert.NoError(t, fb.WaitForVsync(context.Background()))
}

func TestFrameBuffer_WaitCancelled(t *testing.T) {
	fb := NewFrameBuffer(2, 2)
	fb.SwapBuffers()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, fb.WaitForVsync(ctx), context.DeadlineExceeded)
}

func TestFrameBuffer_Headless(t *testing.T) {
	fb := NewHeadlessFrameBuffer(2, 2)
	fb.DrawCell(at(0, 0), core.Tower, core.SideB, 3)
	fb.SwapBuffers()

	require.NoError(t, fb.WaitForVsync(context.Background()))
	assert.Equal(t, 3, fb.Front().Cell(at(0, 0)).Units)
}

func TestFrameBuffer_IgnoresOffGridDraws(t *testing.T) {
	fb := NewHeadlessFrameBuffer(2, 2)
	fb.DrawCell(at(5, 5), core.Empty, core.SideA, 1)
	fb.DrawCursorHighlight(at(-1, 0), core.SideA)
	fb.DrawCursorHighlight(at(0, 0), core.SideNone)
	fb.DrawText(0, TextRows+3, "lost")
	fb.DrawText(TextCols-2, 0, "clipped")
	fb.SwapBuffers()

	front := fb.Front()
	assert.Empty(t, front.Highlights)
	lines := front.TextLines()
	assert.Len(t, lines, TextRows)
	assert.Equal(t, "cl", lines[0][TextCols-2:])
}

func TestDrawScene(t *testing.T) {
	grid := core.NewStandardGrid()
	base := grid.At(at(1, 1))
	base.Terrain, base.Owner, base.Units, base.DisplayUnits = core.Base, core.SideA, 10, 4

	scene := Scene{
		Grid:    grid,
		Cursors: map[core.Side]core.Coordinate{core.SideA: at(1, 1), core.SideB: at(14, 10)},
		Targets: map[core.Side][]core.Coordinate{core.SideA: {at(0, 1), at(2, 1)}},
		Tick:    1,
	}

	fb := NewHeadlessFrameBuffer(grid.W, grid.H)
	DrawScene(fb, scene)
	fb.SwapBuffers()
	front := fb.Front()

	assert.Equal(t, 4, front.Cell(at(1, 1)).Units, "animated count is drawn")
	for _, c := range front.Cells {
		assert.True(t, c.Drawn)
	}
	assert.Equal(t, []core.Side{core.SideA}, front.HighlightsAt(at(2, 1)))
	assert.Equal(t, []core.Side{core.SideB}, front.HighlightsAt(at(14, 10)))

	lines := front.TextLines()
	assert.Equal(t, "     "+HelpLines[0], lines[HelpRow])
	assert.Empty(t, lines[WinRow])

	// flash off, winner shown
	scene.Tick = 2
	scene.Winner = core.SideB
	DrawScene(fb, scene)
	fb.SwapBuffers()
	front = fb.Front()

	assert.Empty(t, front.HighlightsAt(at(2, 1)))
	lines = front.TextLines()
	assert.Equal(t, "  Red Side Had Won", lines[WinRow])
	assert.Equal(t, "  Press button 0 to reset", lines[WinRow+1])
}

func TestDrawPrompt(t *testing.T) {
	fb := NewHeadlessFrameBuffer(1, 1)
	DrawPrompt(fb)
	fb.SwapBuffers()

	lines := fb.Front().TextLines()
	assert.Equal(t, "  "+PromptLines[0], lines[PromptRow])
	assert.Equal(t, "  "+PromptLines[1], lines[PromptRow+1])
}

package terminal

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/common"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/entropy"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/input/ps2"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/render"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/system"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(90, 40)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.Screen, y, from, n int) string {
	var sb strings.Builder
	for x := from; x < from+n; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestCellText(t *testing.T) {
	tests := []struct {
		name string
		cell render.CellDraw
		want string
	}{
		{"empty", render.CellDraw{Drawn: true}, "  .  "},
		{"mountain", render.CellDraw{Terrain: core.Mountain, Drawn: true}, " ^^^ "},
		{"neutral tower", render.CellDraw{Terrain: core.Tower, Units: 40, Drawn: true}, "  T  "},
		{"base", render.CellDraw{Terrain: core.Base, Owner: core.SideA, Units: 12, Drawn: true}, "* 12 "},
		{"owned tower", render.CellDraw{Terrain: core.Tower, Owner: core.SideB, Units: 255, Drawn: true}, "T255 "},
		{"owned plain", render.CellDraw{Owner: core.SideB, Units: 3, Drawn: true}, "   3 "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CellText(tt.cell)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, CellWidth)
		})
	}
}

func TestCellStyle(t *testing.T) {
	tests := []struct {
		name   string
		cell   render.CellDraw
		fg, bg tcell.Color
	}{
		{"empty", render.CellDraw{}, toTcell(common.UnitTextColor), toTcell(common.EmptyColor)},
		{"mountain", render.CellDraw{Terrain: core.Mountain}, toTcell(common.UnitTextColor), toTcell(common.MountainColor)},
		{"neutral tower", render.CellDraw{Terrain: core.Tower}, toTcell(common.TowerMarkColor), toTcell(common.EmptyColor)},
		{"owned", render.CellDraw{Owner: core.SideA, Units: 4}, toTcell(common.UnitTextColor), toTcell(common.SideColor(core.SideA))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fg, bg, _ := cellStyle(tt.cell).Decompose()
			assert.Equal(t, tt.fg, fg)
			assert.Equal(t, tt.bg, bg)
		})
	}
}

func TestDisplay_PaintsFrontFrame(t *testing.T) {
	screen := newScreen(t)
	fb := render.NewHeadlessFrameBuffer(core.GridWidth, core.GridHeight)
	d := NewDisplay(screen, fb)

	fb.DrawCell(core.Coordinate{X: 1, Y: 1}, core.Base, core.SideA, 7)
	fb.DrawCell(core.Coordinate{X: 2, Y: 1}, core.Mountain, core.SideNone, 0)
	fb.DrawCursorHighlight(core.Coordinate{X: 1, Y: 1}, core.SideA)
	fb.DrawText(render.HelpCol, render.HelpRow, "help")
	fb.DrawText(render.WinCol, render.WinRow, "won")
	fb.SwapBuffers()

	require.True(t, d.Refresh())
	assert.Equal(t, "*  7 ", rowText(screen, GridTop+1, GridLeft+CellWidth, CellWidth))
	assert.Equal(t, " ^^^ ", rowText(screen, GridTop+1, GridLeft+2*CellWidth, CellWidth))

	_, _, style, _ := screen.GetContent(GridLeft+CellWidth, GridTop+1)
	_, bg, _ := style.Decompose()
	assert.Equal(t, toTcell(common.HighlightColors[core.SideA]), bg)

	assert.Equal(t, "     help", rowText(screen, TextTop, 0, 9))
	assert.Equal(t, "  won", rowText(screen, TextTop+2, 0, 5), "gap kept between help and win text")

	assert.False(t, d.Refresh(), "nothing new to show")
	d.Invalidate()
	assert.True(t, d.Refresh())
}

func TestDisplay_PerformsPendingSwap(t *testing.T) {
	screen := newScreen(t)
	fb := render.NewFrameBuffer(core.GridWidth, core.GridHeight)
	d := NewDisplay(screen, fb)
	d.Refresh()

	fb.DrawCell(core.Coordinate{}, core.Empty, core.SideB, 2)
	fb.SwapBuffers()
	assert.False(t, fb.Front().Cell(core.Coordinate{}).Drawn, "not shown before vsync")

	require.True(t, d.Refresh())
	assert.Equal(t, "   2 ", rowText(screen, GridTop, GridLeft, CellWidth))
}

func TestTranslate(t *testing.T) {
	cat := func(parts ...[]byte) []byte {
		var out []byte
		for _, p := range parts {
			out = append(out, p...)
		}
		return out
	}
	tapOf := func(k ps2.Key) []byte { return cat(ps2.MakeSequence(k), ps2.BreakSequence(k)) }

	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		mod  tcell.ModMask
		want Action
	}{
		{"w", tcell.KeyRune, 'w', 0, Action{Bytes: tapOf(ps2.KeyW)}},
		{"shift d", tcell.KeyRune, 'D', tcell.ModShift, Action{Bytes: cat(ps2.MakeSequence(ps2.KeyShift), tapOf(ps2.KeyD), ps2.BreakSequence(ps2.KeyShift))}},
		{"space", tcell.KeyRune, ' ', 0, Action{Bytes: tapOf(ps2.KeySpace)}},
		{"enter", tcell.KeyEnter, 0, 0, Action{Bytes: tapOf(ps2.KeyEnter)}},
		{"up", tcell.KeyUp, 0, 0, Action{Bytes: tapOf(ps2.KeyUp)}},
		{"ctrl left", tcell.KeyLeft, 0, tcell.ModCtrl, Action{Bytes: cat(ps2.MakeSequence(ps2.KeyCtrl), tapOf(ps2.KeyLeft), ps2.BreakSequence(ps2.KeyCtrl))}},
		{"reset", tcell.KeyRune, 'r', 0, Action{Reset: true}},
		{"switch", tcell.KeyRune, 't', 0, Action{Toggle: true}},
		{"quit", tcell.KeyEscape, 0, 0, Action{Quit: true}},
		{"unmapped", tcell.KeyRune, 'x', 0, Action{}},
		{"function key", tcell.KeyF5, 0, 0, Action{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Translate(tt.key, tt.r, tt.mod))
		})
	}
}

func TestTranslate_DecodesToPlayerEvents(t *testing.T) {
	dec := ps2.NewDecoder()
	evs := dec.FeedAll(Translate(tcell.KeyRune, 'S', tcell.ModShift).Bytes, false)

	require.Len(t, evs, 3)
	assert.Equal(t, ps2.EventModifierPress, evs[0].Kind)
	assert.Equal(t, ps2.EventDirection, evs[1].Kind)
	assert.Equal(t, core.Down, evs[1].Direction)
	assert.Equal(t, core.SideA, evs[1].Side)
	assert.Equal(t, ps2.EventModifierRelease, evs[2].Kind)
}

func TestApp_AppliesActionsToBoard(t *testing.T) {
	fb := render.NewHeadlessFrameBuffer(core.GridWidth, core.GridHeight)
	board, err := system.NewBoard(system.Config{
		Logger:      zerolog.Nop(),
		Renderer:    fb,
		Entropy:     entropy.Fixed(3),
		ManualTimer: true,
	})
	require.NoError(t, err)
	app := NewApp(newScreen(t), board, NewDisplay(nil, fb), 0, zerolog.Nop())

	assert.True(t, app.apply(Translate(tcell.KeyRune, 'a', 0)))
	assert.Equal(t, 3, board.Keyboard.Len())

	assert.True(t, app.apply(Action{Reset: true}))
	assert.NotZero(t, board.Buttons.EdgeCapture()&1)

	assert.True(t, app.apply(Action{Toggle: true}))
	assert.True(t, board.Switch.On())

	assert.False(t, app.apply(Action{Quit: true}))
}

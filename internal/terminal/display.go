// Package terminal is the tcell front end: it scans the board's frame
// buffer out to a terminal and turns key presses into PS/2 scan codes.
package terminal

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/common"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/render"
)

// Terminal layout. A grid cell is CellWidth columns by one row.
const (
	CellWidth = 5
	GridLeft  = 2
	GridTop   = 1
	TextLeft  = 0
	TextTop   = GridTop + core.GridHeight + 1
)

// Display paints the front frame of a frame buffer onto a tcell screen.
// It is the display side of the board: every Refresh is one vsync.
type Display struct {
	screen  tcell.Screen
	fb      *render.FrameBuffer
	lastSeq uint64
	dirty   bool
}

// NewDisplay creates a display for fb on screen
func NewDisplay(screen tcell.Screen, fb *render.FrameBuffer) *Display {
	return &Display{screen: screen, fb: fb, dirty: true}
}

// Invalidate forces the next Refresh to repaint, e.g. after a resize
func (d *Display) Invalidate() { d.dirty = true }

// Refresh performs a pending swap and repaints if the front frame changed.
// It reports whether the screen was repainted.
func (d *Display) Refresh() bool {
	d.fb.Vsync()
	frame := d.fb.Front()
	if frame.Seq == d.lastSeq && !d.dirty {
		return false
	}
	d.lastSeq = frame.Seq
	d.dirty = false

	d.screen.Clear()
	d.paint(frame)
	d.screen.Show()
	return true
}

func (d *Display) paint(frame render.Frame) {
	highlights := make(map[core.Coordinate]core.Side, len(frame.Highlights))
	for _, h := range frame.Highlights {
		highlights[h.At] = h.Side
	}

	for y := 0; y < frame.H; y++ {
		for x := 0; x < frame.W; x++ {
			at := core.Coordinate{X: x, Y: y}
			c := frame.Cell(at)
			if !c.Drawn {
				continue
			}
			style := cellStyle(*c)
			if side, ok := highlights[at]; ok {
				style = style.
					Background(toTcell(common.HighlightColors[side])).
					Foreground(tcell.ColorBlack)
			}
			d.put(GridLeft+x*CellWidth, GridTop+y, CellText(*c), style)
		}
	}

	row := TextTop
	prev := -1
	textStyle := tcell.StyleDefault.Foreground(toTcell(common.TextColor))
	for i, line := range frame.TextLines() {
		if line == "" {
			continue
		}
		if prev >= 0 && i-prev > 1 {
			row++
		}
		d.put(TextLeft, row, line, textStyle)
		row++
		prev = i
	}
}

func (d *Display) put(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		d.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// CellText is the CellWidth-column label of a drawn cell
func CellText(c render.CellDraw) string {
	switch {
	case c.Terrain == core.Mountain:
		return " ^^^ "
	case c.Owner != core.SideNone:
		mark := " "
		switch c.Terrain {
		case core.Base:
			mark = "*"
		case core.Tower:
			mark = "T"
		}
		return fmt.Sprintf("%s%3d ", mark, c.Units)
	case c.Terrain == core.Tower:
		return "  T  "
	default:
		return "  .  "
	}
}

func cellStyle(c render.CellDraw) tcell.Style {
	bg := common.EmptyColor
	switch {
	case c.Terrain == core.Mountain:
		bg = common.MountainColor
	case c.Owner != core.SideNone:
		return tcell.StyleDefault.
			Background(toTcell(common.SideColor(c.Owner))).
			Foreground(toTcell(common.UnitTextColor))
	}
	fg := common.UnitTextColor
	if c.Terrain == core.Tower {
		fg = common.TowerMarkColor
	}
	return tcell.StyleDefault.Background(toTcell(bg)).Foreground(toTcell(fg))
}

func toTcell(c color.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

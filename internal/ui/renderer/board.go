package renderer

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/mitchelldurbincs/GeneralsIRQ/internal/common"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/render"
)

const (
	// LineHeight is the pixel height of one text line under the grid
	LineHeight = 16
	// TextLines is how many text lines fit under the grid
	TextLines = 8

	OwnedTowerShift = 30
)

// BoardRenderer paints a display list onto an ebiten image
type BoardRenderer struct {
	tileSize    int
	defaultFont font.Face
}

// NewBoardRenderer returns a renderer ready to use.
func NewBoardRenderer(tileSize int, f font.Face) *BoardRenderer {
	return &BoardRenderer{tileSize: tileSize, defaultFont: f}
}

// Size is the logical screen size: the grid plus the text area below it
func (br *BoardRenderer) Size() (w, h int) {
	return core.GridWidth * br.tileSize, core.GridHeight*br.tileSize + TextLines*LineHeight
}

// Draw renders frame on the supplied screen.
func (br *BoardRenderer) Draw(screen *ebiten.Image, frame render.Frame) {
	screen.Fill(common.BackgroundColor)

	ts := float32(br.tileSize)
	for y := 0; y < frame.H; y++ {
		for x := 0; x < frame.W; x++ {
			c := frame.Cell(core.Coordinate{X: x, Y: y})
			if !c.Drawn {
				continue
			}
			br.drawCell(screen, float32(x)*ts, float32(y)*ts, *c)
		}
	}

	// grid lines
	for x := 0; x <= frame.W; x++ {
		vector.StrokeLine(screen, float32(x)*ts, 0, float32(x)*ts, float32(frame.H)*ts, 1, common.GridLineColor, false)
	}
	for y := 0; y <= frame.H; y++ {
		vector.StrokeLine(screen, 0, float32(y)*ts, float32(frame.W)*ts, float32(y)*ts, 1, common.GridLineColor, false)
	}

	for _, h := range frame.Highlights {
		clr := boardColor(common.HighlightColors[h.Side])
		vector.StrokeRect(screen, float32(h.At.X)*ts+2, float32(h.At.Y)*ts+2, ts-4, ts-4, 3, clr, false)
	}

	br.drawText(screen, frame.TextLines())
}

func (br *BoardRenderer) drawCell(screen *ebiten.Image, px, py float32, c render.CellDraw) {
	ts := float32(br.tileSize)

	fill := boardColor(common.EmptyColor)
	switch {
	case c.Terrain == core.Mountain:
		fill = boardColor(common.MountainColor)
	case c.Owner != core.SideNone:
		fill = boardColor(common.SideColor(c.Owner))
	}
	vector.DrawFilledRect(screen, px, py, ts, ts, fill, false)

	m := ts / 3
	switch c.Terrain {
	case core.Base:
		vector.DrawFilledRect(screen, px+m, py+m, m, m, common.BaseMarkColor, false)
	case core.Tower:
		mark := common.TowerMarkColor
		if c.Owner != core.SideNone {
			mark = shiftColor(fill, OwnedTowerShift)
		}
		vector.StrokeRect(screen, px+m, py+m, m, m, 2, mark, false)
	}

	if c.Terrain == core.Mountain || br.defaultFont == nil {
		return
	}
	if c.Owner == core.SideNone && c.Units == 0 {
		return
	}
	s := strconv.Itoa(c.Units)
	b := text.BoundString(br.defaultFont, s)
	x := int(px) + (br.tileSize-b.Dx())/2
	y := int(py) + br.tileSize - 4
	text.Draw(screen, s, br.defaultFont, x, y, common.UnitTextColor)
}

// drawText lays the non-empty character rows out under the grid, keeping
// one blank line wherever the rows were apart.
func (br *BoardRenderer) drawText(screen *ebiten.Image, lines []string) {
	if br.defaultFont == nil {
		return
	}
	top := core.GridHeight*br.tileSize + LineHeight - 4
	row, prev := 0, -1
	for i, line := range lines {
		if line == "" {
			continue
		}
		if prev >= 0 && i-prev > 1 {
			row++
		}
		if row >= TextLines {
			return
		}
		text.Draw(screen, line, br.defaultFont, 4, top+row*LineHeight, common.TextColor)
		row++
		prev = i
	}
}

// boardColor snaps c to what the 16-bit pixel buffer can show
func boardColor(c color.Color) color.RGBA {
	p := common.RGB565(c)
	r := uint8(p>>11) << 3
	g := uint8(p>>5&0x3F) << 2
	b := uint8(p&0x1F) << 3
	return color.RGBA{r | r>>5, g | g>>6, b | b>>5, 255}
}

// shiftColor returns a slightly lighter version of c.
func shiftColor(c color.Color, amount int) color.Color {
	r, g, b, a := c.RGBA()
	return color.RGBA{
		uint8(common.Clamp(int(r>>8)+amount, 0, 255)),
		uint8(common.Clamp(int(g>>8)+amount, 0, 255)),
		uint8(common.Clamp(int(b>>8)+amount, 0, 255)),
		uint8(a >> 8),
	}
}

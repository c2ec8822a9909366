package common

import (
	"image/color"

	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
)

// SideColors defines the color scheme for each side
var SideColors = map[core.Side]color.Color{
	core.SideNone: color.RGBA{120, 120, 120, 255}, // Neutral - gray
	core.SideA:    color.RGBA{40, 80, 220, 255},   // Blue
	core.SideB:    color.RGBA{210, 40, 40, 255},   // Red
}

// HighlightColors are the cursor and flash colors of each side
var HighlightColors = map[core.Side]color.Color{
	core.SideA: color.RGBA{0, 255, 255, 255}, // Cyan
	core.SideB: color.RGBA{255, 0, 255, 255}, // Magenta
}

// Tile colors
var (
	EmptyColor      color.Color = color.RGBA{30, 30, 30, 255}
	MountainColor   color.Color = color.RGBA{80, 80, 80, 255}
	TowerMarkColor  color.Color = color.RGBA{230, 200, 60, 255}
	BaseMarkColor   color.Color = color.White
	UnitTextColor   color.Color = color.White
	BackgroundColor color.Color = color.Black
	GridLineColor   color.Color = color.RGBA{50, 50, 50, 255}
	TextColor       color.Color = color.White
)

// SideColor returns the fill color of side, gray for anything unknown
func SideColor(side core.Side) color.Color {
	if c, ok := SideColors[side]; ok {
		return c
	}
	return SideColors[core.SideNone]
}

// SideName is the color name shown to players
func SideName(side core.Side) string {
	switch side {
	case core.SideA:
		return "Blue"
	case core.SideB:
		return "Red"
	default:
		return "Neutral"
	}
}

// RGB565 packs c into a 16-bit 5:6:5 pixel
func RGB565(c color.Color) uint16 {
	r, g, b, _ := c.RGBA()
	return uint16((r>>11)<<11 | (g>>10)<<5 | b>>11)
}

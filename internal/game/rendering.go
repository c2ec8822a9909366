package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
)

// ANSI color codes for the text board
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"

	BgCyan   = "\033[46m"
	BgPurple = "\033[45m"
)

var sideColors = map[core.Side]string{
	core.SideA: ColorBlue,
	core.SideB: ColorRed,
}

var cursorBackgrounds = map[core.Side]string{
	core.SideA: BgCyan,
	core.SideB: BgPurple,
}

// Board returns a text rendering of the snapshot. Cursors are painted as
// background colors when ansi is set; plain output prefixes them with >.
func (s Snapshot) Board(ansi bool) string {
	const (
		EmptySymbol    = "·"
		MountainSymbol = "▲"
	)

	grid := s.Grid
	var sb strings.Builder
	// each cell is 4 visible columns plus up to ~20 bytes of escapes
	sb.Grow((grid.W*24+8)*(grid.H+4) + 200)

	width := 4
	if !ansi {
		width = 5
	}
	sb.WriteString("   ")
	for x := 0; x < grid.W; x++ {
		fmt.Fprintf(&sb, "%*d", width, x)
	}
	sb.WriteString("\n")

	cursorA := s.Cursor(core.SideA).Pos
	cursorB := s.Cursor(core.SideB).Pos

	for y := 0; y < grid.H; y++ {
		fmt.Fprintf(&sb, "%2d ", y)
		for x := 0; x < grid.W; x++ {
			at := core.Coordinate{X: x, Y: y}
			c := grid.At(at)

			var cursor core.Side
			switch at {
			case cursorA:
				cursor = core.SideA
			case cursorB:
				cursor = core.SideB
			}

			text := " " + EmptySymbol + "  "
			switch {
			case c.IsMountain():
				text = " " + MountainSymbol + MountainSymbol + " "
			case c.IsOwned():
				text = fmt.Sprintf("%s%s%2d", c.Owner, terrainMark(c.Terrain), c.DisplayUnits)
			case c.Terrain == core.Tower:
				text = "  T "
			}

			if !ansi {
				if cursor != core.SideNone {
					sb.WriteString(">")
				} else {
					sb.WriteString(" ")
				}
				sb.WriteString(text)
				continue
			}

			if cursor != core.SideNone {
				sb.WriteString(cursorBackgrounds[cursor])
			}
			sb.WriteString(cellColor(c))
			sb.WriteString(text)
			sb.WriteString(ColorReset)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "tick %d/%d", s.CalculatedTick, s.TrueTick)
	if s.Ended {
		fmt.Fprintf(&sb, "  winner %s", s.Winner)
	}
	sb.WriteString("\n")
	sb.WriteString("A/B=owner *=base T=tower ")
	sb.WriteString(MountainSymbol)
	sb.WriteString("=mountain\n")

	return sb.String()
}

func terrainMark(t core.Terrain) string {
	switch t {
	case core.Base:
		return "*"
	case core.Tower:
		return "T"
	default:
		return " "
	}
}

func cellColor(c *core.Cell) string {
	if c.IsMountain() {
		return ColorGray
	}
	if col, ok := sideColors[c.Owner]; ok {
		return col
	}
	if c.Terrain == core.Tower {
		return ColorYellow
	}
	return ColorWhite
}

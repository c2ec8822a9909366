package common

import (
	"image/color"
	"testing"

	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
	"github.com/stretchr/testify/assert"
)

func TestSideColors(t *testing.T) {
	neutral := SideColor(core.SideNone).(color.RGBA)
	assert.True(t, neutral.R == neutral.G && neutral.G == neutral.B, "neutral is gray")

	blue := SideColor(core.SideA).(color.RGBA)
	assert.Greater(t, blue.B, blue.R)
	assert.Greater(t, blue.B, blue.G)

	red := SideColor(core.SideB).(color.RGBA)
	assert.Greater(t, red.R, red.G)
	assert.Greater(t, red.R, red.B)

	assert.Equal(t, SideColor(core.SideNone), SideColor(core.Side(7)))
}

func TestSideName(t *testing.T) {
	assert.Equal(t, "Blue", SideName(core.SideA))
	assert.Equal(t, "Red", SideName(core.SideB))
	assert.Equal(t, "Neutral", SideName(core.SideNone))
}

func TestRGB565(t *testing.T) {
	tests := []struct {
		name     string
		c        color.Color
		expected uint16
	}{
		{"white", color.White, 0xFFFF},
		{"black", color.Black, 0x0000},
		{"red", color.RGBA{255, 0, 0, 255}, 0xF800},
		{"green", color.RGBA{0, 255, 0, 255}, 0x07E0},
		{"blue", color.RGBA{0, 0, 255, 255}, 0x001F},
		{"cyan", HighlightColors[core.SideA], 0x07FF},
		{"magenta", HighlightColors[core.SideB], 0xF81F},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RGB565(tt.c))
		})
	}
}

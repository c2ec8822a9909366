package game

import (
	"strings"
	"testing"

	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotBoard_Plain(t *testing.T) {
	e, _ := newDuelEngine(t)
	gs := e.State()
	gs.Grid.At(at(1, 1)).DisplayUnits = 12
	gs.Grid.At(at(3, 0)).Terrain = core.Mountain
	gs.Grid.At(at(4, 0)).Terrain = core.Tower

	board := e.Snapshot().Board(false)
	lines := strings.Split(board, "\n")
	require.Greater(t, len(lines), core.GridHeight+1)

	assert.NotContains(t, board, "\033[")
	assert.Contains(t, lines[2], ">A*12", "cursor A sits on its base")
	assert.Contains(t, lines[11], ">B* 1")
	assert.Contains(t, lines[1], "▲▲")
	assert.Contains(t, lines[1], "  T ")
	assert.Contains(t, board, "tick 0/0")
	assert.NotContains(t, board, "winner")
}

func TestSnapshotBoard_ANSIAndWinner(t *testing.T) {
	e, _ := newDuelEngine(t)
	captureBaseB(t, e)

	board := e.Snapshot().Board(true)
	assert.Contains(t, board, BgCyan)
	assert.Contains(t, board, ColorBlue)
	assert.Contains(t, board, "winner A")
}

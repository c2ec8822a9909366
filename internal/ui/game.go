// Package ui is the ebiten front end. Update is the keyboard and button
// side of the board, Draw is its display: every Draw scans out the front
// frame and performs the pending buffer swap.
package ui

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/mitchelldurbincs/GeneralsIRQ/internal/render"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/system"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/ui/input"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/ui/renderer"
	"github.com/rs/zerolog"
)

// Game drives a board from ebiten
type Game struct {
	board         *system.Board
	fb            *render.FrameBuffer
	keyboard      *input.Keyboard
	boardRenderer *renderer.BoardRenderer

	cancel   context.CancelFunc
	boardErr chan error
	logger   zerolog.Logger
}

// NewGame creates the front end. The board must draw into fb.
func NewGame(board *system.Board, fb *render.FrameBuffer, tileSize int, logger zerolog.Logger) *Game {
	return &Game{
		board:         board,
		fb:            fb,
		keyboard:      input.NewKeyboard(),
		boardRenderer: renderer.NewBoardRenderer(tileSize, basicfont.Face7x13),
		boardErr:      make(chan error, 1),
		logger:        logger.With().Str("component", "ui").Logger(),
	}
}

// Start runs the board on its own goroutine until ctx ends or the
// window closes.
func (g *Game) Start(ctx context.Context) {
	ctx, g.cancel = context.WithCancel(ctx)
	go func() { g.boardErr <- g.board.Run(ctx) }()
}

// Stop ends the board
func (g *Game) Stop() {
	if g.cancel != nil {
		g.cancel()
	}
}

// Update feeds the frame's key changes to the board.
func (g *Game) Update() error {
	select {
	case err := <-g.boardErr:
		if err != nil {
			return err
		}
		return ebiten.Termination
	default:
	}

	in := g.keyboard.Poll()
	if in.Quit {
		g.Stop()
		return ebiten.Termination
	}
	if len(in.Bytes) > 0 {
		g.board.Keyboard.Push(in.Bytes...)
	}
	if in.Reset {
		g.board.Buttons.Press(system.ResetButton)
	}
	if in.Toggle {
		g.board.Switch.Toggle()
	}
	if in.Copy {
		g.copyBoard()
	}
	return nil
}

func (g *Game) copyBoard() {
	dump := g.board.Engine().Snapshot().Board(false)
	if err := clipboard.WriteAll(dump); err != nil {
		g.logger.Warn().Err(err).Msg("Failed to copy board to clipboard")
		return
	}
	g.logger.Info().Int("bytes", len(dump)).Msg("Board copied to clipboard")
}

// Draw renders the game screen.
func (g *Game) Draw(screen *ebiten.Image) {
	g.fb.Vsync()
	g.boardRenderer.Draw(screen, g.fb.Front())
}

// Layout defines the Ebitengine screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.boardRenderer.Size()
}

// IsTermination reports whether err is the normal end of the ebiten loop
func IsTermination(err error) bool {
	return err == nil || errors.Is(err, ebiten.Termination)
}

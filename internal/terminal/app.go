package terminal

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/system"
	"github.com/rs/zerolog"
)

// App runs a board behind a tcell screen
type App struct {
	screen    tcell.Screen
	board     *system.Board
	display   *Display
	frameRate int
	logger    zerolog.Logger
}

// NewApp creates a terminal front end. The board must draw into the
// display's frame buffer.
func NewApp(screen tcell.Screen, board *system.Board, display *Display, frameRate int, logger zerolog.Logger) *App {
	if frameRate <= 0 {
		frameRate = 60
	}
	return &App{
		screen:    screen,
		board:     board,
		display:   display,
		frameRate: frameRate,
		logger:    logger.With().Str("component", "terminal").Logger(),
	}
}

// Run starts the board and drives the display until the player quits,
// ctx ends or the board halts.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	boardErr := make(chan error, 1)
	go func() { boardErr <- a.board.Run(ctx) }()

	ticker := time.NewTicker(time.Second / time.Duration(a.frameRate))
	defer ticker.Stop()

	for {
		select {
		case ev := <-eventChan:
			if !a.handleEvent(ev) {
				a.logger.Info().Msg("Quit requested")
				cancel()
				return <-boardErr
			}
		case <-ticker.C:
			a.display.Refresh()
		case err := <-boardErr:
			a.display.Refresh()
			return err
		}
	}
}

func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.apply(Translate(ev.Key(), ev.Rune(), ev.Modifiers()))
	case *tcell.EventResize:
		a.screen.Sync()
		a.display.Invalidate()
	}
	return true
}

// apply performs an action on the board and reports whether to keep running
func (a *App) apply(act Action) bool {
	if act.Quit {
		return false
	}
	if len(act.Bytes) > 0 {
		a.board.Keyboard.Push(act.Bytes...)
	}
	if act.Reset {
		a.board.Buttons.Press(system.ResetButton)
	}
	if act.Toggle {
		a.board.Switch.Toggle()
	}
	return true
}

// Package system wires the devices, the interrupt controller, the territory
// engine and the renderer into one board and runs its main loop.
package system

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/mitchelldurbincs/GeneralsIRQ/internal/device"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/entropy"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/events"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/input/ps2"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/irq"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/render"
	"github.com/rs/zerolog"
)

// Interrupt priorities. The firmware leaves every source at 0, so ties are
// broken by id: timer, then button, then keyboard.
const (
	PriorityTimer    uint8 = 0
	PriorityButton   uint8 = 0
	PriorityKeyboard uint8 = 0
)

// ResetButton is the push-button that restarts the session
const ResetButton = 0

// buttonIRQMask enables interrupts for button 0 only; buttonAckMask clears
// all three edge bits.
const (
	buttonIRQMask uint32 = 0b001
	buttonAckMask uint32 = 0b111
)

// ErrHalted is returned by Step once the interrupt controller has halted
var ErrHalted = errors.New("board halted")

// Config holds the parts and settings of a board
type Config struct {
	Logger    zerolog.Logger
	Publisher events.Publisher
	Renderer  render.Renderer
	// Entropy is asked for a seed at every setup. Nil means the player
	// toggles the board's slide switch.
	Entropy entropy.Source

	TimerPeriod           time.Duration
	KeyboardFIFO          int
	MaxDispatchPerService int
	// ManualTimer leaves the timer stopped; ticks come from Timer.Expire
	ManualTimer bool
}

// Board is the simulated machine
type Board struct {
	Timer    *device.Timer
	Keyboard *device.PS2Port
	Buttons  *device.Buttons
	Switch   *device.Switch

	irq      *irq.Controller
	engine   *game.Engine
	decoder  *ps2.Decoder
	renderer render.Renderer
	entropy  entropy.Source

	manualTimer    bool
	resetRequested atomic.Bool
	iterations     atomic.Uint64
	sessions       atomic.Uint64

	logger zerolog.Logger
}

// NewBoard builds the devices and registers their interrupt handlers
func NewBoard(cfg Config) (*Board, error) {
	if cfg.Renderer == nil {
		return nil, errors.New("board needs a renderer")
	}
	if cfg.TimerPeriod <= 0 {
		cfg.TimerPeriod = 250 * time.Millisecond
	}

	b := &Board{
		Timer:       device.NewTimer(cfg.TimerPeriod, cfg.Logger),
		Keyboard:    device.NewPS2Port(cfg.KeyboardFIFO, cfg.Logger),
		Buttons:     device.NewButtons(buttonIRQMask),
		Switch:      device.NewSwitch(),
		irq:         irq.NewController(cfg.Logger),
		decoder:     ps2.NewDecoder(),
		renderer:    cfg.Renderer,
		entropy:     cfg.Entropy,
		manualTimer: cfg.ManualTimer,
		logger:      cfg.Logger.With().Str("component", "board").Logger(),
	}
	if b.entropy == nil {
		b.entropy = entropy.NewSwitchSource(b.Switch, cfg.Logger)
	}
	b.engine = game.NewEngine(game.GameConfig{
		Logger:    cfg.Logger,
		Publisher: cfg.Publisher,
	})
	if cfg.MaxDispatchPerService > 0 {
		b.irq.SetMaxDispatchPerService(cfg.MaxDispatchPerService)
	}

	sources := []struct {
		id       int
		name     string
		priority uint8
		line     irq.Line
		handler  irq.Handler
	}{
		{irq.IDKeyboard, "keyboard", PriorityKeyboard, b.Keyboard, b.keyboardISR},
		{irq.IDTimer, "timer", PriorityTimer, b.Timer, b.timerISR},
		{irq.IDButton, "button", PriorityButton, b.Buttons, b.buttonISR},
	}
	for _, s := range sources {
		if err := b.irq.Register(s.id, s.name, s.priority, s.line, s.handler); err != nil {
			return nil, fmt.Errorf("register %s interrupt: %w", s.name, err)
		}
	}

	return b, nil
}

// Boot configures the interrupt controller and sets up the first session
func (b *Board) Boot(ctx context.Context) error {
	b.irq.Configure()
	return b.setup(ctx)
}

// setup starts a new session. The timer is held while the seed is
// collected so the prompt does not count as game time.
func (b *Board) setup(ctx context.Context) error {
	b.Timer.Stop()
	b.Timer.Ack()
	b.Keyboard.Clear()
	b.decoder.Reset()

	seed, err := b.collectSeed(ctx)
	if err != nil {
		return err
	}
	if err := b.engine.Setup(seed); err != nil {
		return fmt.Errorf("setup session: %w", err)
	}
	b.sessions.Add(1)

	if !b.manualTimer {
		b.Timer.Start(ctx)
	}
	return nil
}

func (b *Board) collectSeed(ctx context.Context) (int64, error) {
	if src, interactive := b.entropy.(*entropy.SwitchSource); interactive {
		src.Arm()
		render.DrawPrompt(b.renderer)
		b.renderer.SwapBuffers()
		if err := b.renderer.WaitForVsync(ctx); err != nil {
			return 0, err
		}
	}

	seed, err := b.entropy.Seed(ctx)
	if err != nil {
		return 0, fmt.Errorf("collect seed: %w", err)
	}
	return seed, nil
}

// Step runs one main-loop iteration: reset check, interrupts, pending move,
// tick, interrupts again, animation and one frame.
func (b *Board) Step(ctx context.Context) error {
	if b.irq.Halted() {
		return ErrHalted
	}
	if b.resetRequested.Swap(false) {
		b.logger.Info().Msg("Reset requested")
		if err := b.setup(ctx); err != nil {
			return err
		}
	}

	if err := b.service(); err != nil {
		return err
	}
	b.engine.ApplyPendingMove()
	b.engine.AdvanceTick()
	if err := b.service(); err != nil {
		return err
	}
	b.engine.Animate()

	render.DrawScene(b.renderer, b.scene())
	b.renderer.SwapBuffers()
	if err := b.renderer.WaitForVsync(ctx); err != nil {
		return err
	}

	b.iterations.Add(1)
	return nil
}

// Run boots the board and loops until ctx is done or the board halts.
// A cancelled context is a clean shutdown and returns nil.
func (b *Board) Run(ctx context.Context) error {
	defer b.Timer.Stop()

	if err := b.Boot(ctx); err != nil {
		return ignoreCancel(err)
	}
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if err := b.Step(ctx); err != nil {
			return ignoreCancel(err)
		}
	}
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func (b *Board) service() error {
	return b.guard(func() { b.irq.Service() })
}

// guard runs fn and turns a controller halt into an error
func (b *Board) guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			halt, ok := r.(*irq.HaltError)
			if !ok {
				panic(r)
			}
			b.logger.Error().Err(halt).Msg("Board halted")
			err = halt
		}
	}()
	fn()
	return nil
}

func (b *Board) scene() render.Scene {
	gs := b.engine.State()
	s := render.Scene{
		Grid:    gs.Grid,
		Cursors: make(map[core.Side]core.Coordinate, 2),
		Targets: make(map[core.Side][]core.Coordinate, 2),
		Tick:    b.engine.Ticks().CalculatedTick(),
		Winner:  gs.Winner,
	}
	for _, side := range []core.Side{core.SideA, core.SideB} {
		s.Cursors[side] = gs.Cursor(side).Pos
		if targets := gs.FlashNeighbors(side); len(targets) > 0 {
			s.Targets[side] = targets
		}
	}
	return s
}

// PressKey feeds the make code of key into the keyboard port
func (b *Board) PressKey(key ps2.Key) {
	b.Keyboard.Push(ps2.MakeSequence(key)...)
}

// ReleaseKey feeds the break code of key into the keyboard port
func (b *Board) ReleaseKey(key ps2.Key) {
	b.Keyboard.Push(ps2.BreakSequence(key)...)
}

// TapKey presses and releases key
func (b *Board) TapKey(key ps2.Key) {
	b.PressKey(key)
	b.ReleaseKey(key)
}

// Engine returns the territory engine
func (b *Board) Engine() *game.Engine { return b.engine }

// Controller returns the interrupt controller
func (b *Board) Controller() *irq.Controller { return b.irq }

// Stats is a snapshot of board counters
type Stats struct {
	Iterations       uint64
	Sessions         uint64
	TrueTick         int
	CalculatedTick   int
	Lag              int
	Interrupts       irq.Stats
	MovesPosted      uint64
	MovesOverwritten uint64
	KeyboardDropped  uint64
	TimerOverruns    uint64
	PendingKeyboard  int
	ResetPending     bool
}

// Stats returns the current board counters. Safe from any goroutine.
func (b *Board) Stats() Stats {
	ticks := b.engine.Ticks()
	posted, overwritten := b.engine.Mailbox().Counts()
	return Stats{
		Iterations:       b.iterations.Load(),
		Sessions:         b.sessions.Load(),
		TrueTick:         ticks.TrueTick(),
		CalculatedTick:   ticks.CalculatedTick(),
		Lag:              ticks.Lag(),
		Interrupts:       b.irq.Stats(),
		MovesPosted:      posted,
		MovesOverwritten: overwritten,
		KeyboardDropped:  b.Keyboard.Dropped(),
		TimerOverruns:    b.Timer.Overruns(),
		PendingKeyboard:  b.Keyboard.Len(),
		ResetPending:     b.resetRequested.Load(),
	}
}

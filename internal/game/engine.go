package game

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/events"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/mapgen"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/states"
	"github.com/rs/zerolog"
)

// GameConfig holds the collaborators of an Engine
type GameConfig struct {
	Logger    zerolog.Logger
	Publisher events.Publisher
	MapConfig mapgen.MapConfig
	// ProductionInterval defaults to core.ProductionInterval
	ProductionInterval int
}

// Engine owns one territory session: the grid, both cursors, the tick
// counters and the pending move. Every mutating method runs on the CPU
// goroutine; Snapshot may be called from anywhere.
type Engine struct {
	mu sync.RWMutex

	gs         *GameState
	ticks      *TickEngine
	mailbox    *Mailbox
	production *ProductionManager
	machine    *states.StateMachine
	gctx       *states.GameContext

	mapConfig mapgen.MapConfig
	publisher events.Publisher
	base      zerolog.Logger
	logger    zerolog.Logger
}

// NewEngine creates an engine with no session. Call Setup before use.
func NewEngine(cfg GameConfig) *Engine {
	if cfg.Publisher == nil {
		cfg.Publisher = events.NopPublisher{}
	}
	if cfg.MapConfig.Width == 0 {
		cfg.MapConfig = mapgen.DefaultMapConfig()
	}

	gctx := states.NewGameContext("", cfg.Logger)

	return &Engine{
		gs:         NewGameState(core.NewGrid(cfg.MapConfig.Width, cfg.MapConfig.Height)),
		ticks:      NewTickEngine(cfg.ProductionInterval),
		mailbox:    NewMailbox(),
		production: NewProductionManager(cfg.Publisher, cfg.Logger),
		machine:    states.NewStateMachine(gctx, cfg.Publisher),
		gctx:       gctx,
		mapConfig:  cfg.MapConfig,
		publisher:  cfg.Publisher,
		base:       cfg.Logger,
		logger:     cfg.Logger.With().Str("component", "Engine").Logger(),
	}
}

// Setup starts a new session from seed. Everything from the previous
// session is discarded, including any pending move.
func (e *Engine) Setup(seed int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	prevID := e.gs.GameID
	prevTick := e.ticks.CalculatedTick()
	gameID := uuid.NewString()

	if err := e.machine.Restart("reset"); err != nil {
		return fmt.Errorf("restart state machine: %w", err)
	}

	gen := mapgen.NewGenerator(e.mapConfig, rand.New(rand.NewSource(seed)))
	grid, placement := gen.GenerateMap()

	e.gs = NewGameState(grid)
	e.gs.GameID = gameID
	e.gs.Seed = seed
	e.gs.Cursor(core.SideA).Pos = placement.BaseA
	e.gs.Cursor(core.SideB).Pos = placement.BaseB

	e.ticks.Reset()
	e.mailbox.Clear()

	e.gctx.Rebind(gameID, e.base)
	e.gctx.Seed = seed
	if err := e.machine.TransitionTo(states.PhaseActive, "setup complete"); err != nil {
		return fmt.Errorf("activate session: %w", err)
	}

	if prevID != "" {
		e.publisher.Publish(events.NewGameResetEvent(prevID, prevTick, gameID))
	}
	e.publisher.Publish(events.NewGameStartedEvent(gameID, seed, placement.BaseA, placement.BaseB, grid.W, grid.H))

	e.logger.Info().
		Str("game_id", gameID).
		Int64("seed", seed).
		Stringer("base_a", placement.BaseA).
		Stringer("base_b", placement.BaseB).
		Int("base_attempts", placement.Attempts).
		Bool("base_fallback", placement.Fallback).
		Msg("Game session started")

	return nil
}

// ToggleSelect flips the selecting flag of side
func (e *Engine) ToggleSelect(side core.Side) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c := e.gs.Cursor(side)
	if c == nil || e.gs.Ended {
		return
	}
	c.Selecting = !c.Selecting

	e.publisher.Publish(events.NewSelectionToggledEvent(e.gs.GameID, e.ticks.CalculatedTick(), side, c.Selecting, c.Pos))
}

// SetModifier records whether the fast-move modifier of side is held
func (e *Engine) SetModifier(side core.Side, held bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if c := e.gs.Cursor(side); c != nil {
		c.FastMove = held
	}
}

// Direction handles a decoded direction key. A selecting player posts a
// move order from the cursor cell, anyone else moves the cursor one cell.
func (e *Engine) Direction(side core.Side, dir core.Direction) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c := e.gs.Cursor(side)
	if c == nil || dir == core.DirNone || e.gs.Ended {
		return
	}
	tick := e.ticks.CalculatedTick()

	if c.Selecting {
		order := core.MoveOrder{Side: side, From: c.Pos, Direction: dir, Half: c.FastMove}
		overwrote := e.mailbox.Post(order)
		if overwrote {
			e.logger.Debug().Stringer("side", side).Msg("Pending move overwritten before it was applied")
		}
		e.publisher.Publish(events.NewMoveQueuedEvent(e.gs.GameID, tick, order, overwrote))
		return
	}

	from := c.Pos
	c.Pos = from.Move(dir).Clamp(e.gs.Grid.W, e.gs.Grid.H)
	if c.Pos != from {
		e.publisher.Publish(events.NewCursorMovedEvent(e.gs.GameID, tick, side, from, c.Pos))
	}
}

// OnHardwareTick counts one timer expiry
func (e *Engine) OnHardwareTick() {
	e.ticks.OnHardwareTick()
}

// ApplyPendingMove drains the mailbox and applies the order found there.
// It returns nil when there was nothing to apply or the order was illegal.
func (e *Engine) ApplyPendingMove() *core.MoveResult {
	order, ok := e.mailbox.Take()
	if !ok {
		return nil
	}
	return e.ApplyMove(order)
}

// ApplyMove resolves order against the grid. Illegal orders are no-ops:
// nil is returned and the reason is only logged at debug level.
func (e *Engine) ApplyMove(order core.MoveOrder) *core.MoveResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	res, err := e.applyMove(order)
	if err != nil {
		e.publisher.Publish(events.NewMoveRejectedEvent(e.gs.GameID, e.ticks.CalculatedTick(), order, err))
		e.logger.Debug().Err(core.WrapMoveError(err, order)).Msg("Move ignored")
		return nil
	}
	return res
}

func (e *Engine) applyMove(order core.MoveOrder) (*core.MoveResult, error) {
	if e.gs.Ended {
		return nil, core.ErrGameOver
	}
	c := e.gs.Cursor(order.Side)
	if c == nil {
		return nil, core.ErrInvalidSide
	}
	if !c.Selecting {
		return nil, core.ErrNotSelecting
	}

	res, err := core.ApplyMove(e.gs.Grid, order)
	if err != nil {
		return nil, err
	}

	c.Selecting = false
	c.Pos = res.To

	tick := e.ticks.CalculatedTick()
	e.publisher.Publish(events.NewMoveExecutedEvent(e.gs.GameID, tick, order, res))
	if res.Outcome == core.OutcomeAttacked || res.Outcome == core.OutcomeConquered {
		e.publisher.Publish(events.NewCombatResolvedEvent(e.gs.GameID, tick, order.Side, res, e.gs.Grid.At(res.To)))
	}

	if res.BaseCaptured {
		e.endGame(order.Side, res.To, tick)
	}
	return res, nil
}

func (e *Engine) endGame(winner core.Side, at core.Coordinate, tick int) {
	e.gs.Ended = true
	e.gs.Winner = winner
	e.gctx.Winner = winner

	if err := e.machine.TransitionTo(states.PhaseEnded, "base captured"); err != nil {
		e.logger.Error().Err(err).Msg("Failed to enter ended phase")
	}

	e.publisher.Publish(events.NewBaseCapturedEvent(e.gs.GameID, tick, winner, winner.Opponent(), at))
	e.publisher.Publish(events.NewGameEndedEvent(e.gs.GameID, tick, winner))

	e.logger.Info().
		Str("game_id", e.gs.GameID).
		Stringer("winner", winner).
		Stringer("base", at).
		Int("tick", tick).
		Msg("Base captured, game over")
}

// AdvanceTick computes at most one simulation tick and applies production
// when it is due
func (e *Engine) AdvanceTick() (advanced, produced bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	advanced, produced = e.ticks.Advance(e.gs.Ended)
	if !advanced {
		return false, false
	}
	tick := e.ticks.CalculatedTick()
	e.publisher.Publish(events.NewTickAdvancedEvent(e.gs.GameID, tick, e.ticks.TrueTick()))
	if produced {
		e.production.Apply(e.gs, tick)
	}
	return advanced, produced
}

// Animate moves every displayed unit count one step toward its real value
func (e *Engine) Animate() {
	e.mu.Lock()
	e.gs.Grid.AnimateDisplay()
	e.mu.Unlock()
}

// State exposes the live session. Only the CPU goroutine may use it.
func (e *Engine) State() *GameState {
	return e.gs
}

// Snapshot returns a deep copy of the session
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s := e.gs.snapshot()
	s.TrueTick = e.ticks.TrueTick()
	s.CalculatedTick = e.ticks.CalculatedTick()
	return s
}

// Ticks returns the tick engine
func (e *Engine) Ticks() *TickEngine { return e.ticks }

// Mailbox returns the pending move mailbox
func (e *Engine) Mailbox() *Mailbox { return e.mailbox }

// Phase returns the lifecycle phase of the session
func (e *Engine) Phase() states.GamePhase { return e.machine.CurrentPhase() }

// History returns the phase transitions since the engine was created
func (e *Engine) History() []states.Transition { return e.machine.GetHistory() }

// IsEnded reports whether a Base has fallen
func (e *Engine) IsEnded() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.gs.Ended
}

// Winner returns the winning side, SideNone while the game is running
func (e *Engine) Winner() core.Side {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.gs.Winner
}

package events

import (
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted       = "game.started"
	TypeGameEnded         = "game.ended"
	TypeGameReset         = "game.reset"
	TypeTickAdvanced      = "tick.advanced"
	TypeProductionApplied = "production.applied"
	TypeSelectionToggled  = "selection.toggled"
	TypeCursorMoved       = "cursor.moved"
	TypeMoveQueued        = "move.queued"
	TypeMoveExecuted      = "move.executed"
	TypeMoveRejected      = "move.rejected"
	TypeCombatResolved    = "combat.resolved"
	TypeBaseCaptured      = "base.captured"
	TypeStateTransition   = "state.transition"
)

// GameStartedEvent is published when setup has produced a fresh map
type GameStartedEvent struct {
	BaseEvent
	Seed   int64
	BaseA  core.Coordinate
	BaseB  core.Coordinate
	Width  int
	Height int
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, seed int64, baseA, baseB core.Coordinate, width, height int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent: newBase(TypeGameStarted, gameID, 0),
		Seed:      seed,
		BaseA:     baseA,
		BaseB:     baseB,
		Width:     width,
		Height:    height,
	}
}

// GameEndedEvent is published once, when a Base falls in combat
type GameEndedEvent struct {
	BaseEvent
	Winner core.Side
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, tick int, winner core.Side) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID, tick),
		Winner:    winner,
	}
}

// GameResetEvent is published when the reset button tears a session down
type GameResetEvent struct {
	BaseEvent
	NextGameID string
}

// NewGameResetEvent creates a new GameResetEvent
func NewGameResetEvent(gameID string, tick int, next string) *GameResetEvent {
	return &GameResetEvent{
		BaseEvent:  newBase(TypeGameReset, gameID, tick),
		NextGameID: next,
	}
}

// TickAdvancedEvent is published for every simulation tick computed
type TickAdvancedEvent struct {
	BaseEvent
	TrueTick int
	Lag      int
}

// NewTickAdvancedEvent creates a new TickAdvancedEvent
func NewTickAdvancedEvent(gameID string, tick, trueTick int) *TickAdvancedEvent {
	return &TickAdvancedEvent{
		BaseEvent: newBase(TypeTickAdvanced, gameID, tick),
		TrueTick:  trueTick,
		Lag:       trueTick - tick,
	}
}

// ProductionAppliedEvent is published on every production tick
type ProductionAppliedEvent struct {
	BaseEvent
	CellsGrown int
	UnitsA     int
	UnitsB     int
}

// NewProductionAppliedEvent creates a new ProductionAppliedEvent
func NewProductionAppliedEvent(gameID string, tick, grown, unitsA, unitsB int) *ProductionAppliedEvent {
	return &ProductionAppliedEvent{
		BaseEvent:  newBase(TypeProductionApplied, gameID, tick),
		CellsGrown: grown,
		UnitsA:     unitsA,
		UnitsB:     unitsB,
	}
}

// SelectionToggledEvent is published when a player enters or leaves selecting mode
type SelectionToggledEvent struct {
	BaseEvent
	Side      core.Side
	Selecting bool
	At        core.Coordinate
}

// NewSelectionToggledEvent creates a new SelectionToggledEvent
func NewSelectionToggledEvent(gameID string, tick int, side core.Side, selecting bool, at core.Coordinate) *SelectionToggledEvent {
	return &SelectionToggledEvent{
		BaseEvent: newBase(TypeSelectionToggled, gameID, tick),
		Side:      side,
		Selecting: selecting,
		At:        at,
	}
}

// CursorMovedEvent is published when a cursor browses to another cell
type CursorMovedEvent struct {
	BaseEvent
	Side core.Side
	From core.Coordinate
	To   core.Coordinate
}

// NewCursorMovedEvent creates a new CursorMovedEvent
func NewCursorMovedEvent(gameID string, tick int, side core.Side, from, to core.Coordinate) *CursorMovedEvent {
	return &CursorMovedEvent{
		BaseEvent: newBase(TypeCursorMoved, gameID, tick),
		Side:      side,
		From:      from,
		To:        to,
	}
}

// MoveQueuedEvent is published when a move order is posted to the mailbox
type MoveQueuedEvent struct {
	BaseEvent
	Order       core.MoveOrder
	Overwritten bool
}

// NewMoveQueuedEvent creates a new MoveQueuedEvent
func NewMoveQueuedEvent(gameID string, tick int, order core.MoveOrder, overwritten bool) *MoveQueuedEvent {
	return &MoveQueuedEvent{
		BaseEvent:   newBase(TypeMoveQueued, gameID, tick),
		Order:       order,
		Overwritten: overwritten,
	}
}

// MoveExecutedEvent is published for every move that changed the grid
type MoveExecutedEvent struct {
	BaseEvent
	Side        core.Side
	From        core.Coordinate
	To          core.Coordinate
	Transferred int
	Returned    int
	Half        bool
	Outcome     core.Outcome
}

// NewMoveExecutedEvent creates a new MoveExecutedEvent
func NewMoveExecutedEvent(gameID string, tick int, order core.MoveOrder, res *core.MoveResult) *MoveExecutedEvent {
	return &MoveExecutedEvent{
		BaseEvent:   newBase(TypeMoveExecuted, gameID, tick),
		Side:        order.Side,
		From:        res.From,
		To:          res.To,
		Transferred: res.Transferred,
		Returned:    res.Returned,
		Half:        order.Half,
		Outcome:     res.Outcome,
	}
}

// MoveRejectedEvent is published when an order is dropped as a no-op
type MoveRejectedEvent struct {
	BaseEvent
	Order  core.MoveOrder
	Reason string
}

// NewMoveRejectedEvent creates a new MoveRejectedEvent
func NewMoveRejectedEvent(gameID string, tick int, order core.MoveOrder, reason error) *MoveRejectedEvent {
	return &MoveRejectedEvent{
		BaseEvent: newBase(TypeMoveRejected, gameID, tick),
		Order:     order,
		Reason:    reason.Error(),
	}
}

// CombatResolvedEvent is published when a move lands on an enemy cell
type CombatResolvedEvent struct {
	BaseEvent
	Attacker       core.Side
	Defender       core.Side
	Location       core.Coordinate
	AttackerUnits  int
	DefenderUnits  int
	RemainingUnits int
	NewOwner       core.Side
}

// NewCombatResolvedEvent creates a new CombatResolvedEvent
func NewCombatResolvedEvent(gameID string, tick int, attacker core.Side, res *core.MoveResult, cell *core.Cell) *CombatResolvedEvent {
	return &CombatResolvedEvent{
		BaseEvent:      newBase(TypeCombatResolved, gameID, tick),
		Attacker:       attacker,
		Defender:       res.PreviousOwner,
		Location:       res.To,
		AttackerUnits:  res.AttackerUnits,
		DefenderUnits:  res.DefenderUnits,
		RemainingUnits: cell.Units,
		NewOwner:       cell.Owner,
	}
}

// BaseCapturedEvent is published when a Base flips in combat
type BaseCapturedEvent struct {
	BaseEvent
	Capturer core.Side
	Loser    core.Side
	Location core.Coordinate
}

// NewBaseCapturedEvent creates a new BaseCapturedEvent
func NewBaseCapturedEvent(gameID string, tick int, capturer, loser core.Side, at core.Coordinate) *BaseCapturedEvent {
	return &BaseCapturedEvent{
		BaseEvent: newBase(TypeBaseCaptured, gameID, tick),
		Capturer:  capturer,
		Loser:     loser,
		Location:  at,
	}
}

// StateTransitionEvent is published by the phase state machine
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID, 0),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}

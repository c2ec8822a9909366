package states

import (
	"fmt"
	"time"
)

// InitializingState covers map generation
type InitializingState struct{}

func NewInitializingState() State {
	return &InitializingState{}
}

func (s *InitializingState) Phase() GamePhase {
	return PhaseInitializing
}

func (s *InitializingState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Entering Initializing state")
	return nil
}

func (s *InitializingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Int64("seed", ctx.Seed).Msg("Map ready")
	return nil
}

func (s *InitializingState) Validate(ctx *GameContext) error {
	return nil
}

// ActiveState is live play
type ActiveState struct{}

func NewActiveState() State {
	return &ActiveState{}
}

func (s *ActiveState) Phase() GamePhase {
	return PhaseActive
}

func (s *ActiveState) Enter(ctx *GameContext) error {
	ctx.StartTime = time.Now()
	ctx.Logger.Info().Msg("Game active")
	return nil
}

func (s *ActiveState) Exit(ctx *GameContext) error {
	return nil
}

func (s *ActiveState) Validate(ctx *GameContext) error {
	if ctx.GameID == "" {
		return fmt.Errorf("cannot start a session without a game id")
	}
	return nil
}

// EndedState freezes the board after a Base falls
type EndedState struct{}

func NewEndedState() State {
	return &EndedState{}
}

func (s *EndedState) Phase() GamePhase {
	return PhaseEnded
}

func (s *EndedState) Enter(ctx *GameContext) error {
	ctx.EndTime = time.Now()
	ctx.Logger.Info().
		Stringer("winner", ctx.Winner).
		Dur("duration", ctx.GetElapsedTime()).
		Msg("Game ended")
	return nil
}

func (s *EndedState) Exit(ctx *GameContext) error {
	return nil
}

func (s *EndedState) Validate(ctx *GameContext) error {
	if !ctx.Winner.Valid() {
		return fmt.Errorf("ended session needs a winner, got %s", ctx.Winner)
	}
	return nil
}

// ResetState tears the session down before re-initialising
type ResetState struct{}

func NewResetState() State {
	return &ResetState{}
}

func (s *ResetState) Phase() GamePhase {
	return PhaseReset
}

func (s *ResetState) Enter(ctx *GameContext) error {
	ctx.Resets++
	ctx.Logger.Info().Int("resets", ctx.Resets).Msg("Reset requested")
	return nil
}

func (s *ResetState) Exit(ctx *GameContext) error {
	return nil
}

func (s *ResetState) Validate(ctx *GameContext) error {
	return nil
}

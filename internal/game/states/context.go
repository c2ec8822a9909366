package states

import (
	"time"

	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
	"github.com/rs/zerolog"
)

// GameContext provides session information to states
type GameContext struct {
	// GameID identifies the current session; it changes on every reset
	GameID string

	Logger zerolog.Logger

	// Seed the map of this session was generated from
	Seed int64

	// StartTime is when PhaseActive was entered
	StartTime time.Time

	// EndTime is when PhaseEnded was entered
	EndTime time.Time

	// Winner is SideNone until a Base falls
	Winner core.Side

	// Resets counts how many times the session has been reset
	Resets int
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID: gameID,
		Logger: logger.With().Str("game_id", gameID).Logger(),
	}
}

// Rebind points the context at a new session id
func (gc *GameContext) Rebind(gameID string, base zerolog.Logger) {
	gc.GameID = gameID
	gc.Logger = base.With().Str("game_id", gameID).Logger()
	gc.Seed = 0
	gc.Winner = core.SideNone
	gc.StartTime = time.Time{}
	gc.EndTime = time.Time{}
}

// GetElapsedTime returns the time from start to end, or to now while active
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	if !gc.EndTime.IsZero() {
		return gc.EndTime.Sub(gc.StartTime)
	}
	return time.Since(gc.StartTime)
}

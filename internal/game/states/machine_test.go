package states

import (
	"errors"
	"testing"

	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/events"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGamePhase_String(t *testing.T) {
	tests := []struct {
		phase    GamePhase
		expected string
	}{
		{PhaseInitializing, "Initializing"},
		{PhaseActive, "Active"},
		{PhaseEnded, "Ended"},
		{PhaseReset, "Reset"},
		{GamePhase(42), "Unknown(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.phase.String())
			if tt.phase <= PhaseReset {
				assert.Equal(t, tt.phase, ParsePhase(tt.expected))
			}
		})
	}
}

func TestGamePhase_Transitions(t *testing.T) {
	tests := []struct {
		from    GamePhase
		to      GamePhase
		allowed bool
	}{
		{PhaseInitializing, PhaseActive, true},
		{PhaseInitializing, PhaseEnded, false},
		{PhaseActive, PhaseEnded, true},
		{PhaseActive, PhaseReset, true},
		{PhaseActive, PhaseInitializing, false},
		{PhaseEnded, PhaseActive, false},
		{PhaseEnded, PhaseReset, true},
		{PhaseReset, PhaseInitializing, true},
		{PhaseReset, PhaseActive, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}

	assert.True(t, PhaseEnded.IsTerminal())
	assert.False(t, PhaseActive.IsTerminal())
	assert.True(t, PhaseActive.CanReceiveActions())
	assert.False(t, PhaseEnded.CanReceiveActions())
}

func TestStateMachine_Lifecycle(t *testing.T) {
	bus := events.NewEventBus(zerolog.Nop())
	var transitions []*events.StateTransitionEvent
	bus.SubscribeFunc(events.TypeStateTransition, func(e events.Event) {
		transitions = append(transitions, e.(*events.StateTransitionEvent))
	})

	ctx := NewGameContext("session-1", zerolog.Nop())
	sm := NewStateMachine(ctx, bus)
	assert.Equal(t, PhaseInitializing, sm.CurrentPhase())

	require.NoError(t, sm.TransitionTo(PhaseActive, "setup complete"))
	assert.False(t, ctx.StartTime.IsZero())

	err := sm.TransitionTo(PhaseEnded, "base captured")
	require.Error(t, err, "no winner recorded yet")
	assert.Equal(t, PhaseActive, sm.CurrentPhase())

	ctx.Winner = core.SideA
	require.NoError(t, sm.TransitionTo(PhaseEnded, "base captured"))
	assert.False(t, ctx.EndTime.IsZero())
	assert.GreaterOrEqual(t, ctx.GetElapsedTime().Nanoseconds(), int64(0))

	assert.Error(t, sm.TransitionTo(PhaseActive, "cheat"))

	require.NoError(t, sm.Restart("button"))
	assert.Equal(t, PhaseInitializing, sm.CurrentPhase())
	assert.Equal(t, 1, ctx.Resets)

	history := sm.GetHistory()
	require.Len(t, history, 4)
	assert.Equal(t, PhaseReset, history[2].To)
	assert.Equal(t, "button", history[3].Reason)

	require.Len(t, transitions, 4)
	assert.Equal(t, "Active", transitions[0].ToPhase)
	assert.Equal(t, "session-1", transitions[0].GameID())
}

func TestStateMachine_RestartFromInitializingIsNoop(t *testing.T) {
	sm := NewStateMachine(NewGameContext("g", zerolog.Nop()), nil)

	require.NoError(t, sm.Restart("early"))
	assert.Empty(t, sm.GetHistory())
}

func TestStateMachine_ActiveRequiresGameID(t *testing.T) {
	sm := NewStateMachine(NewGameContext("", zerolog.Nop()), nil)

	assert.Error(t, sm.TransitionTo(PhaseActive, "setup"))
	assert.True(t, sm.CanTransitionTo(PhaseActive))
}

type failingState struct {
	phase GamePhase
}

func (s *failingState) Phase() GamePhase            { return s.phase }
func (s *failingState) Enter(*GameContext) error    { return errors.New("enter failed") }
func (s *failingState) Exit(*GameContext) error     { return nil }
func (s *failingState) Validate(*GameContext) error { return nil }

func TestStateMachine_EnterFailureRollsBack(t *testing.T) {
	sm := NewStateMachine(NewGameContext("g", zerolog.Nop()), nil)
	sm.RegisterState(&failingState{phase: PhaseActive})

	err := sm.TransitionTo(PhaseActive, "setup")
	require.Error(t, err)
	assert.Equal(t, PhaseInitializing, sm.CurrentPhase())
	assert.Empty(t, sm.GetHistory())
}

func TestGameContext_Rebind(t *testing.T) {
	ctx := NewGameContext("old", zerolog.Nop())
	ctx.Winner = core.SideB
	ctx.Seed = 5
	ctx.Resets = 2

	ctx.Rebind("new", zerolog.Nop())

	assert.Equal(t, "new", ctx.GameID)
	assert.Equal(t, core.SideNone, ctx.Winner)
	assert.Equal(t, int64(0), ctx.Seed)
	assert.Equal(t, 2, ctx.Resets)
	assert.Equal(t, int64(0), ctx.GetElapsedTime().Nanoseconds())
}

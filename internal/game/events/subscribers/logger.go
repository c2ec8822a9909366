package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs game events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, attach the full event as JSON
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	logEvent := ls.logger.WithLevel(ls.logLevel).
		Str("event_type", event.Type()).
		Str("game_id", event.GameID())

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Int64("seed", e.Seed).
			Stringer("base_a", e.BaseA).
			Stringer("base_b", e.BaseB)

	case *events.GameEndedEvent:
		logEvent.
			Stringer("winner", e.Winner).
			Int("tick", e.Tick)

	case *events.GameResetEvent:
		logEvent.Str("next_game_id", e.NextGameID)

	case *events.TickAdvancedEvent:
		logEvent.
			Int("tick", e.Tick).
			Int("true_tick", e.TrueTick).
			Int("lag", e.Lag)

	case *events.ProductionAppliedEvent:
		logEvent.
			Int("tick", e.Tick).
			Int("cells_grown", e.CellsGrown).
			Int("units_a", e.UnitsA).
			Int("units_b", e.UnitsB)

	case *events.SelectionToggledEvent:
		logEvent.
			Stringer("side", e.Side).
			Bool("selecting", e.Selecting).
			Stringer("at", e.At)

	case *events.CursorMovedEvent:
		logEvent.
			Stringer("side", e.Side).
			Stringer("from", e.From).
			Stringer("to", e.To)

	case *events.MoveQueuedEvent:
		logEvent.
			Stringer("side", e.Order.Side).
			Stringer("from", e.Order.From).
			Stringer("direction", e.Order.Direction).
			Bool("half", e.Order.Half).
			Bool("overwritten", e.Overwritten)

	case *events.MoveExecutedEvent:
		logEvent.
			Stringer("side", e.Side).
			Stringer("from", e.From).
			Stringer("to", e.To).
			Int("transferred", e.Transferred).
			Int("returned", e.Returned).
			Bool("half", e.Half).
			Stringer("outcome", e.Outcome)

	case *events.MoveRejectedEvent:
		logEvent.
			Stringer("side", e.Order.Side).
			Stringer("from", e.Order.From).
			Stringer("direction", e.Order.Direction).
			Str("reason", e.Reason)

	case *events.CombatResolvedEvent:
		logEvent.
			Stringer("attacker", e.Attacker).
			Stringer("defender", e.Defender).
			Stringer("location", e.Location).
			Int("attacker_units", e.AttackerUnits).
			Int("defender_units", e.DefenderUnits).
			Int("remaining_units", e.RemainingUnits).
			Stringer("new_owner", e.NewOwner)

	case *events.BaseCapturedEvent:
		logEvent.
			Stringer("capturer", e.Capturer).
			Stringer("loser", e.Loser).
			Stringer("location", e.Location)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase).
			Str("reason", e.Reason)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}

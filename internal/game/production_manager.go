package game

import (
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/events"
	"github.com/rs/zerolog"
)

// ProductionManager grows owned Bases and Towers on production ticks
type ProductionManager struct {
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewProductionManager creates a new production manager
func NewProductionManager(publisher events.Publisher, logger zerolog.Logger) *ProductionManager {
	return &ProductionManager{
		publisher: publisher,
		logger:    logger.With().Str("component", "ProductionManager").Logger(),
	}
}

// Apply runs one production tick against the session grid
func (pm *ProductionManager) Apply(gs *GameState, tick int) int {
	grown := core.ApplyProduction(gs.Grid)

	_, unitsA := gs.Grid.CountOwned(core.SideA)
	_, unitsB := gs.Grid.CountOwned(core.SideB)

	pm.publisher.Publish(events.NewProductionAppliedEvent(gs.GameID, tick, grown, unitsA, unitsB))

	pm.logger.Debug().
		Int("tick", tick).
		Int("cells_grown", grown).
		Int("units_a", unitsA).
		Int("units_b", unitsB).
		Msg("Production applied")

	return grown
}

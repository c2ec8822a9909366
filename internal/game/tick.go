package game

import (
	"sync/atomic"

	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
)

// TickEngine reconciles hardware timer ticks with simulation ticks.
// trueTick is written only by the timer handler, calculatedTick only by
// the main loop. The main loop catches up one tick per iteration, so
// calculatedTick never passes trueTick and never jumps.
type TickEngine struct {
	trueTick       atomic.Int64
	calculatedTick atomic.Int64
	interval       int64
}

// NewTickEngine creates a tick engine producing every interval ticks
func NewTickEngine(interval int) *TickEngine {
	if interval <= 0 {
		interval = core.ProductionInterval
	}
	return &TickEngine{interval: int64(interval)}
}

// OnHardwareTick counts one timer expiry
func (t *TickEngine) OnHardwareTick() {
	t.trueTick.Add(1)
}

// Advance computes at most one simulation tick. It reports whether a tick
// was computed and whether that tick is a production tick.
func (t *TickEngine) Advance(ended bool) (advanced, produce bool) {
	if ended {
		return false, false
	}
	calc := t.calculatedTick.Load()
	if calc >= t.trueTick.Load() {
		return false, false
	}
	calc++
	t.calculatedTick.Store(calc)
	return true, calc%t.interval == 0
}

// TrueTick returns the number of hardware ticks since reset
func (t *TickEngine) TrueTick() int { return int(t.trueTick.Load()) }

// CalculatedTick returns the number of simulation ticks computed since reset
func (t *TickEngine) CalculatedTick() int { return int(t.calculatedTick.Load()) }

// Lag returns how far the simulation trails the hardware clock
func (t *TickEngine) Lag() int {
	return int(t.trueTick.Load() - t.calculatedTick.Load())
}

// Reset zeroes both counters
func (t *TickEngine) Reset() {
	t.trueTick.Store(0)
	t.calculatedTick.Store(0)
}

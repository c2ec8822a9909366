// Package irq models a GIC-style interrupt controller: a distributor that
// enables and routes level-sensitive device lines, and a CPU interface that
// the main loop polls at safe points to run handlers to completion.
package irq

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Line is a level-sensitive interrupt request from a device.
// It stays asserted until the handler acknowledges the device.
type Line interface {
	Pending() bool
}

// Queue is implemented by lines backed by a FIFO. Each dispatch that
// shortens the queue counts as an acknowledgement even though the line
// stays asserted.
type Queue interface {
	Len() int
}

// Handler services one interrupt source. It must acknowledge its device
// before returning or the line re-fires on the next service pass.
type Handler func()

// Source is one whitelisted interrupt
type Source struct {
	ID       int
	Name     string
	Priority uint8
	Line     Line
	Handler  Handler

	count atomic.Uint64
}

// HaltError is raised when an interrupt arrives that no handler was
// configured for. The controller is unusable afterwards.
type HaltError struct {
	ID int
}

func (e *HaltError) Error() string {
	return fmt.Sprintf("unexpected interrupt id %d: system halted", e.ID)
}

// DefaultMaxDispatchPerService bounds one Service call
const DefaultMaxDispatchPerService = 64

// Controller owns the register file and the whitelist of sources.
// Register and Configure run at boot; Service and Dispatch run on the
// CPU goroutine only.
type Controller struct {
	mu      sync.RWMutex
	regs    Registers
	sources map[int]*Source
	order   []*Source // by priority, then id

	halted        atomic.Bool
	storms        atomic.Uint64
	deferred      atomic.Uint64
	maxPerService int
	logger        zerolog.Logger
}

// NewController creates an unconfigured controller
func NewController(logger zerolog.Logger) *Controller {
	return &Controller{
		sources:       make(map[int]*Source),
		maxPerService: DefaultMaxDispatchPerService,
		logger:        logger.With().Str("component", "irq").Logger(),
	}
}

// SetMaxDispatchPerService changes the storm budget of a single Service call
func (c *Controller) SetMaxDispatchPerService(n int) {
	if n > 0 {
		c.maxPerService = n
	}
}

// Register adds a source to the whitelist. Registering an id twice
// replaces the earlier source.
func (c *Controller) Register(id int, name string, priority uint8, line Line, handler Handler) error {
	if id < 0 || id >= NumLines {
		return fmt.Errorf("interrupt id %d outside [0,%d)", id, NumLines)
	}
	if handler == nil {
		return fmt.Errorf("interrupt %d (%s): nil handler", id, name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.sources[id] = &Source{ID: id, Name: name, Priority: priority, Line: line, Handler: handler}
	c.order = c.order[:0]
	for _, s := range c.sources {
		c.order = append(c.order, s)
	}
	sort.Slice(c.order, func(i, j int) bool {
		if c.order[i].Priority != c.order[j].Priority {
			return c.order[i].Priority < c.order[j].Priority
		}
		return c.order[i].ID < c.order[j].ID
	})
	return nil
}

// Configure programs the controller the way the boot firmware does:
// unmask every priority, enable the CPU interface and the distributor,
// then enable each whitelisted source and route it to CPU 0.
func (c *Controller) Configure() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.regs.ICCPMR = 0xFFFF
	c.regs.ICCICR = 1
	c.regs.ICDDCR = 1

	for _, s := range c.order {
		c.regs.enable(s.ID)
		c.regs.target(s.ID, CPU0)
		c.regs.ICDIPR[s.ID] = s.Priority

		offset, mask := ISERLocation(s.ID)
		c.logger.Debug().
			Int("id", s.ID).
			Str("source", s.Name).
			Uint8("priority", s.Priority).
			Str("iser_offset", fmt.Sprintf("0x%03X", offset)).
			Str("iser_mask", fmt.Sprintf("0x%08X", mask)).
			Str("iptr_offset", fmt.Sprintf("0x%03X", IPTRLocation(s.ID))).
			Msg("Interrupt source configured")
	}

	c.logger.Info().Int("sources", len(c.order)).Msg("Interrupt controller configured")
}

// Registers returns a copy of the register file
func (c *Controller) Registers() Registers {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.regs
}

// Halted reports whether an unknown interrupt stopped the controller
func (c *Controller) Halted() bool {
	return c.halted.Load()
}

// Dispatch routes id to its handler. An id outside the whitelist halts the
// controller and panics with *HaltError.
func (c *Controller) Dispatch(id int) {
	c.mu.RLock()
	s, ok := c.sources[id]
	c.mu.RUnlock()

	if !ok {
		c.halted.Store(true)
		c.logger.Error().Int("id", id).Msg("Unknown interrupt, halting")
		panic(&HaltError{ID: id})
	}

	s.count.Add(1)
	s.Handler()
}

// Service acknowledges and dispatches pending interrupts, most urgent first,
// until nothing is pending. It returns the number of handlers run.
//
// Once the dispatch budget is spent the rest waits for the next service
// point. That is a storm only when the waiting source's last handler left
// its line asserted without draining anything; a FIFO that is still
// emptying is just deferred.
func (c *Controller) Service() int {
	if c.halted.Load() {
		return 0
	}

	var stuck [NumLines]bool
	dispatched := 0
	for {
		id := c.acknowledge()
		if id == SpuriousID {
			return dispatched
		}
		if dispatched >= c.maxPerService {
			if stuck[id] {
				c.storms.Add(1)
				c.logger.Warn().
					Int("id", id).
					Int("dispatched", dispatched).
					Msg("Interrupt storm, deferring to next service point")
			} else {
				c.deferred.Add(1)
				c.logger.Debug().
					Int("id", id).
					Int("dispatched", dispatched).
					Msg("Interrupt backlog deferred to next service point")
			}
			c.endOfInterrupt(id)
			return dispatched
		}

		line := c.line(id)
		before := queueLen(line)
		c.Dispatch(id)
		c.endOfInterrupt(id)
		dispatched++
		stuck[id] = line != nil && line.Pending() && queueLen(line) >= before
	}
}

func (c *Controller) line(id int) Line {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if s, ok := c.sources[id]; ok {
		return s.Line
	}
	return nil
}

// queueLen is the backlog of a FIFO line, -1 for anything else
func queueLen(line Line) int {
	if q, ok := line.(Queue); ok {
		return q.Len()
	}
	return -1
}

// acknowledge reads the interrupt acknowledge register: the most urgent
// asserted, enabled, CPU0-targeted and unmasked source, or SpuriousID.
func (c *Controller) acknowledge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := SpuriousID
	if c.regs.signalling() {
		for _, s := range c.order {
			if !c.regs.enabled(s.ID) || c.regs.targets(s.ID)&CPU0 == 0 {
				continue
			}
			if uint32(c.regs.ICDIPR[s.ID]) >= c.regs.ICCPMR {
				continue
			}
			if s.Line != nil && s.Line.Pending() {
				id = s.ID
				break
			}
		}
	}
	c.regs.ICCIAR = uint32(id)
	return id
}

func (c *Controller) endOfInterrupt(id int) {
	c.mu.Lock()
	c.regs.ICCEOIR = uint32(id)
	c.mu.Unlock()
}

// Stats is a snapshot of dispatch counters
type Stats struct {
	Dispatched map[string]uint64
	Storms     uint64
	Deferred   uint64
	Halted     bool
}

// Stats returns per-source dispatch counts
func (c *Controller) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	st := Stats{
		Dispatched: make(map[string]uint64, len(c.sources)),
		Storms:     c.storms.Load(),
		Deferred:   c.deferred.Load(),
		Halted:     c.halted.Load(),
	}
	for _, s := range c.sources {
		st.Dispatched[s.Name] = s.count.Load()
	}
	return st
}

// Count returns how many times id has been dispatched
func (c *Controller) Count(id int) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if s, ok := c.sources[id]; ok {
		return s.count.Load()
	}
	return 0
}

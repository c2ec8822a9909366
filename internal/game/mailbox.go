package game

import (
	"sync"

	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
)

// Mailbox is the single-slot hand-off between the keyboard handler and the
// main loop. A post replaces any order not yet taken.
type Mailbox struct {
	mu          sync.Mutex
	order       core.MoveOrder
	full        bool
	posted      uint64
	overwritten uint64
}

// NewMailbox returns an empty mailbox
func NewMailbox() *Mailbox {
	return &Mailbox{}
}

// Post stores order and reports whether it replaced an untaken one
func (m *Mailbox) Post(order core.MoveOrder) (overwrote bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	overwrote = m.full
	if overwrote {
		m.overwritten++
	}
	m.order = order
	m.full = true
	m.posted++
	return overwrote
}

// Take empties the mailbox
func (m *Mailbox) Take() (core.MoveOrder, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.full {
		return core.MoveOrder{}, false
	}
	order := m.order
	m.order = core.MoveOrder{}
	m.full = false
	return order, true
}

// Clear drops any pending order
func (m *Mailbox) Clear() {
	m.mu.Lock()
	m.order = core.MoveOrder{}
	m.full = false
	m.mu.Unlock()
}

// Counts returns the number of posts and of overwritten orders
func (m *Mailbox) Counts() (posted, overwritten uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.posted, m.overwritten
}

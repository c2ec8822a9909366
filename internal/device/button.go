package device

import "sync/atomic"

// Buttons is the push-button parallel port. A press latches its bit in the
// edge-capture register; the handler clears the bits it has seen.
type Buttons struct {
	edge atomic.Uint32
	mask uint32
}

// NewButtons creates a port with interrupts enabled for the buttons in mask
func NewButtons(mask uint32) *Buttons {
	return &Buttons{mask: mask}
}

// Press latches button n
func (b *Buttons) Press(n int) {
	b.edge.Or(uint32(1) << uint(n))
}

// EdgeCapture reads the edge-capture register
func (b *Buttons) EdgeCapture() uint32 { return b.edge.Load() }

// Ack clears the edge-capture bits in bits, write-one-to-clear
func (b *Buttons) Ack(bits uint32) {
	b.edge.And(^bits)
}

// Pending implements irq.Line
func (b *Buttons) Pending() bool { return b.edge.Load()&b.mask != 0 }

// Switch is a slide switch. It raises no interrupt; software polls it.
type Switch struct {
	on      atomic.Bool
	changes chan bool
}

// NewSwitch creates a switch in the off position
func NewSwitch() *Switch {
	return &Switch{changes: make(chan bool, 8)}
}

// Set moves the switch. Repeated sets to the same position are ignored.
func (s *Switch) Set(on bool) {
	if s.on.Swap(on) == on {
		return
	}
	select {
	case s.changes <- on:
	default:
	}
}

// Toggle flips the switch
func (s *Switch) Toggle() { s.Set(!s.on.Load()) }

// On reads the switch position
func (s *Switch) On() bool { return s.on.Load() }

// Changes delivers new positions as the switch moves
func (s *Switch) Changes() <-chan bool { return s.changes }

// Drain discards undelivered changes and returns how many there were
func (s *Switch) Drain() int {
	n := 0
	for {
		select {
		case <-s.changes:
			n++
		default:
			return n
		}
	}
}

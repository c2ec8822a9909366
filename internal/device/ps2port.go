package device

import (
	"sync"

	"github.com/rs/zerolog"
)

// Data register layout of the PS/2 port
const (
	PS2DataMask  uint32 = 0x000000FF
	PS2ReadValid uint32 = 0x00008000
	// RAVAIL, the bytes left after this read, sits in the upper half
	PS2AvailShift = 16
)

// DefaultPS2FIFODepth matches the hardware FIFO
const DefaultPS2FIFODepth = 256

// PS2Port is the keyboard port: a byte FIFO fed by the front end and drained
// by the keyboard handler. The interrupt line is high while the FIFO holds data.
type PS2Port struct {
	mu      sync.Mutex
	fifo    []byte
	depth   int
	dropped uint64
	logger  zerolog.Logger
}

// NewPS2Port creates a port with the given FIFO depth
func NewPS2Port(depth int, logger zerolog.Logger) *PS2Port {
	if depth <= 0 {
		depth = DefaultPS2FIFODepth
	}
	return &PS2Port{
		fifo:   make([]byte, 0, depth),
		depth:  depth,
		logger: logger.With().Str("component", "ps2_port").Logger(),
	}
}

// Push appends bytes received from the keyboard. Bytes that do not fit are
// dropped, as the hardware does when the FIFO is full.
func (p *PS2Port) Push(bs ...byte) {
	p.mu.Lock()
	defer p.mu.Unlock()

	room := p.depth - len(p.fifo)
	if room < len(bs) {
		lost := len(bs) - room
		p.dropped += uint64(lost)
		p.logger.Warn().Int("dropped", lost).Msg("PS/2 FIFO full, dropping bytes")
		bs = bs[:room]
	}
	p.fifo = append(p.fifo, bs...)
}

// ReadData pops one byte and returns the data register value: the byte in
// bits 0-7, RVALID in bit 15 and the remaining count in bits 16-31.
// An empty FIFO reads with RVALID clear.
func (p *PS2Port) ReadData() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.fifo) == 0 {
		return 0
	}
	b := p.fifo[0]
	p.fifo = p.fifo[1:]
	return uint32(b) | PS2ReadValid | uint32(len(p.fifo))<<PS2AvailShift
}

// Pending implements irq.Line
func (p *PS2Port) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.fifo) > 0
}

// Len returns the number of buffered bytes
func (p *PS2Port) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.fifo)
}

// Dropped returns the number of bytes lost to a full FIFO
func (p *PS2Port) Dropped() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dropped
}

// Clear empties the FIFO
func (p *PS2Port) Clear() {
	p.mu.Lock()
	p.fifo = p.fifo[:0]
	p.mu.Unlock()
}

// Package device models the memory-mapped peripherals that raise
// interrupts: the private timer, the PS/2 port and the push-buttons.
// Devices are written by their own goroutine or the front end, and read
// and acknowledged by interrupt handlers on the CPU goroutine.
package device

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Timer is an auto-reload interval timer. Each expiry sets the interrupt
// status bit; the handler clears it with Ack. Expiries that land while the
// bit is still set are counted as overruns, not queued.
type Timer struct {
	period   time.Duration
	status   atomic.Bool
	expiries atomic.Uint64
	overruns atomic.Uint64

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	logger zerolog.Logger
}

// NewTimer creates a stopped timer with the given reload period
func NewTimer(period time.Duration, logger zerolog.Logger) *Timer {
	return &Timer{
		period: period,
		logger: logger.With().Str("component", "timer").Logger(),
	}
}

// Period returns the reload period
func (t *Timer) Period() time.Duration { return t.period }

// Start runs the countdown on its own goroutine until ctx ends or Stop is called
func (t *Timer) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.done = make(chan struct{})

	go t.run(ctx, t.done)

	t.logger.Info().Dur("period", t.period).Msg("Timer started")
}

// Stop halts the countdown and waits for the goroutine to exit
func (t *Timer) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (t *Timer) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(t.period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.Expire()
		case <-ctx.Done():
			return
		}
	}
}

// Expire performs one countdown expiry. The headless simulator and tests
// drive the timer through this directly.
func (t *Timer) Expire() {
	t.expiries.Add(1)
	if !t.status.CompareAndSwap(false, true) {
		t.overruns.Add(1)
	}
}

// Pending implements irq.Line
func (t *Timer) Pending() bool { return t.status.Load() }

// Ack clears the interrupt status bit. The counter keeps reloading on its own.
func (t *Timer) Ack() { t.status.Store(false) }

// Expiries returns the number of countdown expiries so far
func (t *Timer) Expiries() uint64 { return t.expiries.Load() }

// Overruns returns expiries that found the status bit still set
func (t *Timer) Overruns() uint64 { return t.overruns.Load() }

// Package monitoring samples board counters in the background and warns
// when the simulation falls behind the hardware clock.
package monitoring

import (
	"runtime"
	"sync"
	"time"

	"github.com/mitchelldurbincs/GeneralsIRQ/internal/system"
	"github.com/rs/zerolog"
)

// StatsSource is anything that reports board counters
type StatsSource interface {
	Stats() system.Stats
}

// LagMonitor tracks tick lag, interrupt counts and goroutines
type LagMonitor struct {
	mu            sync.RWMutex
	source        StatsSource
	checkInterval time.Duration
	lagThreshold  int
	alertCooldown time.Duration
	lastAlert     time.Time
	stopChan      chan struct{}
	stopOnce      sync.Once

	baselineGoroutines int
	last               Metrics
	peakLag            int
	alerts             int

	logger zerolog.Logger
	now    func() time.Time
}

// NewLagMonitor creates a monitor sampling source every interval. A
// threshold of 0 disables lag alerts.
func NewLagMonitor(source StatsSource, interval time.Duration, lagThreshold int, logger zerolog.Logger) *LagMonitor {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &LagMonitor{
		source:             source,
		checkInterval:      interval,
		lagThreshold:       lagThreshold,
		alertCooldown:      30 * time.Second,
		stopChan:           make(chan struct{}),
		baselineGoroutines: runtime.NumGoroutine(),
		logger:             logger.With().Str("component", "LagMonitor").Logger(),
		now:                time.Now,
	}
}

// Start begins sampling
func (m *LagMonitor) Start() {
	go m.monitor()
	m.logger.Info().
		Dur("interval", m.checkInterval).
		Int("lag_threshold", m.lagThreshold).
		Msg("Started lag monitoring")
}

// Stop stops the monitor. Safe to call more than once.
func (m *LagMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopChan) })
}

// SetLagThreshold changes the alert threshold, e.g. on config reload
func (m *LagMonitor) SetLagThreshold(ticks int) {
	m.mu.Lock()
	m.lagThreshold = ticks
	m.mu.Unlock()
}

func (m *LagMonitor) monitor() {
	ticker := time.NewTicker(m.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Check()
		case <-m.stopChan:
			return
		}
	}
}

// Check takes one sample and reports whether it raised an alert
func (m *LagMonitor) Check() bool {
	st := m.source.Stats()
	goroutines := runtime.NumGoroutine()

	m.mu.Lock()
	prev := m.last
	m.last = Metrics{
		Iterations:       st.Iterations,
		Sessions:         st.Sessions,
		TrueTick:         st.TrueTick,
		CalculatedTick:   st.CalculatedTick,
		Lag:              st.Lag,
		Interrupts:       copyMap(st.Interrupts.Dispatched),
		Storms:           st.Interrupts.Storms,
		Deferred:         st.Interrupts.Deferred,
		MovesOverwritten: st.MovesOverwritten,
		KeyboardDropped:  st.KeyboardDropped,
		TimerOverruns:    st.TimerOverruns,
		Goroutines:       goroutines,
	}
	if st.Lag > m.peakLag {
		m.peakLag = st.Lag
	}
	now := m.now()
	shouldAlert := m.lagThreshold > 0 &&
		st.Lag >= m.lagThreshold &&
		now.Sub(m.lastAlert) > m.alertCooldown
	if shouldAlert {
		m.lastAlert = now
		m.alerts++
	}
	threshold := m.lagThreshold
	m.mu.Unlock()

	m.logger.Debug().
		Uint64("iterations", st.Iterations).
		Uint64("frames", st.Iterations-prev.Iterations).
		Int("true_tick", st.TrueTick).
		Int("calculated_tick", st.CalculatedTick).
		Int("lag", st.Lag).
		Int("goroutines", goroutines).
		Msg("Board metrics")

	if st.KeyboardDropped > prev.KeyboardDropped {
		m.logger.Warn().
			Uint64("dropped", st.KeyboardDropped-prev.KeyboardDropped).
			Msg("Keyboard FIFO overflowed")
	}
	if shouldAlert {
		m.logger.Warn().
			Int("lag", st.Lag).
			Int("threshold", threshold).
			Uint64("timer_overruns", st.TimerOverruns).
			Msg("Simulation is falling behind the hardware clock")
	}
	return shouldAlert
}

// GetMetrics returns the latest sample
func (m *LagMonitor) GetMetrics() Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := m.last
	out.Interrupts = copyMap(m.last.Interrupts)
	out.PeakLag = m.peakLag
	out.Alerts = m.alerts
	out.GoroutineGrowth = m.last.Goroutines - m.baselineGoroutines
	return out
}

// Metrics is one sample of board counters
type Metrics struct {
	Iterations       uint64            `json:"iterations"`
	Sessions         uint64            `json:"sessions"`
	TrueTick         int               `json:"true_tick"`
	CalculatedTick   int               `json:"calculated_tick"`
	Lag              int               `json:"lag"`
	PeakLag          int               `json:"peak_lag"`
	Alerts           int               `json:"alerts"`
	Interrupts       map[string]uint64 `json:"interrupts"`
	Storms           uint64            `json:"storms"`
	Deferred         uint64            `json:"deferred"`
	MovesOverwritten uint64            `json:"moves_overwritten"`
	KeyboardDropped  uint64            `json:"keyboard_dropped"`
	TimerOverruns    uint64            `json:"timer_overruns"`
	Goroutines       int               `json:"goroutines"`
	GoroutineGrowth  int               `json:"goroutine_growth"`
}

func copyMap(m map[string]uint64) map[string]uint64 {
	result := make(map[string]uint64, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}

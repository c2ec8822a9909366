// Package entropy supplies the seed a session map is generated from.
package entropy

import (
	"context"
	"fmt"
	"time"

	"github.com/mitchelldurbincs/GeneralsIRQ/internal/device"
	"github.com/rs/zerolog"
)

// Source produces a map seed. It may block until the player acts.
type Source interface {
	Seed(ctx context.Context) (int64, error)
}

// Fixed always returns the same seed
type Fixed int64

// Seed implements Source
func (f Fixed) Seed(context.Context) (int64, error) { return int64(f), nil }

// Clock seeds from the wall clock
type Clock struct {
	Now func() time.Time
}

// Seed implements Source
func (c Clock) Seed(context.Context) (int64, error) {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now().UnixNano(), nil
}

// SwitchSource waits for the player to turn a slide switch on and off
// again and seeds from how long that took.
type SwitchSource struct {
	sw     *device.Switch
	now    func() time.Time
	logger zerolog.Logger
}

// NewSwitchSource creates a source reading sw
func NewSwitchSource(sw *device.Switch, logger zerolog.Logger) *SwitchSource {
	return &SwitchSource{
		sw:     sw,
		now:    time.Now,
		logger: logger.With().Str("component", "entropy").Logger(),
	}
}

// Arm discards switch movements made before the prompt, so a toggle
// during play cannot satisfy the next Seed.
func (s *SwitchSource) Arm() {
	if n := s.sw.Drain(); n > 0 {
		s.logger.Debug().Int("discarded", n).Msg("Discarded stale switch changes")
	}
}

// Seed implements Source. A switch that is already on only needs to be
// turned off. An off change seen while waiting for on means the whole
// toggle already happened.
func (s *SwitchSource) Seed(ctx context.Context) (int64, error) {
	start := s.now()
	changes := 0

	// Positions are taken from the change stream as well as the current
	// reading, so a quick on/off between two reads still counts.
	sawOn := s.sw.On()
	toggled := false
	for !sawOn && !toggled {
		select {
		case <-ctx.Done():
			return 0, fmt.Errorf("waiting for switch on: %w", ctx.Err())
		case on := <-s.sw.Changes():
			changes++
			toggled = !on
			sawOn = on || s.sw.On()
		}
	}

	sawOff := toggled || !s.sw.On()
	for !sawOff {
		select {
		case <-ctx.Done():
			return 0, fmt.Errorf("waiting for switch off: %w", ctx.Err())
		case on := <-s.sw.Changes():
			changes++
			sawOff = !on || !s.sw.On()
		}
	}

	elapsed := s.now().Sub(start)
	seed := elapsed.Nanoseconds() ^ start.UnixNano()

	s.logger.Debug().
		Dur("elapsed", elapsed).
		Int("changes", changes).
		Int64("seed", seed).
		Msg("Entropy collected from switch")

	return seed, nil
}

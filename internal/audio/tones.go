// Package audio plays the board's chip-tune through beep.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
)

// Note is one tone of a tune
type Note struct {
	Freq     float64
	Duration time.Duration
}

// Song is the looping background tune, one second per note
var Song = []Note{
	{1000, time.Second},
	{800, time.Second},
	{1200, time.Second},
}

// Fanfare plays once when a base falls
var Fanfare = []Note{
	{523.25, 120 * time.Millisecond},
	{659.25, 120 * time.Millisecond},
	{783.99, 120 * time.Millisecond},
	{1046.50, 400 * time.Millisecond},
}

// oscillator generates one tone for a fixed number of samples
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a tone of freq lasting duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// tune cycles through its notes forever
type tune struct {
	notes   []Note
	wave    WaveType
	rate    beep.SampleRate
	index   int
	current beep.Streamer
}

// NewLoop returns an endless streamer playing notes in order
func NewLoop(notes []Note, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &tune{notes: notes, wave: wave, rate: rate}
}

func (t *tune) Stream(samples [][2]float64) (n int, ok bool) {
	if len(t.notes) == 0 {
		return 0, false
	}
	for n < len(samples) {
		if t.current == nil {
			note := t.notes[t.index]
			t.current = NewOscillator(note.Freq, note.Duration, t.wave, t.rate)
			t.index = (t.index + 1) % len(t.notes)
		}
		m, more := t.current.Stream(samples[n:])
		n += m
		if !more || m == 0 {
			t.current = nil
		}
	}
	return n, true
}

func (t *tune) Err() error { return nil }

// NewSequence returns a streamer playing notes once
func NewSequence(notes []Note, wave WaveType, rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, len(notes))
	for i, note := range notes {
		parts[i] = NewOscillator(note.Freq, note.Duration, wave, rate)
	}
	return beep.Seq(parts...)
}

// newVolume scales s by vol in base-2 steps. vol <= -8 is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	return &effects.Volume{Streamer: s, Base: 2, Volume: vol, Silent: vol <= -8}
}

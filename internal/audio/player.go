package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/common"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/events"
	"github.com/rs/zerolog"
)

// Config holds audio settings
type Config struct {
	SampleRate int
	// Volume is a base-2 gain, 0 is unchanged and -1 is half
	Volume float64
}

// Player mixes the looping song with one-shot effects. It subscribes to
// game events: the song restarts with each session and the fanfare plays
// when the game ends.
type Player struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
	song        *beep.Ctrl
	initialized bool
	logger      zerolog.Logger
}

// NewPlayer creates a player. Nothing reaches the speaker until Initialize.
func NewPlayer(cfg Config, logger zerolog.Logger) *Player {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 8000
	}
	return &Player{
		rate:   beep.SampleRate(cfg.SampleRate),
		volume: common.ClampFloat(cfg.Volume, -8, 2),
		mixer:  &beep.Mixer{},
		logger: logger.With().Str("component", "audio").Logger(),
	}
}

// Initialize opens the speaker and starts streaming the mixer
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	p.logger.Info().Int("sample_rate", int(p.rate)).Msg("Audio initialized")
	return nil
}

// Close silences everything
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.locked(func() {
		p.mixer.Clear()
		p.song = nil
	})
	if p.initialized {
		speaker.Clear()
		p.initialized = false
	}
}

// Streamer exposes the mix, for sampling without a speaker
func (p *Player) Streamer() beep.Streamer { return p.mixer }

// Active returns the number of streamers in the mix
func (p *Player) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	p.locked(func() { n = p.mixer.Len() })
	return n
}

// PlaySong starts the song from its first note
func (p *Player) PlaySong() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.locked(func() {
		if p.song != nil {
			p.song.Streamer = nil
		}
		p.song = &beep.Ctrl{Streamer: newVolume(NewLoop(Song, WaveSine, p.rate), p.volume)}
		p.mixer.Add(p.song)
	})
}

// StopSong stops the song
func (p *Player) StopSong() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.locked(func() {
		if p.song != nil {
			p.song.Streamer = nil
			p.song = nil
		}
	})
}

// SongPlaying reports whether the song is in the mix
func (p *Player) SongPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.song != nil
}

// PlayFanfare plays the win fanfare once
func (p *Player) PlayFanfare() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.locked(func() {
		p.mixer.Add(newVolume(NewSequence(Fanfare, WaveSquare, p.rate), p.volume))
	})
}

// locked runs fn while holding the speaker lock if the speaker is running
func (p *Player) locked(fn func()) {
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}

// ID implements events.Subscriber
func (p *Player) ID() string { return "audio" }

// InterestedIn implements events.Subscriber
func (p *Player) InterestedIn(eventType string) bool {
	return eventType == events.TypeGameStarted || eventType == events.TypeGameEnded
}

// HandleEvent implements events.Subscriber
func (p *Player) HandleEvent(event events.Event) {
	switch e := event.(type) {
	case *events.GameStartedEvent:
		p.PlaySong()
	case *events.GameEndedEvent:
		p.StopSong()
		p.PlayFanfare()
		p.logger.Debug().Stringer("winner", e.Winner).Msg("Fanfare")
	}
}

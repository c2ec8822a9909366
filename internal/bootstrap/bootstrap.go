// Package bootstrap holds the start-up wiring shared by the commands:
// configuration, logging, the event bus and the board's collaborators.
package bootstrap

import (
	"fmt"
	"io"

	"github.com/mitchelldurbincs/GeneralsIRQ/internal/common"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/config"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/entropy"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/events"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/monitoring"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/render"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/system"
	"github.com/rs/zerolog"
)

// Runtime is everything a command needs before it builds a board
type Runtime struct {
	Config *config.Config
	Logger zerolog.Logger
	Bus    *events.EventBus

	monitor *monitoring.LagMonitor
}

// Init loads configuration and sets up logging to out. A non-empty
// logLevel overrides the configured one.
func Init(configPath, logLevel string, out io.Writer) (*Runtime, error) {
	if err := config.Init(configPath); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	if logLevel != "" {
		if _, err := common.ParseLevel(logLevel); err != nil {
			return nil, fmt.Errorf("log-level flag: %w", err)
		}
		config.Set("log.level", logLevel)
	}
	cfg := config.Get()

	logger := common.SetupLoggingTo(out, cfg.Log.Level, cfg.Log.Format)
	bus := events.NewEventBus(logger)
	bus.Subscribe(subscribers.NewLoggerSubscriber("event-logger", logger, zerolog.DebugLevel))

	return &Runtime{Config: cfg, Logger: logger, Bus: bus}, nil
}

// SeedSource picks the entropy source: a configured seed wins, otherwise
// fallback. A nil fallback leaves the choice to the board, which then asks
// the player for the switch.
func SeedSource(seed int64, fallback entropy.Source) entropy.Source {
	if seed != 0 {
		return entropy.Fixed(seed)
	}
	return fallback
}

// BoardConfig builds the board configuration from the hardware section
func (r *Runtime) BoardConfig(renderer render.Renderer, fallback entropy.Source) system.Config {
	return system.Config{
		Logger:                r.Logger,
		Publisher:             r.Bus,
		Renderer:              renderer,
		Entropy:               SeedSource(r.Config.Game.Seed, fallback),
		TimerPeriod:           r.Config.Hardware.TimerPeriod,
		KeyboardFIFO:          r.Config.Hardware.KeyboardFIFO,
		MaxDispatchPerService: r.Config.Hardware.MaxDispatchPerService,
	}
}

// StartMonitor starts the lag monitor for board. Stop it with StopMonitor.
func (r *Runtime) StartMonitor(board *system.Board) *monitoring.LagMonitor {
	r.monitor = monitoring.NewLagMonitor(board, r.Config.Monitoring.Interval, r.Config.Monitoring.LagAlertTicks, r.Logger)
	r.monitor.Start()
	return r.monitor
}

// StopMonitor stops the lag monitor if one was started
func (r *Runtime) StopMonitor() {
	if r.monitor != nil {
		r.monitor.Stop()
	}
}

// WatchConfig hot-reloads the log level and the lag alert threshold when
// the config file changes. Without a config file there is nothing to watch.
func (r *Runtime) WatchConfig() {
	if config.ConfigFilePath() == "" {
		return
	}
	config.WatchConfig(r.applyReload)
	r.Logger.Info().Str("file", config.ConfigFilePath()).Msg("Watching config file")
}

func (r *Runtime) applyReload(cfg *config.Config, err error) {
	if err != nil {
		r.Logger.Warn().Err(err).Msg("Ignoring invalid config change")
		return
	}
	r.Config = cfg
	level, _ := common.ParseLevel(cfg.Log.Level)
	zerolog.SetGlobalLevel(level)
	if r.monitor != nil {
		r.monitor.SetLagThreshold(cfg.Monitoring.LagAlertTicks)
	}
	r.Logger.Info().Str("log_level", cfg.Log.Level).Msg("Config reloaded")
}

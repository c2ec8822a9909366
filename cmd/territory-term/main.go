package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/GeneralsIRQ/internal/audio"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/bootstrap"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/render"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/system"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/terminal"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	logLevel := flag.String("log-level", "", "Log level (trace, debug, info, warn, error) (empty to use config default)")
	logFile := flag.String("log-file", "territory-term.log", "File to log to; the terminal belongs to the board")
	seed := flag.Int64("seed", 0, "Map seed (0 to use config, then the switch prompt)")
	flag.Parse()

	out, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	rt, err := bootstrap.Init(*configPath, *logLevel, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	cfg := rt.Config
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	if err := run(rt); err != nil {
		log.Error().Err(err).Msg("Board stopped")
		fmt.Fprintf(os.Stderr, "Board stopped: %v\n", err)
		os.Exit(1)
	}
}

func run(rt *bootstrap.Runtime) error {
	cfg := rt.Config

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	fb := render.NewFrameBuffer(core.GridWidth, core.GridHeight)
	board, err := system.NewBoard(rt.BoardConfig(fb, nil))
	if err != nil {
		return err
	}

	if cfg.Audio.Enabled {
		player := audio.NewPlayer(audio.Config{SampleRate: cfg.Audio.SampleRate, Volume: cfg.Audio.Volume}, rt.Logger)
		if err := player.Initialize(); err != nil {
			log.Warn().Err(err).Msg("Audio initialization failed")
		} else {
			rt.Bus.Subscribe(player)
			defer player.Close()
		}
	}

	rt.StartMonitor(board)
	defer rt.StopMonitor()
	rt.WatchConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Dur("timer_period", cfg.Hardware.TimerPeriod).Msg("Starting territory terminal")
	app := terminal.NewApp(screen, board, terminal.NewDisplay(screen, fb), cfg.UI.FrameRate, rt.Logger)
	err = app.Run(ctx)
	log.Info().Interface("stats", board.Stats()).Msg("Shut down")
	return err
}

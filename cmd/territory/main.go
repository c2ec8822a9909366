package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/GeneralsIRQ/internal/audio"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/bootstrap"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/render"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/system"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	logLevel := flag.String("log-level", "", "Log level (trace, debug, info, warn, error) (empty to use config default)")
	seed := flag.Int64("seed", 0, "Map seed (0 to use config, then the switch prompt)")
	flag.Parse()

	rt, err := bootstrap.Init(*configPath, *logLevel, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize")
	}
	cfg := rt.Config
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	fb := render.NewFrameBuffer(core.GridWidth, core.GridHeight)
	board, err := system.NewBoard(rt.BoardConfig(fb, nil))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build board")
	}

	if cfg.Audio.Enabled {
		player := audio.NewPlayer(audio.Config{SampleRate: cfg.Audio.SampleRate, Volume: cfg.Audio.Volume}, rt.Logger)
		if err := player.Initialize(); err != nil {
			// Non-fatal, the board runs without sound
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

	game := ui.NewGame(board, fb, cfg.UI.TileSize, rt.Logger)
	game.Start(ctx)
	defer game.Stop()

	ebiten.SetWindowSize(cfg.UI.Window.Width, cfg.UI.Window.Height)
	ebiten.SetWindowTitle(cfg.UI.Window.Title)
	ebiten.SetTPS(cfg.UI.FrameRate)

	log.Info().
		Int("tile_size", cfg.UI.TileSize).
		Dur("timer_period", cfg.Hardware.TimerPeriod).
		Msg("Starting territory window")

	if err := ebiten.RunGame(game); !ui.IsTermination(err) {
		log.Fatal().Err(err).Msg("Board stopped")
	}
	log.Info().Interface("stats", board.Stats()).Msg("Shut down")
}

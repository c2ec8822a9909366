package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/GeneralsIRQ/internal/bootstrap"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/entropy"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/rules"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/input/ps2"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/render"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/system"
)

// Keys each player presses in the demo
var (
	playerKeys = [][]ps2.Key{
		{ps2.KeyW, ps2.KeyA, ps2.KeyS, ps2.KeyD, ps2.KeySpace},
		{ps2.KeyUp, ps2.KeyLeft, ps2.KeyDown, ps2.KeyRight, ps2.KeyEnter},
	}
	modifiers = []ps2.Key{ps2.KeyShift, ps2.KeyCtrl}
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	logLevel := flag.String("log-level", "warn", "Log level (trace, debug, info, warn, error)")
	seed := flag.Int64("seed", 0, "Map and input seed (0 to use config, then the clock)")
	iterations := flag.Int("iterations", 4000, "Main loop iterations to run")
	printEvery := flag.Int("print-every", 500, "Print the board every N iterations (0 to print only the end)")
	stepsPerTick := flag.Int("steps-per-tick", 2, "Main loop iterations per timer expiry")
	burst := flag.Int("burst", 2, "Most key taps per player per iteration")
	ansi := flag.Bool("ansi", true, "Color the printed board")
	flag.Parse()

	rt, err := bootstrap.Init(*configPath, *logLevel, os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize")
	}
	if *seed != 0 {
		rt.Config.Game.Seed = *seed
	}

	bc := rt.BoardConfig(render.NewHeadlessFrameBuffer(core.GridWidth, core.GridHeight), entropy.Clock{})
	bc.ManualTimer = true
	board, err := system.NewBoard(bc)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build board")
	}

	ctx := context.Background()
	if err := board.Boot(ctx); err != nil {
		log.Fatal().Err(err).Msg("Boot failed")
	}
	engine := board.Engine()
	snap := engine.Snapshot()
	fmt.Printf("Game %s seed %d\n%s\n", snap.GameID, engine.State().Seed, snap.Board(*ansi))

	rng := rand.New(rand.NewSource(engine.State().Seed))
	for i := 1; i <= *iterations && !engine.IsEnded(); i++ {
		for side, keys := range playerKeys {
			taps := rng.Intn(*burst + 1)
			for n := 0; n < taps; n++ {
				key := keys[rng.Intn(len(keys))]
				if rng.Intn(4) == 0 {
					board.PressKey(modifiers[side])
					board.TapKey(key)
					board.ReleaseKey(modifiers[side])
				} else {
					board.TapKey(key)
				}
			}
		}
		if *stepsPerTick > 0 && i%*stepsPerTick == 0 {
			board.Timer.Expire()
		}

		if err := board.Step(ctx); err != nil {
			log.Fatal().Err(err).Int("iteration", i).Msg("Board stopped")
		}
		if *printEvery > 0 && i%*printEvery == 0 {
			fmt.Printf("Iteration %d\n%s\n", i, engine.Snapshot().Board(*ansi))
		}
	}

	final := engine.Snapshot()
	fmt.Printf("Final board\n%s\n", final.Board(*ansi))
	if final.Ended {
		fmt.Printf("%s\n", render.WinText(final.Winner))
	} else {
		cellsA, unitsA := final.Grid.CountOwned(core.SideA)
		cellsB, unitsB := final.Grid.CountOwned(core.SideB)
		fmt.Printf("No winner: A holds %d cells with %d units, B holds %d cells with %d units\n",
			cellsA, unitsA, cellsB, unitsB)
		fmt.Printf("Legal moves: A %d, B %d\n",
			rules.Mobility(final.Grid, core.SideA), rules.Mobility(final.Grid, core.SideB))
	}

	stats, _ := json.MarshalIndent(board.Stats(), "", "  ")
	fmt.Printf("%s\n", stats)
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/integrii/flaggy"

	"automata/internal/app"
	"automata/internal/automata"
	_ "automata/internal/automata/cpu"
	_ "automata/internal/automata/gpu"
	"automata/internal/pattern"
	"automata/internal/stats"
	"automata/internal/view"
)

func main() {
	cfg := app.NewConfig()
	flaggy.SetName("automata")
	flaggy.SetDescription("dual-backend cellular automaton over a toroidal grid")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	cfg.Bind()
	flaggy.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	engineCfg, err := cfg.EngineConfig()
	if err != nil {
		log.Fatal(err)
	}

	// Interrupts stop the loop between generations, never inside one.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var seedCells []uint8
	if cfg.Pattern != "random" {
		seedCells, err = pattern.Load(cfg.Pattern, engineCfg.Size())
		if err != nil {
			log.Fatal(err)
		}
	}

	run := stats.NewRun()

	switch {
	case cfg.Render:
		err = app.RunRender(ctx, cfg, engineCfg, run, seedCells, os.Stdout)
	case cfg.Interactive:
		err = runInteractive(ctx, cfg, engineCfg, run, seedCells)
	default:
		var a automata.Automaton
		a, err = automata.New(cfg.Backend, engineCfg)
		if err != nil {
			log.Fatal(err)
		}
		if seedCells != nil {
			if err := a.LoadCells(seedCells); err != nil {
				log.Fatal(err)
			}
		}
		err = app.Run(ctx, a, cfg, run, os.Stdout)
	}
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Benchmark {
		fmt.Println(run.Summary())
	} else {
		log.Printf("exiting after %d iterations", run.Iterations)
	}
}

func runInteractive(ctx context.Context, cfg *app.Config, engineCfg automata.Config, run *stats.Run, seedCells []uint8) error {
	a, err := automata.New(cfg.Backend, engineCfg)
	if err != nil {
		return err
	}
	if seedCells != nil {
		if err := a.LoadCells(seedCells); err != nil {
			return err
		}
	}
	term, err := view.NewTerminal(a, cfg.TPS, run, cfg.StartPaused)
	if err != nil {
		return err
	}
	return term.Start(ctx)
}

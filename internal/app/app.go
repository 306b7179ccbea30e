//go:build ebiten

package app

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"automata/internal/automata"
	"automata/internal/automata/cpu"
	"automata/internal/automata/gpu"
	"automata/internal/render"
	"automata/internal/stats"
)

// Game adapts the automaton to the ebiten.Game interface.
type Game struct {
	ctx     context.Context
	a       automata.Automaton
	painter *render.GridPainter
	cfg     *Config
	run     *stats.Run
	out     io.Writer

	paused   bool
	tickOnce bool
}

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}

	if g.cfg.MaxIterations > 0 && g.run.Iterations >= uint64(g.cfg.MaxIterations) {
		return ebiten.Termination
	}
	if g.paused && !g.tickOnce {
		return nil
	}
	g.tickOnce = false

	start := time.Now()
	logEnabled := !g.cfg.Benchmark && g.run.ShouldLog()
	if err := g.a.ComputeGrid(logEnabled); err != nil {
		return err
	}
	g.run.RecordStep(time.Since(start))
	if logEnabled {
		fmt.Fprint(g.out, g.run.LiveLine(g.a.AliveCount()))
	}
	return nil
}

// Draw publishes the current generation to the painter and blits it.
func (g *Game) Draw(screen *ebiten.Image) {
	if err := g.a.UpdateGridBuffers(); err != nil {
		return
	}
	g.painter.Draw(screen, g.cfg.Scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.a.Size()
	return s.W * g.cfg.Scale, s.H * g.cfg.Scale
}

// RunRender opens a window and drives the engine from the game loop. The GPU
// backend writes straight into the painter's texture (render-interop mode);
// the CPU backend presents through a callback that fills the same texture
// from the host side.
func RunRender(ctx context.Context, cfg *Config, engineCfg automata.Config, run *stats.Run, seedCells []uint8, out io.Writer) error {
	painter := render.NewGridPainter(engineCfg.Cols, engineCfg.Rows)

	var (
		a   automata.Automaton
		err error
	)
	switch cfg.Backend {
	case "gpu":
		a, err = gpu.NewWithTarget(engineCfg, painter.Image())
	case "cpu":
		engineCfg.Present = func(cells []uint8) {
			painter.SetCells(cells, color.White, color.Black)
		}
		a, err = cpu.New(engineCfg)
	default:
		err = fmt.Errorf("%w %q", automata.ErrUnknownBackend, cfg.Backend)
	}
	if err != nil {
		return err
	}
	if seedCells != nil {
		if err := a.LoadCells(seedCells); err != nil {
			return err
		}
	}

	game := &Game{
		ctx:     ctx,
		a:       a,
		painter: painter,
		cfg:     cfg,
		run:     run,
		out:     out,
		paused:  cfg.StartPaused,
	}

	ebiten.SetWindowTitle("automata (" + a.Name() + ")")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(engineCfg.Cols*cfg.Scale, engineCfg.Rows*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	fmt.Fprintln(out)
	return nil
}

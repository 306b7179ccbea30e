package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"automata/internal/automata"
	"automata/internal/stats"
)

// Run drives the engine without a window. Backends that need a live frame
// loop (the device backend does) get their whole run wrapped in one RunLoop
// call; host backends run directly.
func Run(ctx context.Context, a automata.Automaton, cfg *Config, run *stats.Run, out io.Writer) error {
	if lr, ok := a.(automata.LoopRunner); ok {
		return lr.RunLoop(func() error {
			return RunHeadless(ctx, a, cfg, run, out)
		})
	}
	return RunHeadless(ctx, a, cfg, run, out)
}

// RunHeadless drives the engine without a window: buffers, compute, live
// log, one generation per pass. Cancellation is honored only at generation
// boundaries so an in-flight pass always runs to completion.
func RunHeadless(ctx context.Context, a automata.Automaton, cfg *Config, run *stats.Run, out io.Writer) error {
	for cfg.MaxIterations == 0 || run.Iterations < uint64(cfg.MaxIterations) {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		default:
		}

		if cfg.DelayMs > 0 {
			time.Sleep(time.Duration(cfg.DelayMs) * time.Millisecond)
		}

		start := time.Now()
		logEnabled := !cfg.Benchmark && run.ShouldLog()

		if err := a.UpdateGridBuffers(); err != nil {
			return fmt.Errorf("updating grid buffers: %w", err)
		}
		if err := a.ComputeGrid(logEnabled); err != nil {
			return fmt.Errorf("generation %d: %w", run.Iterations+1, err)
		}
		run.RecordStep(time.Since(start))

		if logEnabled {
			fmt.Fprint(out, run.LiveLine(a.AliveCount()))
		}
	}
	fmt.Fprintln(out)
	return nil
}

package app

import (
	"bytes"
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"automata/internal/automata"
	_ "automata/internal/automata/cpu"
	"automata/internal/stats"
)

func runScenario(t *testing.T) []uint8 {
	t.Helper()
	cfg := NewConfig()
	cfg.Rows = 10
	cfg.Cols = 10
	cfg.Seed = 42
	cfg.FillProb = 0.08
	cfg.VirtualFillProb = 0
	cfg.MaxIterations = 5
	cfg.Benchmark = true

	engineCfg, err := cfg.EngineConfig()
	require.NoError(t, err)
	a, err := automata.New("cpu", engineCfg)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, RunHeadless(context.Background(), a, cfg, stats.NewRun(), &out))
	return append([]uint8(nil), a.Cells()...)
}

// TestHeadlessScenarioIsReproducible runs the 10x10, seed 42, five
// generation scenario twice and expects identical grids.
func TestHeadlessScenarioIsReproducible(t *testing.T) {
	first := runScenario(t)
	second := runScenario(t)
	require.True(t, slices.Equal(first, second), "repeated runs with the same seed diverged")
}

// frameLoopAutomaton wraps a host backend behind the frame-loop contract so
// the dispatcher's wrapping behavior is observable without a device.
type frameLoopAutomaton struct {
	automata.Automaton
	loops int
}

func (f *frameLoopAutomaton) RunLoop(fn func() error) error {
	f.loops++
	return fn()
}

// TestRunWrapsFrameLoopBackends pins the dispatch that keeps windowless
// device runs working: the whole run must execute inside a single RunLoop
// entry, not call the backend with no loop live.
func TestRunWrapsFrameLoopBackends(t *testing.T) {
	cfg := NewConfig()
	cfg.Rows = 8
	cfg.Cols = 8
	cfg.Seed = 1
	cfg.MaxIterations = 2
	cfg.Benchmark = true

	engineCfg, err := cfg.EngineConfig()
	require.NoError(t, err)
	inner, err := automata.New("cpu", engineCfg)
	require.NoError(t, err)

	a := &frameLoopAutomaton{Automaton: inner}
	run := stats.NewRun()
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), a, cfg, run, &out))
	require.Equal(t, 1, a.loops, "the whole run must happen inside one loop entry")
	require.EqualValues(t, 2, run.Iterations)
}

func TestRunDrivesHostBackendsDirectly(t *testing.T) {
	cfg := NewConfig()
	cfg.Rows = 8
	cfg.Cols = 8
	cfg.Seed = 1
	cfg.MaxIterations = 2
	cfg.Benchmark = true

	engineCfg, err := cfg.EngineConfig()
	require.NoError(t, err)
	a, err := automata.New("cpu", engineCfg)
	require.NoError(t, err)

	run := stats.NewRun()
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), a, cfg, run, &out))
	require.EqualValues(t, 2, run.Iterations)
}

func TestHeadlessStopsAtMaxIterations(t *testing.T) {
	cfg := NewConfig()
	cfg.Rows = 8
	cfg.Cols = 8
	cfg.Seed = 1
	cfg.MaxIterations = 3
	cfg.Benchmark = true

	engineCfg, err := cfg.EngineConfig()
	require.NoError(t, err)
	a, err := automata.New("cpu", engineCfg)
	require.NoError(t, err)

	run := stats.NewRun()
	var out bytes.Buffer
	require.NoError(t, RunHeadless(context.Background(), a, cfg, run, &out))
	require.EqualValues(t, 3, run.Iterations)
}

func TestHeadlessHonorsCancellation(t *testing.T) {
	cfg := NewConfig()
	cfg.Rows = 8
	cfg.Cols = 8
	cfg.Seed = 1
	cfg.Benchmark = true

	engineCfg, err := cfg.EngineConfig()
	require.NoError(t, err)
	a, err := automata.New("cpu", engineCfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run := stats.NewRun()
	var out bytes.Buffer
	require.NoError(t, RunHeadless(ctx, a, cfg, run, &out))
	require.Zero(t, run.Iterations, "a canceled context must stop before the next generation")
}

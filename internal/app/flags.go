package app

import (
	"fmt"
	"time"

	"github.com/integrii/flaggy"

	"automata/internal/automata"
)

// Config represents the command-line parameters for one run.
type Config struct {
	Backend string

	Rows int
	Cols int
	Seed int64

	FillProb        float64
	VirtualFillProb float64
	Rule            string
	Workers         int

	MaxIterations int
	DelayMs       int
	TPS           int
	Scale         int
	Pattern       string

	Render      bool
	Interactive bool
	Benchmark   bool
	StartPaused bool
}

// NewConfig returns a Config populated with the engine defaults.
func NewConfig() *Config {
	return &Config{
		Backend:         "cpu",
		Rows:            1000,
		Cols:            1000,
		FillProb:        0.08,
		VirtualFillProb: 0.0001,
		Rule:            "B3/S23",
		TPS:             60,
		Scale:           1,
		Pattern:         "random",
	}
}

// Bind attaches the configuration to the global flaggy parser.
func (c *Config) Bind() {
	flaggy.String(&c.Backend, "b", "backend", "compute backend (cpu or gpu)")
	flaggy.Int(&c.Rows, "y", "rows", "grid rows")
	flaggy.Int(&c.Cols, "x", "cols", "grid columns")
	flaggy.Int64(&c.Seed, "", "seed", "random seed (0 picks one from the clock)")
	flaggy.Float64(&c.FillProb, "f", "fill-prob", "initial live-cell probability")
	flaggy.Float64(&c.VirtualFillProb, "v", "virtual-fill-prob", "per-generation spontaneous-birth probability")
	flaggy.String(&c.Rule, "", "rule", "rule in B/S notation, e.g. B3/S23")
	flaggy.Int(&c.Workers, "w", "workers", "CPU worker count (0 = one per core)")
	flaggy.Int(&c.MaxIterations, "m", "max-iterations", "stop after this many generations (0 = unlimited)")
	flaggy.Int(&c.DelayMs, "d", "delay-ms", "artificial delay between generations")
	flaggy.Int(&c.TPS, "", "tps", "window mode ticks per second")
	flaggy.Int(&c.Scale, "s", "scale", "window mode pixel scale")
	flaggy.String(&c.Pattern, "p", "pattern", "seed pattern: 'random', a builtin name or a plaintext file")
	flaggy.Bool(&c.Render, "", "render", "open a window and render generations")
	flaggy.Bool(&c.Interactive, "i", "interactive", "interactive terminal view")
	flaggy.Bool(&c.Benchmark, "", "benchmark", "suppress the live log, print timings at exit")
	flaggy.Bool(&c.StartPaused, "", "start-paused", "start with the simulation paused")
}

// Validate rejects shell-level parameters the run cannot start from. Engine
// parameters are validated when the engine Config is built.
func (c *Config) Validate() error {
	if c.Scale <= 0 {
		return fmt.Errorf("app: scale must be positive (got %d)", c.Scale)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("app: tps must be positive (got %d)", c.TPS)
	}
	if c.MaxIterations < 0 || c.DelayMs < 0 {
		return fmt.Errorf("app: max-iterations and delay-ms must not be negative")
	}
	if c.Render && c.Interactive {
		return fmt.Errorf("app: render and interactive modes are mutually exclusive")
	}
	return nil
}

// EngineConfig resolves the rule and seed and builds the validated engine
// configuration. Call once per run: a zero seed is replaced with the clock.
func (c *Config) EngineConfig() (automata.Config, error) {
	rule, err := automata.ParseRule(c.Rule)
	if err != nil {
		return automata.Config{}, err
	}
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := automata.Config{
		Rows:            c.Rows,
		Cols:            c.Cols,
		Seed:            seed,
		FillProb:        c.FillProb,
		VirtualFillProb: c.VirtualFillProb,
		Rule:            rule,
		Workers:         c.Workers,
	}
	if err := cfg.Validate(); err != nil {
		return automata.Config{}, err
	}
	return cfg, nil
}

// Package automata defines the simulation engine contract shared by the CPU
// and GPU backends: the generation-advance and buffer-population operations,
// the rule and seeding primitives both backends evaluate identically, and the
// registry the shell uses to select a backend at startup.
package automata

import (
	"errors"
	"fmt"
	"sort"

	"automata/internal/core"
)

// Automaton is the single abstraction the driver shell depends on. A backend
// is selected once at startup and never switched mid-run; all calls are
// synchronous and one generation advances per ComputeGrid call.
type Automaton interface {
	Name() string
	Size() core.Size

	// ComputeGrid advances the simulation by one generation. When countAlive
	// is set the pass additionally tallies live cells and publishes the total
	// through AliveCount, avoiding a second full traversal.
	ComputeGrid(countAlive bool) error

	// UpdateGridBuffers hands the current generation to the presentation
	// collaborator (callback or interop buffer). Never races with an
	// in-flight ComputeGrid: the engine is synchronous and commits only
	// after all writes to the next buffer are complete.
	UpdateGridBuffers() error

	// AliveCount returns the total published by the most recent counting pass.
	AliveCount() int

	// Cells exposes the current generation as host-visible bytes (0 dead,
	// 1 alive). On device backends this may involve a read-back.
	Cells() []uint8

	// LoadCells replaces the current generation wholesale. Pattern loading
	// goes through here, the same write path the random seeder uses.
	LoadCells(cells []uint8) error
}

// LoopRunner is implemented by backends whose dispatch and read-back
// operations are only valid while a frame loop is live. A driver that does
// not own such a loop must wrap its entire run in a single RunLoop call;
// drivers that cannot do that reject the backend up front.
type LoopRunner interface {
	RunLoop(fn func() error) error
}

// Sink receives the current generation whenever UpdateGridBuffers runs on a
// host-side backend. The rendering subsystem owns the buffer it fills from
// the provided cells.
type Sink func(cells []uint8)

// Config carries the immutable simulation parameters for one run.
type Config struct {
	Rows, Cols int
	Seed       int64

	// FillProb is the Bernoulli probability a cell starts alive.
	FillProb float64
	// VirtualFillProb is the per-cell, per-generation probability of
	// spontaneous reanimation, independent of the rule outcome.
	VirtualFillProb float64

	Rule Rule

	// Workers bounds host-side parallelism; 0 means one worker per CPU.
	Workers int

	// Present, when non-nil, is invoked by UpdateGridBuffers on host-side
	// backends with the current generation.
	Present Sink
}

// Validation failures reported before any compute begins.
var (
	ErrInvalidDims        = errors.New("automata: rows and cols must be positive")
	ErrInvalidProbability = errors.New("automata: probabilities must be within [0, 1]")
	ErrUnknownBackend     = errors.New("automata: unknown backend")
	ErrBadCellCount       = errors.New("automata: cell buffer length does not match grid")
)

// Validate rejects configurations the engine must never be constructed from.
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("%w (got %dx%d)", ErrInvalidDims, c.Rows, c.Cols)
	}
	for _, p := range []float64{c.FillProb, c.VirtualFillProb} {
		if p < 0 || p > 1 {
			return fmt.Errorf("%w (got %v)", ErrInvalidProbability, p)
		}
	}
	return nil
}

// Size returns the configured grid dimensions (cols across, rows down).
func (c Config) Size() core.Size { return core.Size{W: c.Cols, H: c.Rows} }

// Factory constructs a backend from a validated configuration.
type Factory func(cfg Config) (Automaton, error)

var backends = map[string]Factory{}

// Register adds a backend factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	backends[name] = f
}

// Backends lists the registered backend names, sorted.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New validates cfg and constructs the named backend.
func New(name string, cfg Config) (Automaton, error) {
	f, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownBackend, name)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return f(cfg)
}

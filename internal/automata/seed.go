package automata

import (
	pkgcore "automata/pkg/core"
)

// noiseStreamBase offsets the PCG stream used for per-generation noise so it
// never collides with the initial-fill stream (stream 0).
const noiseStreamBase = 1

// Seeder produces every stochastic input of a run from a single seed: the
// initial Bernoulli fill and the per-generation virtual-fill noise mask.
//
// The noise mask is computed host-side once per generation and OR-ed into the
// freshly computed next buffer by both backends, so CPU and GPU runs with the
// same seed stay bit-identical even with noise enabled. Noise is drawn for
// every cell regardless of its prior state; OR-ing makes it observable only
// on cells the rule left dead.
type Seeder struct {
	seed     int64
	fill     float64
	virtFill float64
}

// NewSeeder builds a seeder for the given probabilities.
func NewSeeder(seed int64, fillProb, virtualFillProb float64) *Seeder {
	return &Seeder{seed: seed, fill: fillProb, virtFill: virtualFillProb}
}

// Seed returns the seed the stochastic streams derive from.
func (s *Seeder) Seed() int64 { return s.seed }

// SeedGrid fills cells with the initial generation: each cell alive with the
// configured fill probability, deterministic for a given seed.
func (s *Seeder) SeedGrid(cells []uint8) {
	rng := pkgcore.NewRNG(s.seed)
	for i := range cells {
		if rng.Bernoulli(s.fill) {
			cells[i] = 1
		} else {
			cells[i] = 0
		}
	}
}

// NoiseMask fills dst with the spontaneous-birth mask for the given
// generation and returns the number of set cells. The mask depends only on
// (seed, generation), so replaying a generation reproduces it exactly.
func (s *Seeder) NoiseMask(generation uint64, dst []uint8) int {
	if s.virtFill <= 0 {
		for i := range dst {
			dst[i] = 0
		}
		return 0
	}
	rng := pkgcore.NewStreamRNG(s.seed, noiseStreamBase+generation)
	set := 0
	for i := range dst {
		if rng.Bernoulli(s.virtFill) {
			dst[i] = 1
			set++
		} else {
			dst[i] = 0
		}
	}
	return set
}

// Noisy reports whether the seeder injects any per-generation noise.
func (s *Seeder) Noisy() bool { return s.virtFill > 0 }

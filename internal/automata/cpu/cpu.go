// Package cpu implements the host-side automaton backend. A generation is
// computed by fanning contiguous row bands out to worker goroutines: every
// worker reads the frozen current buffer and writes a disjoint slice of the
// next buffer, so no locking is needed mid-pass, only a join before commit.
package cpu

import (
	"runtime"
	"sync"

	"automata/internal/automata"
	"automata/internal/core"
)

// Backend runs the automaton on the host with row-partitioned parallelism.
type Backend struct {
	grid    *core.Grid
	rule    automata.Rule
	seeder  *automata.Seeder
	present automata.Sink

	workers int
	noise   []uint8
	tallies []int

	alive      int
	generation uint64
}

// New allocates the double-buffered grid, seeds the first generation and
// sizes the worker pool. The configuration must already be validated.
func New(cfg automata.Config) (*Backend, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > cfg.Rows {
		workers = cfg.Rows
	}

	b := &Backend{
		grid:    core.NewGrid(cfg.Cols, cfg.Rows),
		rule:    cfg.Rule,
		seeder:  automata.NewSeeder(cfg.Seed, cfg.FillProb, cfg.VirtualFillProb),
		present: cfg.Present,
		workers: workers,
		noise:   make([]uint8, cfg.Cols*cfg.Rows),
		tallies: make([]int, workers),
	}
	b.seeder.SeedGrid(b.grid.Cur())
	return b, nil
}

// Name identifies the backend.
func (b *Backend) Name() string { return "cpu" }

// Size returns the grid dimensions.
func (b *Backend) Size() core.Size { return core.Size{W: b.grid.W, H: b.grid.H} }

// Cells exposes the current generation.
func (b *Backend) Cells() []uint8 { return b.grid.Cur() }

// AliveCount returns the total published by the last counting pass.
func (b *Backend) AliveCount() int { return b.alive }

// LoadCells replaces the current generation, the same write path SeedGrid
// uses. Pattern loading goes through here.
func (b *Backend) LoadCells(cells []uint8) error {
	if len(cells) != len(b.grid.Cur()) {
		return automata.ErrBadCellCount
	}
	copy(b.grid.Cur(), cells)
	return nil
}

// ComputeGrid advances the simulation by one generation. Workers join before
// the noise mask is applied and the buffers are swapped, so no partially
// updated state is ever observable through Cells.
func (b *Backend) ComputeGrid(countAlive bool) error {
	rows := b.grid.H
	band := (rows + b.workers - 1) / b.workers

	var wg sync.WaitGroup
	for w := 0; w < b.workers; w++ {
		y1 := w * band
		y2 := y1 + band
		if y2 > rows {
			y2 = rows
		}
		if y1 >= y2 {
			b.tallies[w] = 0
			continue
		}
		wg.Add(1)
		go func(w, y1, y2 int) {
			defer wg.Done()
			b.tallies[w] = b.computeBand(y1, y2, countAlive)
		}(w, y1, y2)
	}
	wg.Wait()

	alive := 0
	if countAlive {
		for _, t := range b.tallies {
			alive += t
		}
	}

	if b.seeder.Noisy() {
		nxt := b.grid.Next()
		if b.seeder.NoiseMask(b.generation, b.noise) > 0 {
			for i, n := range b.noise {
				if n != 0 && nxt[i] == 0 {
					nxt[i] = 1
					alive++
				}
			}
		}
	}

	if countAlive {
		b.alive = alive
	}
	b.generation++
	b.grid.Swap()
	return nil
}

// computeBand applies the rule to rows [y1, y2) and returns the band's live
// tally (zero unless counting was requested).
func (b *Backend) computeBand(y1, y2 int, count bool) int {
	w, h := b.grid.W, b.grid.H
	cur, nxt := b.grid.Cur(), b.grid.Next()
	alive := 0
	for y := y1; y < y2; y++ {
		for x := 0; x < w; x++ {
			neighbors := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx := (x + dx + w) % w
					ny := (y + dy + h) % h
					neighbors += int(cur[ny*w+nx])
				}
			}
			idx := y*w + x
			if b.rule.Next(cur[idx] == 1, neighbors) {
				nxt[idx] = 1
				if count {
					alive++
				}
			} else {
				nxt[idx] = 0
			}
		}
	}
	return alive
}

// UpdateGridBuffers hands the current generation to the presentation
// callback, if one was supplied at construction.
func (b *Backend) UpdateGridBuffers() error {
	if b.present != nil {
		b.present(b.grid.Cur())
	}
	return nil
}

func init() {
	automata.Register("cpu", func(cfg automata.Config) (automata.Automaton, error) {
		return New(cfg)
	})
}

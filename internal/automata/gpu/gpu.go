//go:build ebiten

// Package gpu implements the device-side automaton backend. The grid lives
// in two ping-ponged textures; a generation is one fragment-shader dispatch
// over the next texture, with every invocation reading the frozen current
// texture. Ebiten serializes the dispatch, the sparse noise writes and the
// presentation copy on its command queue, which is the device-side sync
// point before a frame is handed to rendering.
package gpu

import (
	_ "embed"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"automata/internal/automata"
	"automata/internal/core"
)

//go:embed life.kage
var shaderSrc []byte

// Backend runs the automaton as massively parallel shader dispatches.
type Backend struct {
	w, h int
	rule automata.Rule

	seeder  *automata.Seeder
	present automata.Sink

	shader *ebiten.Shader
	cur    *ebiten.Image
	nxt    *ebiten.Image
	// target is the externally owned interop buffer UpdateGridBuffers copies
	// into device-side. Nil in headless mode.
	target *ebiten.Image

	birth   []float32
	survive []float32

	noise []uint8
	cells []uint8
	pix   []byte
	// stale marks the host cell cache as behind the device state.
	stale bool

	alive      int
	generation uint64
}

// New constructs a headless GPU backend: the grid stays in the backend's own
// textures and Cells reads it back on demand.
func New(cfg automata.Config) (*Backend, error) {
	return newBackend(cfg, nil)
}

// NewWithTarget constructs a render-interop GPU backend. UpdateGridBuffers
// copies the current generation into the externally owned target without a
// host round-trip. The choice is fixed for the backend's lifetime.
func NewWithTarget(cfg automata.Config, target *ebiten.Image) (*Backend, error) {
	if target == nil {
		return nil, fmt.Errorf("gpu: render-interop mode requires a target image")
	}
	return newBackend(cfg, target)
}

func newBackend(cfg automata.Config, target *ebiten.Image) (*Backend, error) {
	shader, err := ebiten.NewShader(shaderSrc)
	if err != nil {
		return nil, fmt.Errorf("gpu: compiling generation shader: %w", err)
	}

	n := cfg.Rows * cfg.Cols
	b := &Backend{
		w:       cfg.Cols,
		h:       cfg.Rows,
		rule:    cfg.Rule,
		seeder:  automata.NewSeeder(cfg.Seed, cfg.FillProb, cfg.VirtualFillProb),
		present: cfg.Present,
		shader:  shader,
		cur:     ebiten.NewImage(cfg.Cols, cfg.Rows),
		nxt:     ebiten.NewImage(cfg.Cols, cfg.Rows),
		target:  target,
		noise:   make([]uint8, n),
		cells:   make([]uint8, n),
		pix:     make([]byte, 4*n),
	}
	b.birth, b.survive = cfg.Rule.UniformSets()

	b.seeder.SeedGrid(b.cells)
	b.upload()
	return b, nil
}

// Name identifies the backend.
func (b *Backend) Name() string { return "gpu" }

// Size returns the grid dimensions.
func (b *Backend) Size() core.Size { return core.Size{W: b.w, H: b.h} }

// AliveCount returns the total published by the last counting pass.
func (b *Backend) AliveCount() int { return b.alive }

// ComputeGrid advances the simulation by one shader dispatch, applies the
// host-computed noise mask, and commits by swapping the two textures.
func (b *Backend) ComputeGrid(countAlive bool) error {
	op := &ebiten.DrawRectShaderOptions{}
	op.Images[0] = b.cur
	op.Uniforms = map[string]any{
		"Birth":   b.birth,
		"Survive": b.survive,
	}
	op.Blend = ebiten.BlendCopy
	b.nxt.DrawRectShader(b.w, b.h, b.shader, op)

	if b.seeder.Noisy() && b.seeder.NoiseMask(b.generation, b.noise) > 0 {
		on := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
		for i, n := range b.noise {
			if n != 0 {
				b.nxt.Set(i%b.w, i/b.w, on)
			}
		}
	}

	b.cur, b.nxt = b.nxt, b.cur
	b.generation++
	b.stale = true

	if countAlive {
		b.readBack()
		alive := 0
		for _, c := range b.cells {
			alive += int(c)
		}
		b.alive = alive
	}
	return nil
}

// UpdateGridBuffers publishes the current generation for presentation: a
// device-side copy into the interop target when one was configured,
// otherwise a host read-back handed to the presentation callback.
func (b *Backend) UpdateGridBuffers() error {
	if b.target != nil {
		b.target.DrawImage(b.cur, nil)
		return nil
	}
	if b.present != nil {
		b.readBack()
		b.present(b.cells)
	}
	return nil
}

// Cells reads the current generation back to the host cache if needed.
func (b *Backend) Cells() []uint8 {
	if b.stale {
		b.readBack()
	}
	return b.cells
}

// LoadCells replaces the current generation and uploads it to the device,
// the same write path the seeder uses.
func (b *Backend) LoadCells(cells []uint8) error {
	if len(cells) != len(b.cells) {
		return automata.ErrBadCellCount
	}
	copy(b.cells, cells)
	b.upload()
	return nil
}

// upload pushes the host cell cache into the current texture.
func (b *Backend) upload() {
	for i, c := range b.cells {
		v := byte(0)
		if c != 0 {
			v = 0xff
		}
		base := i * 4
		b.pix[base+0] = v
		b.pix[base+1] = v
		b.pix[base+2] = v
		b.pix[base+3] = 0xff
	}
	b.cur.WritePixels(b.pix)
	b.stale = false
}

// readBack pulls the current texture into the host cell cache.
func (b *Backend) readBack() {
	b.cur.ReadPixels(b.pix)
	for i := range b.cells {
		if b.pix[i*4] >= 0x80 {
			b.cells[i] = 1
		} else {
			b.cells[i] = 0
		}
	}
	b.stale = false
}

func init() {
	automata.Register("gpu", func(cfg automata.Config) (automata.Automaton, error) {
		return New(cfg)
	})
}

// Package view provides the interactive terminal viewer for host-visible
// backends. It owns the pacing of the run: a paced goroutine advances the
// engine while the gocui main loop renders the latest committed generation.
package view

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"automata/internal/automata"
	"automata/internal/core"
	"automata/internal/stats"
)

// Terminal renders the grid and run status in a terminal UI.
type Terminal struct {
	g   *gocui.Gui
	a   automata.Automaton
	run *stats.Run

	pacer *core.Pacer

	mu     sync.Mutex
	cells  []uint8
	alive  int
	paused bool
	step   bool

	wg sync.WaitGroup

	liveFiller string
	deadFiller string
}

// NewTerminal builds the viewer for an automaton whose cells are
// host-visible. Generation steps are paced at tps while running.
func NewTerminal(a automata.Automaton, tps int, run *stats.Run, startPaused bool) (*Terminal, error) {
	if _, ok := a.(automata.LoopRunner); ok {
		return nil, fmt.Errorf("view: the %s backend needs a frame loop and cannot drive the terminal viewer; use --render or the cpu backend", a.Name())
	}
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fmt.Errorf("view: %w", err)
	}
	t := &Terminal{
		g:          g,
		a:          a,
		run:        run,
		pacer:      core.NewPacer(tps),
		paused:     startPaused,
		cells:      append([]uint8(nil), a.Cells()...),
		liveFiller: aurora.Green("█").String(),
		deadFiller: "░",
	}
	g.SetManagerFunc(t.layout)

	bindings := []struct {
		key     interface{}
		handler func(*gocui.Gui, *gocui.View) error
	}{
		{gocui.KeyCtrlC, t.cmdQuit},
		{'q', t.cmdQuit},
		{gocui.KeySpace, t.cmdTogglePause},
		{'n', t.cmdStepOnce},
	}
	for _, b := range bindings {
		if err := g.SetKeybinding("", b.key, gocui.ModNone, b.handler); err != nil {
			g.Close()
			return nil, fmt.Errorf("view: %w", err)
		}
	}
	return t, nil
}

// Start runs the UI until quit or context cancellation. Blocking.
func (t *Terminal) Start(ctx context.Context) error {
	defer t.g.Close()

	tickCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	t.wg.Add(1)
	go t.tick(tickCtx)

	err := t.g.MainLoop()
	cancel()
	t.wg.Wait()
	if err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

// tick advances the engine at the paced rate. Cancellation is only honored
// between generation steps, never inside one.
func (t *Terminal) tick(ctx context.Context) {
	defer t.wg.Done()
	for t.pacer.Next(ctx) {
		t.mu.Lock()
		advance := !t.paused || t.step
		t.step = false
		if advance {
			start := time.Now()
			if err := t.a.ComputeGrid(true); err != nil {
				t.mu.Unlock()
				t.g.Update(func(*gocui.Gui) error { return err })
				return
			}
			t.run.RecordStep(time.Since(start))
			copy(t.cells, t.a.Cells())
			t.alive = t.a.AliveCount()
		}
		t.mu.Unlock()

		if advance {
			t.g.Update(func(*gocui.Gui) error { return nil })
		}
	}
	t.g.Update(func(*gocui.Gui) error { return gocui.ErrQuit })
}

func (t *Terminal) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	size := t.a.Size()
	w := size.W
	if w > maxX-2 {
		w = maxX - 2
	}
	h := size.H
	if h > maxY-5 {
		h = maxY - 5
	}
	if w < 1 || h < 1 {
		return nil
	}

	v, err := g.SetView("grid", 0, 0, w+1, h+1)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	if err == gocui.ErrUnknownView {
		v.Title = "automata"
	}
	v.Clear()
	t.renderGrid(v, w, h, size.W)

	sv, err := g.SetView("status", 0, maxY-3, maxX-1, maxY-1)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	sv.Clear()
	sv.Frame = false
	t.renderStatus(sv)
	return nil
}

func (t *Terminal) renderGrid(v *gocui.View, w, h, stride int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if t.cells[y*stride+x] != 0 {
				b.WriteString(t.liveFiller)
			} else {
				b.WriteString(t.deadFiller)
			}
		}
		b.WriteByte('\n')
	}
	fmt.Fprint(v, b.String())
}

func (t *Terminal) renderStatus(v *gocui.View) {
	t.mu.Lock()
	defer t.mu.Unlock()
	state := aurora.Cyan("running").String()
	if t.paused {
		state = aurora.Blue("paused").String()
	}
	fmt.Fprintf(v, " %s | it: %d | alive: %d | SPACE pause, N step, Q quit\n",
		state, t.run.Iterations, t.alive)
}

func (t *Terminal) cmdQuit(*gocui.Gui, *gocui.View) error {
	return gocui.ErrQuit
}

func (t *Terminal) cmdTogglePause(*gocui.Gui, *gocui.View) error {
	t.mu.Lock()
	t.paused = !t.paused
	t.mu.Unlock()
	return nil
}

func (t *Terminal) cmdStepOnce(*gocui.Gui, *gocui.View) error {
	t.mu.Lock()
	t.step = true
	t.mu.Unlock()
	return nil
}

//go:build ebiten

package gpu

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// loopShim is the minimal game that lends a run a live graphics context.
// Shader dispatch queues unexecuted and ReadPixels returns nothing until
// the frame loop starts, so headless drivers execute their whole run inside
// the shim's first update and then terminate the loop.
type loopShim struct {
	fn  func() error
	err error
}

func (s *loopShim) Update() error {
	s.err = s.fn()
	return ebiten.Termination
}

func (s *loopShim) Draw(*ebiten.Image) {}

func (s *loopShim) Layout(int, int) (int, int) { return 1, 1 }

// RunLoop executes fn inside a non-presenting frame loop. Compute and
// read-back calls on this backend are only valid while the loop is live;
// window-mode runs already own a loop and never need this.
func (b *Backend) RunLoop(fn func() error) error {
	s := &loopShim{fn: fn}
	if err := ebiten.RunGame(s); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return s.err
}

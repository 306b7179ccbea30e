//go:build !ebiten

package gpu

import (
	"errors"

	"automata/internal/automata"
)

// ErrRequiresEbiten is reported when a GPU backend is requested from a build
// made without the ebiten tag.
var ErrRequiresEbiten = errors.New("gpu: this build has no GPU support, rebuild with -tags ebiten")

func init() {
	automata.Register("gpu", func(automata.Config) (automata.Automaton, error) {
		return nil, ErrRequiresEbiten
	})
}

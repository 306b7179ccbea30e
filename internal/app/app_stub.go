//go:build !ebiten

package app

import (
	"context"
	"errors"
	"io"

	"automata/internal/automata"
	"automata/internal/stats"
)

// RunRender reports that this build cannot open a window.
func RunRender(context.Context, *Config, automata.Config, *stats.Run, []uint8, io.Writer) error {
	return errors.New("app: render mode requires building with the 'ebiten' tag")
}

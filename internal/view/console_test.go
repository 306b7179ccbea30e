package view

import (
	"testing"

	"github.com/stretchr/testify/require"

	"automata/internal/core"
	"automata/internal/stats"
)

// deviceOnlyAutomaton mimics a backend whose compute calls are only valid
// inside a frame loop the viewer cannot provide.
type deviceOnlyAutomaton struct{}

func (deviceOnlyAutomaton) Name() string                  { return "gpu" }
func (deviceOnlyAutomaton) Size() core.Size               { return core.Size{W: 4, H: 4} }
func (deviceOnlyAutomaton) ComputeGrid(bool) error        { return nil }
func (deviceOnlyAutomaton) UpdateGridBuffers() error      { return nil }
func (deviceOnlyAutomaton) AliveCount() int               { return 0 }
func (deviceOnlyAutomaton) Cells() []uint8                { return make([]uint8, 16) }
func (deviceOnlyAutomaton) LoadCells([]uint8) error       { return nil }
func (deviceOnlyAutomaton) RunLoop(fn func() error) error { return fn() }

func TestNewTerminalRejectsFrameLoopBackends(t *testing.T) {
	_, err := NewTerminal(deviceOnlyAutomaton{}, 60, stats.NewRun(), false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "frame loop")
}

package automata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassicRuleTransitions(t *testing.T) {
	r := ClassicRule()
	for n := 0; n <= 8; n++ {
		wantAlive := n == 2 || n == 3
		require.Equal(t, wantAlive, r.Next(true, n), "live cell with %d neighbors", n)
		wantBirth := n == 3
		require.Equal(t, wantBirth, r.Next(false, n), "dead cell with %d neighbors", n)
	}
}

func TestNextRejectsOutOfRangeCounts(t *testing.T) {
	r := ClassicRule()
	require.False(t, r.Next(true, -1))
	require.False(t, r.Next(false, 9))
}

func TestParseRule(t *testing.T) {
	r, err := ParseRule("B3/S23")
	require.NoError(t, err)
	require.Equal(t, ClassicRule(), r)

	r, err = ParseRule("b36/s23")
	require.NoError(t, err)
	require.True(t, r.Next(false, 6), "HighLife births on 6")
	require.Equal(t, "B36/S23", r.String())

	for _, bad := range []string{"", "B3", "3/23", "B3/S9x", "S23/B3", "B3/SA"} {
		_, err := ParseRule(bad)
		require.Error(t, err, "rule %q must be rejected", bad)
	}
}

func TestUniformSetsMatchRule(t *testing.T) {
	r := ClassicRule()
	birth, survive := r.UniformSets()
	require.Len(t, birth, 9)
	require.Len(t, survive, 9)
	for n := 0; n <= 8; n++ {
		require.Equal(t, r.Next(false, n), birth[n] == 1, "birth[%d]", n)
		require.Equal(t, r.Next(true, n), survive[n] == 1, "survive[%d]", n)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := Config{Rows: 10, Cols: 10, FillProb: 0.5, Rule: ClassicRule()}
	require.NoError(t, valid.Validate())

	bad := valid
	bad.Rows = 0
	require.ErrorIs(t, bad.Validate(), ErrInvalidDims)

	bad = valid
	bad.Cols = -3
	require.ErrorIs(t, bad.Validate(), ErrInvalidDims)

	bad = valid
	bad.FillProb = 1.2
	require.ErrorIs(t, bad.Validate(), ErrInvalidProbability)

	bad = valid
	bad.VirtualFillProb = -0.1
	require.ErrorIs(t, bad.Validate(), ErrInvalidProbability)
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	_, err := New("tpu", Config{Rows: 4, Cols: 4, Rule: ClassicRule()})
	require.ErrorIs(t, err, ErrUnknownBackend)
}

package automata

import (
	"fmt"
	"strings"
)

// Rule holds the birth and survival neighbor-count sets of a Life-family
// automaton as bitmasks over counts 0..8. The zero value is the empty rule
// (everything dies); use ClassicRule or ParseRule for something useful.
//
// Next is the single source of rule semantics for every backend: the CPU
// workers call it per cell, and the GPU shader receives the same sets as
// uniforms via UniformSets.
type Rule struct {
	birth   uint16
	survive uint16
}

// ClassicRule returns Conway's B3/S23.
func ClassicRule() Rule {
	return Rule{birth: 1 << 3, survive: 1<<2 | 1<<3}
}

// ParseRule reads B/S notation such as "B3/S23" or "B36/S23" (HighLife).
func ParseRule(s string) (Rule, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return Rule{}, fmt.Errorf("automata: rule %q is not in B.../S... form", s)
	}
	var r Rule
	for i, part := range parts {
		part = strings.ToUpper(strings.TrimSpace(part))
		var prefix byte = 'B'
		mask := &r.birth
		if i == 1 {
			prefix = 'S'
			mask = &r.survive
		}
		if len(part) == 0 || part[0] != prefix {
			return Rule{}, fmt.Errorf("automata: rule %q is not in B.../S... form", s)
		}
		for _, d := range part[1:] {
			if d < '0' || d > '8' {
				return Rule{}, fmt.Errorf("automata: rule %q has neighbor count %q outside 0..8", s, d)
			}
			*mask |= 1 << (d - '0')
		}
	}
	return r, nil
}

// Next is the pure transition function: given the cell's state and its live
// Moore-neighbor count, it reports whether the cell is alive next generation.
func (r Rule) Next(alive bool, neighbors int) bool {
	if neighbors < 0 || neighbors > 8 {
		return false
	}
	if alive {
		return r.survive&(1<<neighbors) != 0
	}
	return r.birth&(1<<neighbors) != 0
}

// UniformSets expands the rule into two 9-element 0/1 vectors indexed by
// neighbor count, the form the GPU shader consumes.
func (r Rule) UniformSets() (birth, survive []float32) {
	birth = make([]float32, 9)
	survive = make([]float32, 9)
	for n := 0; n <= 8; n++ {
		if r.birth&(1<<n) != 0 {
			birth[n] = 1
		}
		if r.survive&(1<<n) != 0 {
			survive[n] = 1
		}
	}
	return birth, survive
}

// String renders the rule in B/S notation.
func (r Rule) String() string {
	var b strings.Builder
	b.WriteByte('B')
	for n := 0; n <= 8; n++ {
		if r.birth&(1<<n) != 0 {
			b.WriteByte('0' + byte(n))
		}
	}
	b.WriteString("/S")
	for n := 0; n <= 8; n++ {
		if r.survive&(1<<n) != 0 {
			b.WriteByte('0' + byte(n))
		}
	}
	return b.String()
}

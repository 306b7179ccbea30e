package core

import "testing"

func TestDeterministicSequences(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("sequences diverged at draw %d", i)
		}
	}
}

func TestStreamsAreIndependent(t *testing.T) {
	a := NewStreamRNG(42, 1)
	b := NewStreamRNG(42, 2)
	same := 0
	for i := 0; i < 64; i++ {
		if a.Bool() == b.Bool() {
			same++
		}
	}
	if same == 64 {
		t.Fatal("distinct streams produced identical booleans")
	}
}

func TestBernoulliExtremes(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 32; i++ {
		if r.Bernoulli(0) {
			t.Fatal("Bernoulli(0) must never succeed")
		}
		if !r.Bernoulli(1) {
			t.Fatal("Bernoulli(1) must always succeed")
		}
	}
}

package core

import (
	"context"
	"testing"
	"time"
)

func TestPacerFirstStepIsImmediate(t *testing.T) {
	p := NewPacer(1) // one step per second
	start := time.Now()
	if !p.Next(context.Background()) {
		t.Fatal("expected the first step to fire")
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("first step waited %v", elapsed)
	}
}

func TestPacerSpacesSteps(t *testing.T) {
	p := NewPacer(100) // 10ms apart
	ctx := context.Background()
	p.Next(ctx)
	start := time.Now()
	p.Next(ctx)
	if elapsed := time.Since(start); elapsed < 5*time.Millisecond {
		t.Fatalf("second step fired after only %v", elapsed)
	}
}

func TestPacerStopsOnCancel(t *testing.T) {
	p := NewPacer(1)
	ctx, cancel := context.WithCancel(context.Background())
	p.Next(ctx)

	done := make(chan bool, 1)
	go func() { done <- p.Next(ctx) }()
	cancel()

	select {
	case stepped := <-done:
		if stepped {
			t.Fatal("Next must report false after cancellation")
		}
	case <-time.After(time.Second):
		t.Fatal("Next did not return after cancellation")
	}
}

func TestPacerDefaultsBadRates(t *testing.T) {
	p := NewPacer(0)
	if p.interval != time.Second/60 {
		t.Fatalf("want 60 TPS fallback, got interval %v", p.interval)
	}
	p.SetTPS(-5)
	if p.interval != time.Second/60 {
		t.Fatalf("want 60 TPS fallback after SetTPS, got interval %v", p.interval)
	}
}

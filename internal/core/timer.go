package core

import (
	"context"
	"time"
)

// Pacer meters generation steps to a ticks-per-second rate. Unlike a plain
// ticker it owns the waiting: callers block in Next until the next step is
// due, so a paused caller does not accumulate a backlog of missed steps.
type Pacer struct {
	interval time.Duration
	due      time.Time
}

// NewPacer returns a pacer targeting the given TPS. Non-positive rates fall
// back to 60.
func NewPacer(tps int) *Pacer {
	p := &Pacer{}
	p.SetTPS(tps)
	return p
}

// SetTPS changes the step rate. The next step keeps its already-computed
// deadline; the new rate applies from the step after.
func (p *Pacer) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	p.interval = time.Second / time.Duration(tps)
}

// Next blocks until the next step is due and reports true, or reports false
// when the context is canceled first. The first call returns immediately.
func (p *Pacer) Next(ctx context.Context) bool {
	now := time.Now()
	if p.due.IsZero() {
		p.due = now
	}
	if wait := p.due.Sub(now); wait > 0 {
		t := time.NewTimer(wait)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return false
		case now = <-t.C:
		}
	} else if ctx.Err() != nil {
		return false
	}
	// When a slow step put us behind, restart the schedule from now instead
	// of firing a burst of catch-up steps.
	p.due = p.due.Add(p.interval)
	if p.due.Before(now) {
		p.due = now.Add(p.interval)
	}
	return true
}

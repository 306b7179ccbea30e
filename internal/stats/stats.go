// Package stats owns the per-run counters the driver loop reports from:
// iteration totals, per-second throughput for the live log line, and step
// timings for the benchmark summary. The values live in a Run owned by the
// loop, never in package globals.
package stats

import (
	"fmt"
	"time"

	"github.com/logrusorgru/aurora"
)

// Run accumulates counters for one simulation run.
type Run struct {
	Iterations uint64

	start    time.Time
	lastLog  time.Time
	lastIter uint64
	windowNs time.Duration

	total time.Duration
	min   time.Duration
	max   time.Duration
}

// NewRun starts the counters for a fresh run.
func NewRun() *Run {
	now := time.Now()
	return &Run{start: now, lastLog: now}
}

// RecordStep accounts one completed generation step.
func (r *Run) RecordStep(d time.Duration) {
	r.Iterations++
	r.windowNs += d
	r.total += d
	if r.min == 0 || d < r.min {
		r.min = d
	}
	if d > r.max {
		r.max = d
	}
}

// ShouldLog reports whether a live log line is due: at least one completed
// iteration since the last line and at least a second elapsed.
func (r *Run) ShouldLog() bool {
	if r.Iterations <= r.lastIter {
		return false
	}
	return time.Since(r.lastLog) >= time.Second
}

// LiveLine formats the carriage-returned live statistics line and resets the
// per-second window. The alive count comes from the engine's counting pass.
func (r *Run) LiveLine(alive int) string {
	perSec := r.Iterations - r.lastIter
	var avg time.Duration
	if perSec > 0 {
		avg = r.windowNs / time.Duration(perSec)
	}
	line := fmt.Sprintf("\r\x1b[KIt: %s | It/s: %d | Loop: %v | Alive: %s",
		aurora.Cyan(fmt.Sprint(r.Iterations)),
		perSec,
		avg,
		aurora.Green(fmt.Sprint(alive)),
	)
	r.lastIter = r.Iterations
	r.windowNs = 0
	r.lastLog = time.Now()
	return line
}

// Summary formats the end-of-run report used in benchmark mode.
func (r *Run) Summary() string {
	elapsed := time.Since(r.start).Round(time.Millisecond)
	var avg time.Duration
	if r.Iterations > 0 {
		avg = r.total / time.Duration(r.Iterations)
	}
	return fmt.Sprintf("iterations: %d\nelapsed: %v\nstep min/avg/max: %v / %v / %v",
		r.Iterations, elapsed, r.min, avg, r.max)
}

package entity

import (
	"github.com/emberloop/ember/internal/core/input"
	"github.com/emberloop/ember/internal/core/timer"
)

// Frame is the per-cycle context passed explicitly through every update.
type Frame struct {
	Delta  float64 // raw seconds since the previous cycle
	Cycle  uint64  // cycles since the loop started
	Input  *input.Snapshot
	Second *timer.Report // set only on cycles that cross a second boundary

	exitReason string
}

// RequestExit asks the loop to stop at the next phase boundary.
func (f *Frame) RequestExit(reason string) {
	if f.exitReason == "" {
		f.exitReason = reason
	}
}

func (f *Frame) ExitRequested() (string, bool) {
	return f.exitReason, f.exitReason != ""
}

// Pressed is a shorthand for f.Input.IsKeyPressed that tolerates a nil snapshot.
func (f *Frame) Pressed(k input.Key) bool {
	return f.Input != nil && f.Input.IsKeyPressed(k)
}

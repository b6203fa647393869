package system

import (
	"go.uber.org/zap"

	"github.com/emberloop/ember/internal/core/entity"
	"github.com/emberloop/ember/internal/core/event"
	"github.com/emberloop/ember/internal/core/input"
	coresys "github.com/emberloop/ember/internal/core/system"
	"github.com/emberloop/ember/internal/core/timer"
	"github.com/emberloop/ember/internal/world"
)

// SecondReporter receives the per-second diagnostics, e.g. to update the window title.
type SecondReporter interface {
	ReportSecond(r timer.Report, entities int)
}

// DefaultExitChords are Escape, or LAlt+F4 held together.
var DefaultExitChords = [][]input.Key{{input.KeyEscape}, {input.KeyLAlt, input.KeyF4}}

// SecondSystem runs only on cycles that crossed a second boundary: OnSecond
// updates, the exit check and diagnostics. Phase 4 (Second).
type SecondSystem struct {
	world      *world.World
	bus        *event.Bus
	exitChords [][]input.Key
	reporter   SecondReporter
	log        *zap.Logger
}

// NewSecondSystem uses DefaultExitChords when exitChords is nil. A non-nil
// empty list disables chord exit.
func NewSecondSystem(w *world.World, bus *event.Bus, exitChords [][]input.Key, reporter SecondReporter, log *zap.Logger) *SecondSystem {
	if exitChords == nil {
		exitChords = DefaultExitChords
	}
	return &SecondSystem{world: w, bus: bus, exitChords: exitChords, reporter: reporter, log: log}
}

func (s *SecondSystem) Phase() coresys.Phase { return coresys.PhaseSecond }

func (s *SecondSystem) Update(f *entity.Frame) {
	if f.Second == nil {
		return
	}
	r := *f.Second

	s.world.DispatchSecond(f)

	if f.Input != nil && f.Input.AnyChordPressed(s.exitChords) {
		s.log.Warn("exit condition reached")
		f.RequestExit("exit chord pressed")
	}

	held := 0
	if f.Input != nil {
		held = f.Input.Held()
	}
	s.log.Debug("cycles per second",
		zap.Uint64("ups", r.Cycles),
		zap.Float64("delta", r.Seconds),
		zap.Int("entities", s.world.Len()),
		zap.Int("held_keys", held))
	if s.reporter != nil {
		s.reporter.ReportSecond(r, s.world.Len())
	}
	event.Emit(s.bus, event.SecondElapsed{Report: r, Entities: s.world.Len(), Cycle: f.Cycle})
}

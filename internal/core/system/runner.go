package system

import (
	"sort"

	"github.com/emberloop/ember/internal/core/entity"
)

// Runner executes systems in phase order each cycle. Systems sharing a phase
// run in registration order.
type Runner struct {
	systems []System
	sorted  bool
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 8),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Tick runs every system once. When a system requests exit, the rest of its
// phase still runs, later phases are skipped, and PhaseCleanup always runs so
// changes queued during the cycle are not lost.
func (r *Runner) Tick(f *entity.Frame) {
	r.ensureSorted()
	stopAfter := Phase(-1)
	for _, s := range r.systems {
		if stopAfter >= 0 && s.Phase() > stopAfter && s.Phase() != PhaseCleanup {
			continue
		}
		s.Update(f)
		if _, exit := f.ExitRequested(); exit && stopAfter < 0 {
			stopAfter = s.Phase()
		}
	}
}

func (r *Runner) Len() int { return len(r.systems) }

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}

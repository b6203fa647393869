package system

import "github.com/emberloop/ember/internal/core/entity"

// Phase defines execution order within one update cycle.
type Phase int

const (
	PhaseEvents  Phase = iota // 0: deliver last cycle's frame events
	PhaseUpdate               // 1: EveryCycle entity updates
	PhaseCamera               // 2: camera update, then camera input
	PhaseInput                // 3: entity input dispatch
	PhaseSecond               // 4: second-boundary work (gated on Frame.Second)
	PhaseCleanup              // 5: apply deferred structural changes
)

var phaseNames = [...]string{"events", "update", "camera", "input", "second", "cleanup"}

func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// System is one unit of per-cycle work.
type System interface {
	Phase() Phase
	Update(f *entity.Frame)
}

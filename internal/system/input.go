package system

import (
	"github.com/emberloop/ember/internal/core/entity"
	coresys "github.com/emberloop/ember/internal/core/system"
	"github.com/emberloop/ember/internal/world"
)

// InputSystem hands the current input snapshot to every entity that wants input.
// Phase 3 (Input), after the camera has consumed input.
type InputSystem struct {
	world *world.World
}

func NewInputSystem(w *world.World) *InputSystem {
	return &InputSystem{world: w}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(f *entity.Frame) {
	s.world.DispatchInput(f)
}

package system

import (
	"github.com/emberloop/ember/internal/core/entity"
	coresys "github.com/emberloop/ember/internal/core/system"
	"github.com/emberloop/ember/internal/world"
)

// UpdateSystem runs the per-cycle update of EveryCycle entities. Phase 1 (Update).
type UpdateSystem struct {
	world *world.World
}

func NewUpdateSystem(w *world.World) *UpdateSystem {
	return &UpdateSystem{world: w}
}

func (s *UpdateSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *UpdateSystem) Update(f *entity.Frame) {
	s.world.DispatchUpdate(f)
}

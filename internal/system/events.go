package system

import (
	"github.com/emberloop/ember/internal/core/entity"
	"github.com/emberloop/ember/internal/core/event"
	coresys "github.com/emberloop/ember/internal/core/system"
)

// EventDispatchSystem delivers the previous cycle's frame events. Phase 0 (Events).
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhaseEvents }

func (s *EventDispatchSystem) Update(_ *entity.Frame) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}

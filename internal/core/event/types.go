package event

import "github.com/emberloop/ember/internal/core/timer"

// SecondElapsed is emitted on every second boundary.
type SecondElapsed struct {
	Report   timer.Report
	Entities int
	Cycle    uint64
}

type EntitySpawned struct {
	Tag string
}

type EntityRemoved struct {
	Tag string
}

// EntityRejected is emitted when the duplication policy refuses an entity.
type EntityRejected struct {
	Tag string
}

type SurfaceResized struct {
	Width, Height uint32
}

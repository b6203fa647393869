package system

import (
	"go.uber.org/zap"

	"github.com/emberloop/ember/internal/core/entity"
	coresys "github.com/emberloop/ember/internal/core/system"
	"github.com/emberloop/ember/internal/world"
)

// CleanupSystem applies structural changes queued during the cycle's passes.
// Phase 5 (Cleanup).
type CleanupSystem struct {
	world *world.World
	log   *zap.Logger
}

func NewCleanupSystem(w *world.World, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{world: w, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(f *entity.Frame) {
	removed, spawned := s.world.ApplyDeferred()
	if removed > 0 || spawned > 0 {
		s.log.Debug("world changed",
			zap.Uint64("cycle", f.Cycle),
			zap.Int("removed", removed),
			zap.Int("spawned", spawned),
			zap.Int("entities", s.world.Len()))
	}
}

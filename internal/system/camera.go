package system

import (
	"go.uber.org/zap"

	"github.com/emberloop/ember/internal/core/entity"
	coresys "github.com/emberloop/ember/internal/core/system"
)

// CameraSystem updates the backend-owned camera every cycle, then feeds it
// input if it asked for input. Phase 2 (Camera). The camera is not part of
// the world, so any structural action it returns is dropped.
type CameraSystem struct {
	camera entity.Camera
	log    *zap.Logger
}

func NewCameraSystem(cam entity.Camera, log *zap.Logger) *CameraSystem {
	return &CameraSystem{camera: cam, log: log}
}

func (s *CameraSystem) Phase() coresys.Phase { return coresys.PhaseCamera }

func (s *CameraSystem) Update(f *entity.Frame) {
	if s.camera == nil {
		return
	}
	dropped := len(s.camera.Update(f))
	if s.camera.Configuration().WantsInput {
		dropped += len(s.camera.HandleInput(f))
	}
	if dropped > 0 {
		s.log.Debug("camera actions ignored", zap.Int("count", dropped))
	}
}

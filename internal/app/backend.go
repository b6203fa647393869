package app

import (
	"github.com/emberloop/ember/internal/core/entity"
	"github.com/emberloop/ember/internal/render"
)

// Backend is the rendering engine the loop draws through.
type Backend interface {
	Name() string
	Device() render.Device
	Queue() render.Queue
	Surface() render.Surface
	Pipeline() render.Pipeline
	Camera() entity.Camera
	DepthView() render.TextureView
	InstanceBuffer() render.Buffer
	InstanceCount() uint32
	// Configure applies a new surface size after the device went idle.
	Configure(width, height uint32) error
}

// Package engine owns the rendering backend: device, surface, pipeline, depth
// target, camera and instance data.
package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/emberloop/ember/internal/core/entity"
	"github.com/emberloop/ember/internal/render"
)

type Options struct {
	Width         uint32
	Height        uint32
	InstanceCount uint32
}

// Engine is the render backend the frame loop draws through.
type Engine struct {
	log      *zap.Logger
	provider Provider

	device   render.Device
	queue    render.Queue
	surface  render.Surface
	pipeline render.Pipeline
	depth    render.TextureView
	camera   *Camera

	instances     render.Buffer
	instanceCount uint32

	width, height uint32
}

// New opens the provider's device and creates every per-window resource.
func New(p Provider, opts Options, log *zap.Logger) (*Engine, error) {
	e := &Engine{log: log, provider: p, width: opts.Width, height: opts.Height}

	var err error
	e.device, e.queue, err = p.Open()
	if err != nil {
		return nil, fmt.Errorf("open device: %w", err)
	}
	if e.device == nil || e.queue == nil {
		return nil, ErrNoAdapter
	}

	e.surface, err = p.Surface(opts.Width, opts.Height)
	if err != nil {
		return nil, fmt.Errorf("create surface: %w", err)
	}
	if err := e.surface.Configure(opts.Width, opts.Height); err != nil {
		return nil, fmt.Errorf("configure surface: %w", errJoin(ErrSurface, err))
	}

	e.pipeline, err = p.Pipeline(e.device)
	if err != nil {
		return nil, fmt.Errorf("create pipeline: %w", err)
	}
	if e.pipeline == nil {
		return nil, fmt.Errorf("pipeline: %w", ErrResourceMissing)
	}

	e.depth, err = p.DepthView(opts.Width, opts.Height)
	if err != nil {
		return nil, fmt.Errorf("create depth texture: %w", err)
	}

	e.camera, err = newCamera(e.device, e.queue, opts.Width, opts.Height)
	if err != nil {
		return nil, fmt.Errorf("create camera: %w", err)
	}

	if opts.InstanceCount == 0 {
		opts.InstanceCount = 1
	}
	e.instances, err = e.device.CreateBuffer(render.BufferDescriptor{
		Label:    "Instance Buffer",
		Contents: instanceBytes(instanceTransforms(opts.InstanceCount)),
		Usage:    render.UsageVertex,
	})
	if err != nil {
		return nil, fmt.Errorf("create instance buffer: %w", err)
	}
	e.instanceCount = opts.InstanceCount

	log.Info("render backend ready",
		zap.String("backend", p.Name()),
		zap.Uint32("width", opts.Width),
		zap.Uint32("height", opts.Height),
		zap.Uint32("instances", e.instanceCount))
	return e, nil
}

func (e *Engine) Name() string                  { return e.provider.Name() }
func (e *Engine) Device() render.Device         { return e.device }
func (e *Engine) Queue() render.Queue           { return e.queue }
func (e *Engine) Surface() render.Surface       { return e.surface }
func (e *Engine) Pipeline() render.Pipeline     { return e.pipeline }
func (e *Engine) DepthView() render.TextureView { return e.depth }
func (e *Engine) Camera() entity.Camera         { return e.camera }
func (e *Engine) InstanceBuffer() render.Buffer { return e.instances }
func (e *Engine) InstanceCount() uint32         { return e.instanceCount }
func (e *Engine) Size() (width, height uint32)  { return e.width, e.height }

// Configure applies a new surface size: surface, depth target and camera aspect.
func (e *Engine) Configure(width, height uint32) error {
	if err := e.surface.Configure(width, height); err != nil {
		return fmt.Errorf("configure surface: %w", errJoin(ErrSurface, err))
	}
	depth, err := e.provider.DepthView(width, height)
	if err != nil {
		return fmt.Errorf("recreate depth texture: %w", err)
	}
	e.depth = depth
	e.camera.SetAspect(width, height)
	e.width, e.height = width, height
	e.log.Debug("surface reconfigured", zap.Uint32("width", width), zap.Uint32("height", height))
	return nil
}

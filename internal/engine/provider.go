package engine

import (
	"fmt"

	"github.com/emberloop/ember/internal/render"
	"github.com/emberloop/ember/internal/render/headless"
)

// Provider supplies the objects that cannot be created through render.Device:
// the adapter's device and queue, the window surface, the compiled pipeline and
// the depth target.
type Provider interface {
	Name() string
	Open() (render.Device, render.Queue, error)
	Surface(width, height uint32) (render.Surface, error)
	Pipeline(dev render.Device) (render.Pipeline, error)
	DepthView(width, height uint32) (render.TextureView, error)
}

// HeadlessProvider backs the engine with the recording device. The exported
// fields expose the recorded state after the loop ran.
type HeadlessProvider struct {
	Device *headless.Device
	Queue  *headless.Queue
	Screen *headless.Surface

	// FailSurface makes every surface acquisition fail, for exercising the fatal path.
	FailSurface bool
	depths      int
}

func NewHeadlessProvider() *HeadlessProvider {
	return &HeadlessProvider{Device: headless.NewDevice(), Queue: headless.NewQueue()}
}

func (p *HeadlessProvider) Name() string { return "headless" }

func (p *HeadlessProvider) Open() (render.Device, render.Queue, error) {
	if p.Device == nil || p.Queue == nil {
		return nil, nil, ErrNoAdapter
	}
	return p.Device, p.Queue, nil
}

func (p *HeadlessProvider) Surface(width, height uint32) (render.Surface, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("surface %dx%d: %w", width, height, ErrSurface)
	}
	p.Screen = headless.NewSurface(width, height)
	if p.FailSurface {
		p.Screen.AcquireErr = fmt.Errorf("acquire texture: %w", ErrSurface)
	}
	return p.Screen, nil
}

func (p *HeadlessProvider) Pipeline(render.Device) (render.Pipeline, error) {
	return headless.NewHandle("Render Pipeline"), nil
}

func (p *HeadlessProvider) DepthView(width, height uint32) (render.TextureView, error) {
	p.depths++
	return headless.NewHandle(fmt.Sprintf("depth#%d %dx%d", p.depths, width, height)), nil
}

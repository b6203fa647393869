// Package headless implements the render interfaces without a GPU. Every
// command is recorded so frames can be inspected by tests and diagnostics.
package headless

import (
	"errors"
	"fmt"

	"github.com/emberloop/ember/internal/render"
)

var ErrOutOfMemory = errors.New("headless: out of device memory")

type Buffer struct {
	label string
	Usage render.BufferUsage
	Data  []byte
}

func (b *Buffer) Label() string { return b.label }

type BindGroup struct {
	label  string
	Data   []byte
	Source *Buffer // set for bind groups over an existing buffer
}

func (g *BindGroup) Label() string { return g.label }

// Handle is a plain labelled resource (pipelines, texture views).
type Handle struct{ label string }

func NewHandle(label string) *Handle { return &Handle{label: label} }

func (h *Handle) Label() string { return h.label }

// Device records resource creation. Set FailAllocations or IdleErr to
// simulate device failures.
type Device struct {
	Buffers    []*Buffer
	BindGroups []*BindGroup
	Encoders   int
	IdleWaits  int

	FailAllocations bool
	IdleErr         error
}

func NewDevice() *Device {
	return &Device{}
}

func (d *Device) CreateBuffer(desc render.BufferDescriptor) (render.Buffer, error) {
	if d.FailAllocations {
		return nil, fmt.Errorf("create buffer %q: %w", desc.Label, ErrOutOfMemory)
	}
	data := make([]byte, len(desc.Contents))
	copy(data, desc.Contents)
	b := &Buffer{label: desc.Label, Usage: desc.Usage, Data: data}
	d.Buffers = append(d.Buffers, b)
	return b, nil
}

func (d *Device) CreateUniformBindGroup(label string, contents []byte) (render.BindGroup, error) {
	if d.FailAllocations {
		return nil, fmt.Errorf("create bind group %q: %w", label, ErrOutOfMemory)
	}
	data := make([]byte, len(contents))
	copy(data, contents)
	g := &BindGroup{label: label, Data: data}
	d.BindGroups = append(d.BindGroups, g)
	return g, nil
}

func (d *Device) CreateBindGroup(label string, uniform render.Buffer) (render.BindGroup, error) {
	if d.FailAllocations {
		return nil, fmt.Errorf("create bind group %q: %w", label, ErrOutOfMemory)
	}
	src, ok := uniform.(*Buffer)
	if !ok {
		return nil, fmt.Errorf("create bind group %q: foreign buffer %T", label, uniform)
	}
	if src.Usage&render.UsageUniform == 0 {
		return nil, fmt.Errorf("create bind group %q: buffer %q is not a uniform buffer", label, src.label)
	}
	g := &BindGroup{label: label, Source: src}
	d.BindGroups = append(d.BindGroups, g)
	return g, nil
}

func (d *Device) CreateTextureBindGroup(label string, width, height uint32, rgba []byte) (render.BindGroup, error) {
	if want := int(width) * int(height) * 4; len(rgba) != want {
		return nil, fmt.Errorf("texture %q: got %d bytes, want %d", label, len(rgba), want)
	}
	return d.CreateUniformBindGroup(label, rgba)
}

func (d *Device) CreateCommandEncoder(label string) render.CommandEncoder {
	d.Encoders++
	return &Encoder{label: label}
}

func (d *Device) WaitIdle() error {
	d.IdleWaits++
	return d.IdleErr
}

// Queue collects submitted command buffers.
type Queue struct {
	Submitted []*CommandBuffer
	Writes    int
}

func NewQueue() *Queue { return &Queue{} }

func (q *Queue) WriteBuffer(b render.Buffer, offset uint64, data []byte) {
	q.Writes++
	hb, ok := b.(*Buffer)
	if !ok {
		return
	}
	end := int(offset) + len(data)
	if end > len(hb.Data) {
		grown := make([]byte, end)
		copy(grown, hb.Data)
		hb.Data = grown
	}
	copy(hb.Data[offset:], data)
}

func (q *Queue) Submit(cmds ...render.CommandBuffer) {
	for _, c := range cmds {
		if cb, ok := c.(*CommandBuffer); ok {
			q.Submitted = append(q.Submitted, cb)
		}
	}
}

// Last returns the most recently submitted command buffer, or nil.
func (q *Queue) Last() *CommandBuffer {
	if len(q.Submitted) == 0 {
		return nil
	}
	return q.Submitted[len(q.Submitted)-1]
}

package headless

import (
	"fmt"

	"github.com/emberloop/ember/internal/render"
)

type Op uint8

const (
	OpBeginPass Op = iota
	OpSetPipeline
	OpSetBindGroup
	OpSetVertexBuffer
	OpSetIndexBuffer
	OpDrawIndexed
	OpEndPass
)

var opNames = [...]string{"begin_pass", "set_pipeline", "set_bind_group", "set_vertex_buffer", "set_index_buffer", "draw_indexed", "end_pass"}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// Command is one recorded render-pass call.
type Command struct {
	Op        Op
	Slot      uint32
	Resource  string // label of the bound resource
	Format    render.IndexFormat
	Indices   render.Range
	Instances render.Range
}

// Encoder records at most one pass per Begin/End pair.
type Encoder struct {
	label  string
	passes []render.RenderPassDescriptor
	cmds   []Command
}

func (e *Encoder) BeginRenderPass(desc *render.RenderPassDescriptor) render.RenderPass {
	e.passes = append(e.passes, *desc)
	e.cmds = append(e.cmds, Command{Op: OpBeginPass, Resource: desc.Label})
	return &pass{enc: e}
}

func (e *Encoder) Finish() render.CommandBuffer {
	return &CommandBuffer{label: e.label, Passes: e.passes, Commands: e.cmds}
}

// CommandBuffer is the finished recording.
type CommandBuffer struct {
	label    string
	Passes   []render.RenderPassDescriptor
	Commands []Command
}

func (c *CommandBuffer) Label() string { return c.label }

// Filter returns the commands with the given op, in recording order.
func (c *CommandBuffer) Filter(op Op) []Command {
	var out []Command
	for _, cmd := range c.Commands {
		if cmd.Op == op {
			out = append(out, cmd)
		}
	}
	return out
}

type pass struct {
	enc *Encoder
}

func (p *pass) record(c Command) { p.enc.cmds = append(p.enc.cmds, c) }

func label(r render.Resource) string {
	if r == nil {
		return ""
	}
	return r.Label()
}

func (p *pass) SetPipeline(pl render.Pipeline) {
	p.record(Command{Op: OpSetPipeline, Resource: label(pl)})
}

func (p *pass) SetBindGroup(slot uint32, g render.BindGroup) {
	p.record(Command{Op: OpSetBindGroup, Slot: slot, Resource: label(g)})
}

func (p *pass) SetVertexBuffer(slot uint32, b render.Buffer) {
	p.record(Command{Op: OpSetVertexBuffer, Slot: slot, Resource: label(b)})
}

func (p *pass) SetIndexBuffer(b render.Buffer, format render.IndexFormat) {
	p.record(Command{Op: OpSetIndexBuffer, Resource: label(b), Format: format})
}

func (p *pass) DrawIndexed(indices render.Range, _ int32, instances render.Range) {
	p.record(Command{Op: OpDrawIndexed, Indices: indices, Instances: instances})
}

func (p *pass) End() {
	p.record(Command{Op: OpEndPass})
}

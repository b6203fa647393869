// Package render defines the GPU primitives consumed by the frame loop and
// assembles the per-frame render pass from them.
package render

// Resource is any GPU object handle owned by the backend.
type Resource interface {
	Label() string
}

type (
	Buffer        interface{ Resource }
	BindGroup     interface{ Resource }
	Pipeline      interface{ Resource }
	TextureView   interface{ Resource }
	CommandBuffer interface{ Resource }
)

// BufferUsage is a bit set describing how a buffer is bound.
type BufferUsage uint32

const (
	UsageVertex BufferUsage = 1 << iota
	UsageIndex
	UsageUniform
	UsageCopyDst
)

type BufferDescriptor struct {
	Label    string
	Contents []byte
	Usage    BufferUsage
}

type IndexFormat uint8

const (
	IndexUint16 IndexFormat = iota
	IndexUint32
)

// Range is a half-open [Start, End) range of indices or instances.
type Range struct {
	Start, End uint32
}

func (r Range) Len() uint32 {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Color is a linear RGBA clear color.
type Color struct {
	R, G, B, A float64
}

var (
	Black = Color{A: 1}
	White = Color{R: 1, G: 1, B: 1, A: 1}
)

// Device creates GPU resources. Implementations wrap the real graphics device.
type Device interface {
	CreateBuffer(desc BufferDescriptor) (Buffer, error)
	// CreateUniformBindGroup uploads contents into a uniform buffer and returns
	// a bind group exposing it to the shader stage.
	CreateUniformBindGroup(label string, contents []byte) (BindGroup, error)
	// CreateBindGroup exposes an existing uniform buffer, so later queue writes
	// are visible to the shader.
	CreateBindGroup(label string, uniform Buffer) (BindGroup, error)
	// CreateTextureBindGroup uploads RGBA8 pixels and returns a sampled-texture bind group.
	CreateTextureBindGroup(label string, width, height uint32, rgba []byte) (BindGroup, error)
	CreateCommandEncoder(label string) CommandEncoder
	// WaitIdle blocks until all submitted work completed.
	WaitIdle() error
}

type Queue interface {
	WriteBuffer(b Buffer, offset uint64, data []byte)
	Submit(cmds ...CommandBuffer)
}

type Surface interface {
	// CurrentTexture acquires the next swapchain texture. It may block on presentation backpressure.
	CurrentTexture() (SurfaceTexture, error)
	Configure(width, height uint32) error
}

type SurfaceTexture interface {
	View() TextureView
	Present()
}

type LoadOp uint8

const (
	LoadClear LoadOp = iota
	LoadKeep
)

type ColorAttachment struct {
	View       TextureView
	Load       LoadOp
	ClearValue Color
	Store      bool
}

type StencilOps struct {
	Load       LoadOp
	ClearValue uint32
	Store      bool
}

type DepthStencilAttachment struct {
	View       TextureView
	DepthLoad  LoadOp
	DepthClear float32
	DepthStore bool
	Stencil    *StencilOps // nil: no stencil operations
}

type RenderPassDescriptor struct {
	Label        string
	Color        ColorAttachment
	DepthStencil *DepthStencilAttachment
}

type CommandEncoder interface {
	BeginRenderPass(desc *RenderPassDescriptor) RenderPass
	Finish() CommandBuffer
}

type RenderPass interface {
	SetPipeline(p Pipeline)
	SetBindGroup(slot uint32, g BindGroup)
	SetVertexBuffer(slot uint32, b Buffer)
	SetIndexBuffer(b Buffer, format IndexFormat)
	DrawIndexed(indices Range, baseVertex int32, instances Range)
	End()
}

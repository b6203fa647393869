package entities

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/emberloop/ember/internal/core/entity"
	"github.com/emberloop/ember/internal/render"
)

// Vertex is the interleaved layout of vertex slot 0: position, texture
// coordinates, normal.
type Vertex struct {
	Position mgl32.Vec3
	TexCoord mgl32.Vec2
	Normal   mgl32.Vec3
}

const vertexFloats = 8

// Geometry is CPU-side mesh data waiting for upload.
type Geometry struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
}

// Mesh is a static model whose GPU resources are created lazily on first draw.
type Mesh struct {
	tag      string
	geometry Geometry
	color    [4]uint8

	model *render.Model
}

func NewMesh(tag string, g Geometry, color [4]uint8) *Mesh {
	return &Mesh{tag: tag, geometry: g, color: color}
}

func (m *Mesh) Configuration() entity.Configuration {
	return entity.Configuration{Tag: m.tag, Frequency: entity.Never, WantsRender: true}
}

func (m *Mesh) Prepare(dev render.Device) error {
	if len(m.geometry.Indices) == 0 {
		return fmt.Errorf("mesh %q: no indices", m.geometry.Name)
	}
	vb, err := dev.CreateBuffer(render.BufferDescriptor{
		Label:    m.geometry.Name + " Vertex Buffer",
		Contents: vertexBytes(m.geometry.Vertices),
		Usage:    render.UsageVertex,
	})
	if err != nil {
		return fmt.Errorf("mesh %q: %w", m.geometry.Name, err)
	}
	ib, err := dev.CreateBuffer(render.BufferDescriptor{
		Label:    m.geometry.Name + " Index Buffer",
		Contents: render.Uint32Bytes(m.geometry.Indices...),
		Usage:    render.UsageIndex,
	})
	if err != nil {
		return fmt.Errorf("mesh %q: %w", m.geometry.Name, err)
	}
	mat, err := dev.CreateTextureBindGroup(m.tag+" Material", 1, 1, m.color[:])
	if err != nil {
		return fmt.Errorf("mesh %q material: %w", m.geometry.Name, err)
	}
	m.model = &render.Model{
		Meshes: []render.Mesh{{
			Name:         m.geometry.Name,
			VertexBuffer: vb,
			IndexBuffer:  ib,
			NumElements:  uint32(len(m.geometry.Indices)),
			Material:     0,
		}},
		Materials: []render.Material{{Name: m.tag, BindGroup: mat}},
	}
	return nil
}

func (m *Mesh) Model() *render.Model { return m.model }

func vertexBytes(vs []Vertex) []byte {
	data := make([]float32, 0, len(vs)*vertexFloats)
	for _, v := range vs {
		data = append(data, v.Position[:]...)
		data = append(data, v.TexCoord[:]...)
		data = append(data, v.Normal[:]...)
	}
	return render.Float32Bytes(data...)
}

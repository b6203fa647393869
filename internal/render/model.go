package render

// Mesh is one indexed draw: vertex and index buffers plus the material it samples.
type Mesh struct {
	Name         string
	VertexBuffer Buffer
	IndexBuffer  Buffer
	NumElements  uint32
	Material     int
}

type Material struct {
	Name      string
	BindGroup BindGroup
}

// Model groups the meshes of a renderable entity with the materials they index.
type Model struct {
	Meshes    []Mesh
	Materials []Material
}

// Empty reports whether the model has nothing to draw.
func (m *Model) Empty() bool {
	return m == nil || len(m.Meshes) == 0
}

package render

// Bind group slots shared with the shader layer. Do not reorder.
const (
	SlotMaterial    uint32 = 0
	SlotCamera      uint32 = 1
	SlotAmbient     uint32 = 2
	SlotPointLights uint32 = 3
)

// Vertex buffer slots.
const (
	SlotVertices  uint32 = 0
	SlotInstances uint32 = 1
)

// PassInputs carries everything bound once per frame.
type PassInputs struct {
	Target        TextureView
	Depth         TextureView
	ClearColor    Color
	Pipeline      Pipeline
	Camera        BindGroup
	AmbientLight  BindGroup
	PointLights   BindGroup
	Instances     Buffer
	InstanceCount uint32
}

// PassStats summarizes a recorded pass.
type PassStats struct {
	Models  int
	Draws   int
	Skipped int // meshes whose material index is out of range
}

// RecordPass records the single render pass of a frame into enc: clear color and
// depth, bind the shared state once, then draw every mesh of every model in order.
func RecordPass(enc CommandEncoder, in *PassInputs, models []*Model) PassStats {
	pass := enc.BeginRenderPass(&RenderPassDescriptor{
		Label: "Render Pass",
		Color: ColorAttachment{
			View:       in.Target,
			Load:       LoadClear,
			ClearValue: in.ClearColor,
			Store:      true,
		},
		DepthStencil: &DepthStencilAttachment{
			View:       in.Depth,
			DepthLoad:  LoadClear,
			DepthClear: 1.0,
			DepthStore: true,
		},
	})

	pass.SetPipeline(in.Pipeline)
	pass.SetBindGroup(SlotCamera, in.Camera)
	pass.SetBindGroup(SlotAmbient, in.AmbientLight)
	pass.SetBindGroup(SlotPointLights, in.PointLights)

	stats := PassStats{Models: len(models)}
	instances := Range{Start: 0, End: in.InstanceCount}
	for _, m := range models {
		for i := range m.Meshes {
			mesh := &m.Meshes[i]
			if mesh.Material < 0 || mesh.Material >= len(m.Materials) {
				stats.Skipped++
				continue
			}
			pass.SetVertexBuffer(SlotVertices, mesh.VertexBuffer)
			pass.SetIndexBuffer(mesh.IndexBuffer, IndexUint32)
			pass.SetVertexBuffer(SlotInstances, in.Instances)
			pass.SetBindGroup(SlotMaterial, m.Materials[mesh.Material].BindGroup)
			pass.DrawIndexed(Range{Start: 0, End: mesh.NumElements}, 0, instances)
			stats.Draws++
		}
	}
	pass.End()
	return stats
}

package engine

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/emberloop/ember/internal/render"
)

// instanceSpacing is the distance between neighbouring instances on the grid.
const instanceSpacing = 3

// instanceTransforms lays count instances on a square grid in the XZ plane,
// centred on the origin, as column-major model matrices.
func instanceTransforms(count uint32) []mgl32.Mat4 {
	if count == 0 {
		return nil
	}
	side := uint32(1)
	for side*side < count {
		side++
	}
	offset := float32(side-1) * instanceSpacing / 2
	out := make([]mgl32.Mat4, 0, count)
	for i := uint32(0); i < count; i++ {
		x := float32(i%side)*instanceSpacing - offset
		z := float32(i/side)*instanceSpacing - offset
		out = append(out, mgl32.Translate3D(x, 0, z))
	}
	return out
}

func instanceBytes(transforms []mgl32.Mat4) []byte {
	data := make([]float32, 0, len(transforms)*16)
	for _, m := range transforms {
		data = append(data, m[:]...)
	}
	return render.Float32Bytes(data...)
}

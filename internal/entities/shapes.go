package entities

import "github.com/go-gl/mathgl/mgl32"

// Cube returns a unit cube centred on the origin with per-face normals.
func Cube(size float32) Geometry {
	h := size / 2
	faces := []struct {
		normal mgl32.Vec3
		u, v   mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	}
	g := Geometry{Name: "cube"}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, f := range faces {
		base := uint32(len(g.Vertices))
		for _, c := range corners {
			pos := f.normal.Mul(h).Add(f.u.Mul(c[0] * h)).Add(f.v.Mul(c[1] * h))
			g.Vertices = append(g.Vertices, Vertex{
				Position: pos,
				TexCoord: mgl32.Vec2{(c[0] + 1) / 2, (1 - c[1]) / 2},
				Normal:   f.normal,
			})
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}

// Plane returns a square in the XZ plane facing +Y.
func Plane(size float32) Geometry {
	h := size / 2
	up := mgl32.Vec3{0, 1, 0}
	return Geometry{
		Name: "plane",
		Vertices: []Vertex{
			{Position: mgl32.Vec3{-h, 0, h}, TexCoord: mgl32.Vec2{0, 1}, Normal: up},
			{Position: mgl32.Vec3{h, 0, h}, TexCoord: mgl32.Vec2{1, 1}, Normal: up},
			{Position: mgl32.Vec3{h, 0, -h}, TexCoord: mgl32.Vec2{1, 0}, Normal: up},
			{Position: mgl32.Vec3{-h, 0, -h}, TexCoord: mgl32.Vec2{0, 0}, Normal: up},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

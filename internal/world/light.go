package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/emberloop/ember/internal/render"
)

// PointLightSlots is fixed by the lighting shader stage.
const PointLightSlots = 4

type AmbientLight struct {
	Color    mgl32.Vec3
	Strength float32
}

// DefaultAmbientLight is dim white.
var DefaultAmbientLight = AmbientLight{Color: mgl32.Vec3{1, 1, 1}, Strength: 0.1}

// PointLight is one light slot. Unused slots hold a disabled zero light.
type PointLight struct {
	Color    mgl32.Vec3
	Position mgl32.Vec3
	Strength float32
	Enabled  bool
}

func (l AmbientLight) bytes() []byte {
	return render.Float32Bytes(l.Color[0], l.Color[1], l.Color[2], l.Strength)
}

// pointLightsBytes packs the four slots as two vec4s each:
// (color.rgb, strength) and (position.xyz, enabled).
func pointLightsBytes(lights [PointLightSlots]PointLight) []byte {
	values := make([]float32, 0, PointLightSlots*8)
	for _, l := range lights {
		enabled := float32(0)
		if l.Enabled {
			enabled = 1
		}
		values = append(values,
			l.Color[0], l.Color[1], l.Color[2], l.Strength,
			l.Position[0], l.Position[1], l.Position[2], enabled,
		)
	}
	return render.Float32Bytes(values...)
}

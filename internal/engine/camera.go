package engine

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/emberloop/ember/internal/core/entity"
	"github.com/emberloop/ember/internal/core/input"
	"github.com/emberloop/ember/internal/render"
)

// cameraUniformSize is the view-projection matrix plus the eye position (vec4).
const cameraUniformSize = (16 + 4) * 4

// Camera is a perspective fly camera driven by WASD, Space and LShift.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	Aspect float32
	FovY   float32 // degrees
	ZNear  float32
	ZFar   float32
	Speed  float32 // units per second

	queue   render.Queue
	uniform render.Buffer
	group   render.BindGroup

	dir mgl32.Vec3
}

func newCamera(dev render.Device, queue render.Queue, width, height uint32) (*Camera, error) {
	c := &Camera{
		Eye:    mgl32.Vec3{0, 1, 2},
		Target: mgl32.Vec3{0, 0, 0},
		Up:     mgl32.Vec3{0, 1, 0},
		FovY:   45,
		ZNear:  0.1,
		ZFar:   100,
		Speed:  4,
		queue:  queue,
	}
	c.SetAspect(width, height)

	var err error
	c.uniform, err = dev.CreateBuffer(render.BufferDescriptor{
		Label:    "Camera Buffer",
		Contents: c.uniformBytes(),
		Usage:    render.UsageUniform | render.UsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	c.group, err = dev.CreateBindGroup("Camera", c.uniform)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Camera) Configuration() entity.Configuration {
	return entity.Configuration{Tag: "camera", Frequency: entity.EveryCycle, WantsInput: true}
}

func (c *Camera) BindGroup() render.BindGroup { return c.group }

func (c *Camera) SetAspect(width, height uint32) {
	if height == 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// ViewProjection returns the combined matrix uploaded to the shader.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	view := mgl32.LookAtV(c.Eye, c.Target, c.Up)
	proj := mgl32.Perspective(mgl32.DegToRad(c.FovY), c.Aspect, c.ZNear, c.ZFar)
	return proj.Mul4(view)
}

// HandleInput turns held keys into a movement direction for the next update.
func (c *Camera) HandleInput(f *entity.Frame) []entity.Action {
	var d mgl32.Vec3
	axis := func(pos, neg input.Key) float32 {
		var v float32
		if f.Pressed(pos) {
			v++
		}
		if f.Pressed(neg) {
			v--
		}
		return v
	}
	d[2] = axis(input.KeyW, input.KeyS)
	d[0] = axis(input.KeyD, input.KeyA)
	d[1] = axis(input.KeySpace, input.KeyLShift)
	c.dir = d
	return nil
}

// Update moves the eye and target along the view direction and uploads the uniform.
func (c *Camera) Update(f *entity.Frame) []entity.Action {
	if c.dir != (mgl32.Vec3{}) {
		forward := c.Target.Sub(c.Eye)
		if forward.Len() > 0 {
			forward = forward.Normalize()
		}
		right := forward.Cross(c.Up)
		if right.Len() > 0 {
			right = right.Normalize()
		}
		step := c.Speed * float32(f.Delta)
		move := forward.Mul(c.dir[2]).Add(right.Mul(c.dir[0])).Add(c.Up.Mul(c.dir[1])).Mul(step)
		c.Eye = c.Eye.Add(move)
		c.Target = c.Target.Add(move)
	}
	c.queue.WriteBuffer(c.uniform, 0, c.uniformBytes())
	return nil
}

func (c *Camera) uniformBytes() []byte {
	vp := c.ViewProjection()
	data := make([]float32, 0, cameraUniformSize/4)
	data = append(data, vp[:]...)
	data = append(data, c.Eye[0], c.Eye[1], c.Eye[2], 1)
	return render.Float32Bytes(data...)
}

var _ entity.Camera = (*Camera)(nil)

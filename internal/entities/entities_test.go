package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/emberloop/ember/internal/core/entity"
	"github.com/emberloop/ember/internal/core/timer"
	"github.com/emberloop/ember/internal/render"
	"github.com/emberloop/ember/internal/render/headless"
)

func TestOneShotRemovesItself(t *testing.T) {
	o := NewOneShot("ping")
	actions := o.Update(&entity.Frame{})
	require.Len(t, actions, 1)
	assert.Equal(t, entity.ActionRemove, actions[0].Kind)
	assert.Equal(t, []string{"ping"}, actions[0].Tags)
	assert.Equal(t, entity.EveryCycle, o.Configuration().Frequency)
}

func TestHeartbeatLifetime(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := NewHeartbeat("hb", 2, zap.New(core))
	f := &entity.Frame{Second: &timer.Report{Seconds: 1, Cycles: 60}}

	assert.Nil(t, h.OnSecondUpdate(f))
	actions := h.OnSecondUpdate(f)
	require.Len(t, actions, 1)
	assert.Equal(t, []string{"hb"}, actions[0].Tags)
	assert.Equal(t, 2, logs.FilterMessage("heartbeat").Len())
}

func TestMeshPrepare(t *testing.T) {
	dev := headless.NewDevice()
	m := NewMesh("box", Cube(1), [4]uint8{255, 0, 0, 255})
	assert.Nil(t, m.Model())
	assert.Equal(t, entity.Never, m.Configuration().Frequency)
	assert.True(t, m.Configuration().WantsRender)

	require.NoError(t, m.Prepare(dev))
	model := m.Model()
	require.NotNil(t, model)
	require.Len(t, model.Meshes, 1)
	assert.Equal(t, uint32(36), model.Meshes[0].NumElements)
	require.Len(t, dev.Buffers, 2)
	assert.Len(t, dev.Buffers[0].Data, 24*vertexFloats*4)
	assert.Len(t, dev.Buffers[1].Data, 36*4)
	require.Len(t, dev.BindGroups, 1)
	assert.Equal(t, []byte{255, 0, 0, 255}, dev.BindGroups[0].Data)
}

func TestMeshPrepareFailure(t *testing.T) {
	dev := headless.NewDevice()
	dev.FailAllocations = true
	m := NewMesh("box", Plane(2), [4]uint8{})
	assert.ErrorIs(t, m.Prepare(dev), headless.ErrOutOfMemory)
	assert.Nil(t, m.Model())

	assert.Error(t, NewMesh("empty", Geometry{Name: "empty"}, [4]uint8{}).Prepare(headless.NewDevice()))
}

func TestCubeNormalsPointOutwards(t *testing.T) {
	g := Cube(2)
	require.Len(t, g.Vertices, 24)
	for _, v := range g.Vertices {
		assert.InDelta(t, 1.0, v.Position.Dot(v.Normal), 1e-6)
	}
}

func TestClearCycleSweepsChannelsInTurn(t *testing.T) {
	c := NewClearCycle("backdrop", 1)
	assert.Equal(t, entity.EveryCycle, c.Configuration().Frequency)

	step := func() render.Color {
		actions := c.Update(&entity.Frame{Delta: 0.5})
		require.Len(t, actions, 1)
		require.Equal(t, entity.ActionClearColor, actions[0].Kind)
		return actions[0].Color
	}
	assert.Equal(t, render.Color{R: 0.5, A: 1}, step())
	assert.Equal(t, render.Color{R: 1, A: 1}, step())
	assert.Equal(t, render.Color{R: 0.5, A: 1}, step())
	assert.Equal(t, render.Color{A: 1}, step())
	assert.Equal(t, render.Color{G: 0.5, A: 1}, step())
	assert.Equal(t, c.Color(), render.Color{G: 0.5, A: 1})
}

func TestClearCycleDefaultRate(t *testing.T) {
	c := NewClearCycle("backdrop", 0)
	c.Update(&entity.Frame{Delta: 1})
	assert.InDelta(t, DefaultClearCycleRate, c.Color().R, 1e-9)
}

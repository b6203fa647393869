package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventsAreDeliveredNextDispatch(t *testing.T) {
	b := NewBus()
	var got []string
	Subscribe(b, func(e EntityRemoved) { got = append(got, e.Tag) })

	Emit(b, EntityRemoved{Tag: "ping"})
	assert.Equal(t, 1, b.Pending())
	b.DispatchAll()
	assert.Empty(t, got)

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []string{"ping"}, got)
	assert.Zero(t, b.Pending())

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []string{"ping"}, got)
}

func TestEmitOnNilBusIsDropped(t *testing.T) {
	var b *Bus
	assert.NotPanics(t, func() { Emit(b, SurfaceResized{Width: 1, Height: 1}) })
}

func TestDispatchKeepsEmissionOrderAcrossTypes(t *testing.T) {
	b := NewBus()
	var got []string
	Subscribe(b, func(e EntitySpawned) { got = append(got, "spawned:"+e.Tag) })
	Subscribe(b, func(e EntityRemoved) { got = append(got, "removed:"+e.Tag) })
	Subscribe(b, func(e EntityRemoved) { got = append(got, "removed2:"+e.Tag) })

	Emit(b, EntityRemoved{Tag: "a"})
	Emit(b, EntitySpawned{Tag: "b"})
	Emit(b, EntityRemoved{Tag: "c"})
	b.SwapBuffers()
	b.DispatchAll()

	assert.Equal(t, []string{"removed:a", "removed2:a", "spawned:b", "removed:c", "removed2:c"}, got)
}

func TestEventsEmittedDuringDispatchWaitForNextSwap(t *testing.T) {
	b := NewBus()
	var spawned int
	Subscribe(b, func(e EntityRemoved) { Emit(b, EntitySpawned{Tag: e.Tag}) })
	Subscribe(b, func(EntitySpawned) { spawned++ })

	Emit(b, EntityRemoved{Tag: "x"})
	b.SwapBuffers()
	b.DispatchAll()
	assert.Zero(t, spawned)
	assert.Equal(t, 1, b.Pending())

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, 1, spawned)
}

// Package world holds the ordered entity set and scene state the frame loop
// updates and draws.
package world

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/emberloop/ember/internal/core/entity"
	"github.com/emberloop/ember/internal/core/event"
	"github.com/emberloop/ember/internal/render"
)

// World owns every entity container. Insertion order is update and draw order.
// Structural changes requested during a pass are queued and applied by ApplyDeferred.
type World struct {
	log *zap.Logger
	bus *event.Bus

	clearColor  render.Color
	duplication DuplicationBehaviour

	ids        *entity.IDPool
	containers []*entity.Container
	deferred   []entity.Action

	ambient      AmbientLight
	pointLights  [PointLightSlots]PointLight
	ambientGroup render.BindGroup
	pointGroup   render.BindGroup
}

func (w *World) ClearColor() render.Color                   { return w.clearColor }
func (w *World) SetClearColor(c render.Color)               { w.clearColor = c }
func (w *World) DuplicationBehaviour() DuplicationBehaviour { return w.duplication }
func (w *World) AmbientLight() AmbientLight                 { return w.ambient }
func (w *World) AmbientBindGroup() render.BindGroup         { return w.ambientGroup }
func (w *World) PointLightBindGroup() render.BindGroup      { return w.pointGroup }
func (w *World) PointLights() [PointLightSlots]PointLight   { return w.pointLights }

// PointLight returns the light in slot (0-3).
func (w *World) PointLight(slot int) (PointLight, error) {
	if slot < 0 || slot >= PointLightSlots {
		return PointLight{}, fmt.Errorf("point light slot %d: %w", slot, ErrInvalidLightSlot)
	}
	return w.pointLights[slot], nil
}

// AddEntity inserts e at the end of the world, applying the duplication policy.
func (w *World) AddEntity(e entity.Entity) (entity.ID, error) {
	tag := e.Configuration().Tag
	if w.duplication != Allow && w.Contains(tag) {
		if w.duplication == Reject {
			event.Emit(w.bus, event.EntityRejected{Tag: tag})
			return 0, fmt.Errorf("add entity %q: %w", tag, ErrDuplicateTag)
		}
		w.log.Warn("entity tag already present", zap.String("tag", tag))
	}

	c := entity.NewContainer(w.ids.Acquire(), e)
	if m := c.CapabilityMismatch(); m != "" {
		w.log.Warn("entity capability mismatch", zap.String("tag", tag), zap.String("mismatch", m))
	}
	w.containers = append(w.containers, c)
	event.Emit(w.bus, event.EntitySpawned{Tag: tag})
	return c.ID(), nil
}

// RemoveByTags removes every container whose tag is listed and returns the count.
// It must not be called while a pass is iterating; entities use Defer instead.
func (w *World) RemoveByTags(tags ...string) int {
	if len(tags) == 0 || len(w.containers) == 0 {
		return 0
	}
	drop := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		drop[t] = struct{}{}
	}
	kept := w.containers[:0]
	removed := 0
	for _, c := range w.containers {
		if _, ok := drop[c.Tag()]; ok {
			w.ids.Release(c.ID())
			event.Emit(w.bus, event.EntityRemoved{Tag: c.Tag()})
			removed++
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(w.containers); i++ {
		w.containers[i] = nil
	}
	w.containers = kept
	return removed
}

// Defer queues structural changes until ApplyDeferred.
func (w *World) Defer(actions ...entity.Action) {
	w.deferred = append(w.deferred, actions...)
}

// PendingActions returns the number of queued structural changes.
func (w *World) PendingActions() int { return len(w.deferred) }

// ApplyDeferred applies queued actions in request order. A clear color
// request is applied too but not counted; the last one in a cycle wins.
func (w *World) ApplyDeferred() (removed, spawned int) {
	if len(w.deferred) == 0 {
		return 0, 0
	}
	actions := w.deferred
	w.deferred = nil
	for _, a := range actions {
		switch a.Kind {
		case entity.ActionRemove:
			removed += w.RemoveByTags(a.Tags...)
		case entity.ActionSpawn:
			if a.Entity == nil {
				continue
			}
			if _, err := w.AddEntity(a.Entity); err != nil {
				w.log.Warn("deferred spawn rejected", zap.Error(err))
				continue
			}
			spawned++
		case entity.ActionClearColor:
			w.clearColor = a.Color
		}
	}
	return removed, spawned
}

func (w *World) Len() int { return len(w.containers) }

func (w *World) Contains(tag string) bool {
	for _, c := range w.containers {
		if c.IsTag(tag) {
			return true
		}
	}
	return false
}

// FindByTag returns the containers carrying tag in world order.
func (w *World) FindByTag(tag string) []*entity.Container {
	var out []*entity.Container
	for _, c := range w.containers {
		if c.IsTag(tag) {
			out = append(out, c)
		}
	}
	return out
}

// Get returns the container with the given ID if it is still alive.
func (w *World) Get(id entity.ID) (*entity.Container, bool) {
	if !w.ids.Alive(id) {
		return nil, false
	}
	for _, c := range w.containers {
		if c.ID() == id {
			return c, true
		}
	}
	return nil, false
}

// Each visits containers in world order.
func (w *World) Each(fn func(c *entity.Container)) {
	for _, c := range w.containers {
		fn(c)
	}
}

package world

import (
	"github.com/emberloop/ember/internal/core/entity"
	"github.com/emberloop/ember/internal/render"
)

// DispatchUpdate runs Update on every EveryCycle entity. Requested structural
// changes are deferred, so each entity present at the start is visited once.
func (w *World) DispatchUpdate(f *entity.Frame) {
	for _, c := range w.containers {
		if actions := c.Update(f); len(actions) > 0 {
			w.Defer(actions...)
		}
	}
}

// DispatchSecond runs OnSecondUpdate on every OnSecond entity.
func (w *World) DispatchSecond(f *entity.Frame) {
	for _, c := range w.containers {
		if actions := c.SecondUpdate(f); len(actions) > 0 {
			w.Defer(actions...)
		}
	}
}

// DispatchInput hands the frame's input snapshot to entities that asked for it.
func (w *World) DispatchInput(f *entity.Frame) {
	for _, c := range w.containers {
		if actions := c.HandleInput(f); len(actions) > 0 {
			w.Defer(actions...)
		}
	}
}

// CollectModels returns, in world order, the models of every renderable entity.
// Entities are prepared lazily here; failed ones are skipped but stay in the world.
func (w *World) CollectModels(dev render.Device) []*render.Model {
	models := make([]*render.Model, 0, len(w.containers))
	for _, c := range w.containers {
		if !c.WantsRender() {
			continue
		}
		if c.Preparation() == entity.Unprepared {
			c.Prepare(dev, w.log)
		}
		if m := c.Model(); !m.Empty() {
			models = append(models, m)
		}
	}
	return models
}

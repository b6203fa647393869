package entity

import (
	"go.uber.org/zap"

	"github.com/emberloop/ember/internal/render"
)

// Preparation tracks GPU resource creation for a container.
type Preparation uint8

const (
	Unprepared Preparation = iota
	Prepared
	PreparationFailed // never retried unless ResetPreparation is called
)

func (p Preparation) String() string {
	switch p {
	case Prepared:
		return "prepared"
	case PreparationFailed:
		return "failed"
	default:
		return "unprepared"
	}
}

// Container owns one entity, its configuration snapshot and preparation state.
type Container struct {
	id     ID
	cfg    Configuration
	entity Entity
	prep   Preparation

	updater    Updater
	second     SecondUpdater
	input      InputHandler
	renderable Renderable
}

func NewContainer(id ID, e Entity) *Container {
	c := &Container{id: id, cfg: e.Configuration(), entity: e}
	c.updater, _ = e.(Updater)
	c.second, _ = e.(SecondUpdater)
	c.input, _ = e.(InputHandler)
	c.renderable, _ = e.(Renderable)
	return c
}

func (c *Container) ID() ID                       { return c.id }
func (c *Container) Configuration() Configuration { return c.cfg }
func (c *Container) Entity() Entity               { return c.entity }
func (c *Container) Tag() string                  { return c.cfg.Tag }
func (c *Container) IsTag(tag string) bool        { return c.cfg.Tag == tag }
func (c *Container) Preparation() Preparation     { return c.prep }
func (c *Container) IsPrepared() bool             { return c.prep == Prepared }

// WantsRender is true when the entity asked to be drawn and can be.
func (c *Container) WantsRender() bool { return c.cfg.WantsRender && c.renderable != nil }

// WantsInput is true when the entity asked for input and handles it.
func (c *Container) WantsInput() bool { return c.cfg.WantsInput && c.input != nil }

// CapabilityMismatch names a declared capability the entity does not implement.
func (c *Container) CapabilityMismatch() string {
	switch {
	case c.cfg.Frequency == EveryCycle && c.updater == nil:
		return "EveryCycle without Update"
	case c.cfg.Frequency == OnSecond && c.second == nil:
		return "OnSecond without OnSecondUpdate"
	case c.cfg.WantsInput && c.input == nil:
		return "WantsInput without HandleInput"
	case c.cfg.WantsRender && c.renderable == nil:
		return "WantsRender without Prepare/Model"
	}
	return ""
}

// Prepare creates the entity's GPU resources the first time it is called.
// A failure is logged and remembered; later calls do nothing.
func (c *Container) Prepare(dev render.Device, log *zap.Logger) bool {
	if c.prep != Unprepared || c.renderable == nil {
		return c.prep == Prepared
	}
	if err := c.renderable.Prepare(dev); err != nil {
		c.prep = PreparationFailed
		log.Error("entity preparation failed, excluded from rendering",
			zap.String("tag", c.cfg.Tag), zap.Error(err))
		return false
	}
	c.prep = Prepared
	return true
}

// ResetPreparation allows one more preparation attempt.
func (c *Container) ResetPreparation() { c.prep = Unprepared }

// Model returns the entity's model when it is prepared and wants rendering.
func (c *Container) Model() *render.Model {
	if !c.WantsRender() || c.prep != Prepared {
		return nil
	}
	return c.renderable.Model()
}

// Update runs the per-cycle update for EveryCycle entities.
func (c *Container) Update(f *Frame) []Action {
	if c.cfg.Frequency != EveryCycle || c.updater == nil {
		return nil
	}
	return c.updater.Update(f)
}

// SecondUpdate runs the per-second update for OnSecond entities.
func (c *Container) SecondUpdate(f *Frame) []Action {
	if c.cfg.Frequency != OnSecond || c.second == nil {
		return nil
	}
	return c.second.OnSecondUpdate(f)
}

// HandleInput dispatches input to entities that asked for it.
func (c *Container) HandleInput(f *Frame) []Action {
	if !c.WantsInput() {
		return nil
	}
	return c.input.HandleInput(f)
}

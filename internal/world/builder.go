package world

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/emberloop/ember/internal/core/entity"
	"github.com/emberloop/ember/internal/core/event"
	"github.com/emberloop/ember/internal/render"
)

var ErrInvalidLightSlot = errors.New("invalid point light slot")

// Builder stages world settings. Unset values get defaults in Build.
type Builder struct {
	clearColor  *render.Color
	duplication *DuplicationBehaviour
	ambient     *AmbientLight
	pointLights [PointLightSlots]*PointLight
	entities    []entity.Entity
	bus         *event.Bus
	err         error
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) WithClearColor(c render.Color) *Builder {
	b.clearColor = &c
	return b
}

func (b *Builder) WithDuplicationBehaviour(d DuplicationBehaviour) *Builder {
	b.duplication = &d
	return b
}

func (b *Builder) WithAmbientLight(color mgl32.Vec3, strength float32) *Builder {
	b.ambient = &AmbientLight{Color: color, Strength: strength}
	return b
}

// WithPointLight sets slot 0-3. An invalid slot makes Build fail.
func (b *Builder) WithPointLight(slot int, color, position mgl32.Vec3, strength float32) *Builder {
	if slot < 0 || slot >= PointLightSlots {
		b.err = errors.Join(b.err, fmt.Errorf("point light slot %d: %w", slot, ErrInvalidLightSlot))
		return b
	}
	b.pointLights[slot] = &PointLight{Color: color, Position: position, Strength: strength, Enabled: true}
	return b
}

func (b *Builder) WithEntities(entities ...entity.Entity) *Builder {
	b.entities = append(b.entities, entities...)
	return b
}

// WithEventBus makes the world emit spawn/remove events on bus.
func (b *Builder) WithEventBus(bus *event.Bus) *Builder {
	b.bus = bus
	return b
}

// Build materializes defaults, creates the light bind groups on dev and then
// adds the staged entities through AddEntity, so the duplication policy applies.
func (b *Builder) Build(dev render.Device, log *zap.Logger) (*World, error) {
	if b.err != nil {
		return nil, b.err
	}
	w := &World{
		log:         log,
		bus:         b.bus,
		clearColor:  render.Black,
		duplication: WarnOnDuplication,
		ambient:     DefaultAmbientLight,
		ids:         entity.NewIDPool(),
		containers:  make([]*entity.Container, 0, len(b.entities)),
	}
	if b.clearColor != nil {
		w.clearColor = *b.clearColor
	}
	if b.duplication != nil {
		w.duplication = *b.duplication
	}
	if b.ambient != nil {
		w.ambient = *b.ambient
	}
	for i, l := range b.pointLights {
		if l != nil {
			w.pointLights[i] = *l
		}
	}

	var err error
	w.ambientGroup, err = dev.CreateUniformBindGroup("Ambient Light", w.ambient.bytes())
	if err != nil {
		return nil, fmt.Errorf("ambient light: %w", err)
	}
	w.pointGroup, err = dev.CreateUniformBindGroup("Point Lights", pointLightsBytes(w.pointLights))
	if err != nil {
		return nil, fmt.Errorf("point lights: %w", err)
	}

	for _, e := range b.entities {
		if _, err := w.AddEntity(e); err != nil {
			log.Warn("entity not added to world", zap.Error(err))
		}
	}
	return w, nil
}

// Package entity defines world objects as a set of optional capabilities and
// the container the world wraps each of them in.
package entity

import (
	"fmt"
	"strings"

	"github.com/emberloop/ember/internal/render"
)

// UpdateFrequency selects which update pass schedules an entity.
type UpdateFrequency uint8

const (
	Never      UpdateFrequency = iota // not scheduled by the loop
	EveryCycle                        // Update on every poll cycle
	OnSecond                          // OnSecondUpdate once per second boundary
)

func (f UpdateFrequency) String() string {
	switch f {
	case EveryCycle:
		return "cycle"
	case OnSecond:
		return "second"
	default:
		return "never"
	}
}

// ParseFrequency accepts "cycle", "second" or "never" (alias "slow").
func ParseFrequency(s string) (UpdateFrequency, error) {
	switch strings.ToLower(s) {
	case "cycle", "every_cycle":
		return EveryCycle, nil
	case "second", "on_second":
		return OnSecond, nil
	case "never", "slow", "":
		return Never, nil
	}
	return Never, fmt.Errorf("unknown update frequency %q", s)
}

// Configuration is snapshotted when an entity enters the world. Changing the
// values an entity reports afterwards has no effect.
type Configuration struct {
	Tag         string
	Frequency   UpdateFrequency
	WantsInput  bool
	WantsRender bool
}

// Entity is the minimal world object. Capabilities are opt-in via the
// interfaces below and discovered once at insertion.
type Entity interface {
	Configuration() Configuration
}

type Updater interface {
	Update(f *Frame) []Action
}

type SecondUpdater interface {
	OnSecondUpdate(f *Frame) []Action
}

type InputHandler interface {
	HandleInput(f *Frame) []Action
}

// Renderable entities create their GPU resources in Prepare and expose them via Model.
type Renderable interface {
	Prepare(dev render.Device) error
	Model() *render.Model
}

// Camera is owned by the render backend, not the world. It follows the
// entity update and input contract and exposes its uniform bind group.
type Camera interface {
	Entity
	Updater
	InputHandler
	BindGroup() render.BindGroup
}

// Package entities provides the built-in world objects scenes can place.
package entities

import "github.com/emberloop/ember/internal/core/entity"

// OneShot removes itself on its first update. Useful as a liveness check.
type OneShot struct {
	tag     string
	Updates int
}

func NewOneShot(tag string) *OneShot { return &OneShot{tag: tag} }

func (o *OneShot) Configuration() entity.Configuration {
	return entity.Configuration{Tag: o.tag, Frequency: entity.EveryCycle}
}

func (o *OneShot) Update(*entity.Frame) []entity.Action {
	o.Updates++
	return []entity.Action{entity.Remove(o.tag)}
}

package entity

import "github.com/emberloop/ember/internal/render"

// ActionKind is a structural change requested by an entity.
type ActionKind uint8

const (
	ActionRemove ActionKind = iota
	ActionSpawn
	ActionClearColor
)

// Action is returned from update passes and applied by the world once the
// pass over the current entity set has finished.
type Action struct {
	Kind   ActionKind
	Tags   []string
	Entity Entity
	Color  render.Color
}

// Remove requests removal of every entity carrying one of the tags.
func Remove(tags ...string) Action {
	return Action{Kind: ActionRemove, Tags: tags}
}

// Spawn requests that e be added to the world.
func Spawn(e Entity) Action {
	return Action{Kind: ActionSpawn, Entity: e}
}

// SetClearColor requests a new world clear color, used from the next render.
func SetClearColor(c render.Color) Action {
	return Action{Kind: ActionClearColor, Color: c}
}

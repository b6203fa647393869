package app

import (
	"time"

	"github.com/emberloop/ember/internal/config"
	"github.com/emberloop/ember/internal/core/event"
)

type Option func(*App)

// WithStore persists window geometry after every successful resize.
func WithStore(s config.Store) Option {
	return func(a *App) { a.store = s }
}

// WithEventBus shares the bus the world emits on. Without it the app creates its own.
func WithEventBus(b *event.Bus) Option {
	return func(a *App) { a.bus = b }
}

// WithClock replaces the wall clock used for frame timing.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

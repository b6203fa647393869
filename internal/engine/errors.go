package engine

import "errors"

var (
	ErrNoAdapter       = errors.New("engine: no suitable graphics adapter")
	ErrSurface         = errors.New("engine: surface unavailable")
	ErrResourceMissing = errors.New("engine: resource missing")
)

package entities

import (
	"go.uber.org/zap"

	"github.com/emberloop/ember/internal/core/entity"
)

// Heartbeat logs once per second and removes itself after Lifetime beats (0 = forever).
type Heartbeat struct {
	tag      string
	log      *zap.Logger
	Lifetime int
	Beats    int
}

func NewHeartbeat(tag string, lifetime int, log *zap.Logger) *Heartbeat {
	return &Heartbeat{tag: tag, log: log, Lifetime: lifetime}
}

func (h *Heartbeat) Configuration() entity.Configuration {
	return entity.Configuration{Tag: h.tag, Frequency: entity.OnSecond}
}

func (h *Heartbeat) OnSecondUpdate(f *entity.Frame) []entity.Action {
	h.Beats++
	fields := []zap.Field{zap.String("tag", h.tag), zap.Int("beat", h.Beats)}
	if f.Second != nil {
		fields = append(fields, zap.Uint64("ups", f.Second.Cycles))
	}
	h.log.Info("heartbeat", fields...)
	if h.Lifetime > 0 && h.Beats >= h.Lifetime {
		return []entity.Action{entity.Remove(h.tag)}
	}
	return nil
}

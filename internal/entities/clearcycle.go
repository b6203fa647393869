package entities

import (
	"github.com/emberloop/ember/internal/core/entity"
	"github.com/emberloop/ember/internal/render"
)

// DefaultClearCycleRate is the channel change per second.
const DefaultClearCycleRate = 0.25

// ClearCycle animates the world clear color. It fades the red channel up to
// 1 and back down to 0, then green, then blue, and starts over.
type ClearCycle struct {
	tag    string
	rate   float64
	color  render.Color
	active int
	rising bool
}

// NewClearCycle starts from black. A rate <= 0 uses DefaultClearCycleRate.
func NewClearCycle(tag string, rate float64) *ClearCycle {
	if rate <= 0 {
		rate = DefaultClearCycleRate
	}
	return &ClearCycle{tag: tag, rate: rate, color: render.Black, rising: true}
}

func (c *ClearCycle) Configuration() entity.Configuration {
	return entity.Configuration{Tag: c.tag, Frequency: entity.EveryCycle}
}

// Color returns the color requested by the last update.
func (c *ClearCycle) Color() render.Color { return c.color }

func (c *ClearCycle) Update(f *entity.Frame) []entity.Action {
	v := c.channel()
	step := c.rate * f.Delta
	if c.rising {
		*v += step
		if *v >= 1 {
			*v = 1
			c.rising = false
		}
	} else {
		*v -= step
		if *v <= 0 {
			*v = 0
			c.rising = true
			c.active = (c.active + 1) % 3
		}
	}
	return []entity.Action{entity.SetClearColor(c.color)}
}

func (c *ClearCycle) channel() *float64 {
	switch c.active {
	case 1:
		return &c.color.G
	case 2:
		return &c.color.B
	default:
		return &c.color.R
	}
}

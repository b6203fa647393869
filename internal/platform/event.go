// Package platform defines the window and event-loop boundary. Real
// implementations translate OS events into these types.
package platform

import (
	"time"

	"github.com/emberloop/ember/internal/core/input"
)

type WindowID uint64

type DeviceID uint64

// Event is anything the event loop delivers to the handler.
type Event interface{ isEvent() }

// WindowEvent wraps an event addressed to a specific window.
type WindowEvent struct {
	Window WindowID
	Event  WindowEventKind
}

// WindowEventKind is the payload of a WindowEvent.
type WindowEventKind interface{ isWindowEvent() }

type Resized struct{ Width, Height uint32 }

// ScaleFactorChanged carries the new inner size after a DPI change.
type ScaleFactorChanged struct {
	ScaleFactor float64
	Width       uint32
	Height      uint32
}

type KeyboardInput struct {
	Device    DeviceID
	Key       input.Key
	State     input.State
	Synthetic bool
}

type CloseRequested struct{}

// MainEventsCleared is delivered once all window events of an iteration are processed.
type MainEventsCleared struct{}

type RedrawRequested struct{ Window WindowID }

// RedrawEventsCleared is the last event of an iteration.
type RedrawEventsCleared struct{}

func (WindowEvent) isEvent()         {}
func (MainEventsCleared) isEvent()   {}
func (RedrawRequested) isEvent()     {}
func (RedrawEventsCleared) isEvent() {}

func (Resized) isWindowEvent()            {}
func (ScaleFactorChanged) isWindowEvent() {}
func (KeyboardInput) isWindowEvent()      {}
func (CloseRequested) isWindowEvent()     {}

// ControlMode tells the event loop how to continue after an event.
type ControlMode uint8

const (
	Poll      ControlMode = iota // start the next iteration immediately
	WaitUntil                    // sleep until Deadline before the next iteration
	Exit
)

type ControlFlow struct {
	Mode     ControlMode
	Deadline time.Time
}

// Handler processes one event and updates flow.
type Handler func(ev Event, flow *ControlFlow)

// Window is the single application window.
type Window interface {
	ID() WindowID
	RequestRedraw()
	SetTitle(title string)
	InnerSize() (width, height uint32)
}

// EventLoop runs on the calling goroutine until the handler sets Exit.
type EventLoop interface {
	Run(h Handler) error
}

package platform

import (
	"context"
	"sync/atomic"
	"time"
)

var nextWindowID atomic.Uint64

// HeadlessWindow is an off-screen window. The first iteration always redraws.
type HeadlessWindow struct {
	id      WindowID
	width   uint32
	height  uint32
	title   string
	redraw  bool
	Redraws int
}

func NewHeadlessWindow(width, height uint32, title string) *HeadlessWindow {
	return &HeadlessWindow{
		id:     WindowID(nextWindowID.Add(1)),
		width:  width,
		height: height,
		title:  title,
		redraw: true,
	}
}

func (w *HeadlessWindow) ID() WindowID                      { return w.id }
func (w *HeadlessWindow) SetTitle(title string)             { w.title = title }
func (w *HeadlessWindow) Title() string                     { return w.title }
func (w *HeadlessWindow) InnerSize() (width, height uint32) { return w.width, w.height }

func (w *HeadlessWindow) RequestRedraw() {
	w.redraw = true
	w.Redraws++
}

// Resize changes the inner size and returns the event a real platform would deliver.
func (w *HeadlessWindow) Resize(width, height uint32) WindowEvent {
	if width > 0 && height > 0 {
		w.width, w.height = width, height
	}
	return WindowEvent{Window: w.id, Event: Resized{Width: width, Height: height}}
}

func (w *HeadlessWindow) takeRedraw() bool {
	r := w.redraw
	w.redraw = false
	return r
}

// HeadlessLoop drives the handler with scripted events in the same order a
// desktop event loop uses: window events, MainEventsCleared, RedrawRequested
// (if requested), RedrawEventsCleared.
type HeadlessLoop struct {
	window        *HeadlessWindow
	script        map[uint64][]Event
	maxIterations uint64
	sleep         func(time.Duration)
	stop          context.Context

	Iterations uint64
}

// NewHeadlessLoop stops on its own after maxIterations (0 runs until Exit).
func NewHeadlessLoop(win *HeadlessWindow, maxIterations uint64) *HeadlessLoop {
	return &HeadlessLoop{
		window:        win,
		script:        make(map[uint64][]Event),
		maxIterations: maxIterations,
		sleep:         time.Sleep,
	}
}

// At schedules events for delivery at the start of iteration n (1-based).
func (l *HeadlessLoop) At(n uint64, evs ...Event) *HeadlessLoop {
	l.script[n] = append(l.script[n], evs...)
	return l
}

// StopOn delivers CloseRequested once ctx is done, the way a desktop loop
// reports the window manager closing the window.
func (l *HeadlessLoop) StopOn(ctx context.Context) *HeadlessLoop {
	l.stop = ctx
	return l
}

// Key schedules a keyboard event for iteration n.
func (l *HeadlessLoop) Key(n uint64, ev KeyboardInput) *HeadlessLoop {
	return l.At(n, WindowEvent{Window: l.window.id, Event: ev})
}

func (l *HeadlessLoop) Run(h Handler) error {
	flow := ControlFlow{Mode: Poll}
	deliver := func(ev Event) bool {
		h(ev, &flow)
		return flow.Mode == Exit
	}

	for n := uint64(1); l.maxIterations == 0 || n <= l.maxIterations; n++ {
		l.Iterations = n
		if l.stop != nil && l.stop.Err() != nil {
			if deliver(WindowEvent{Window: l.window.id, Event: CloseRequested{}}) {
				return nil
			}
		}
		for _, ev := range l.script[n] {
			if deliver(ev) {
				return nil
			}
		}
		if deliver(MainEventsCleared{}) {
			return nil
		}
		if l.window.takeRedraw() {
			if deliver(RedrawRequested{Window: l.window.id}) {
				return nil
			}
		}
		if deliver(RedrawEventsCleared{}) {
			return nil
		}
		if flow.Mode == WaitUntil {
			if d := time.Until(flow.Deadline); d > 0 {
				l.sleep(d)
			}
		}
	}
	return nil
}

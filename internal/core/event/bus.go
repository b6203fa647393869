package event

import (
	"reflect"
	"sync"
)

type queued struct {
	kind  reflect.Type
	value any
}

// Bus is a double-buffered frame event bus. Events emitted during cycle N are
// delivered at the start of cycle N+1, in emission order, when the dispatch
// phase runs.
type Bus struct {
	mu       sync.Mutex // guards handler registration only
	front    []queued
	back     []queued
	handlers map[reflect.Type][]func(any)
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[reflect.Type][]func(any))}
}

func typeOf[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

// Emit queues an event for the next dispatch. A nil bus drops the event.
func Emit[T any](b *Bus, event T) {
	if b == nil {
		return
	}
	b.back = append(b.back, queued{kind: typeOf[T](), value: event})
}

// Subscribe registers a handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := typeOf[T]()
	b.handlers[t] = append(b.handlers[t], func(v any) { fn(v.(T)) })
}

// SwapBuffers makes the queued events current and starts an empty queue.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front[:0]
}

// DispatchAll delivers the current events. Handlers registered for a type run
// in subscription order; events of different types keep their emission order.
func (b *Bus) DispatchAll() {
	for i := range b.front {
		ev := b.front[i]
		for _, h := range b.handlers[ev.kind] {
			h(ev.value)
		}
	}
}

// Pending returns the number of events waiting for the next dispatch.
func (b *Bus) Pending() int { return len(b.back) }

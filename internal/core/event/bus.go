package event

import "reflect"

// Bus is a synchronous, type-keyed event bus. Emit calls every handler
// subscribed to the event's type immediately, in subscription order, before
// returning. Reset drops all subscriptions; the frame runner resets it and
// lets systems re-subscribe at the start of every frame, so a handler never
// outlives the system that registered it.
//
// A Bus is not safe for concurrent use.
type Bus struct {
	handlers map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[reflect.Type][]any),
	}
}

// Subscribe registers fn for events of type T. Subscribing the same function
// twice makes it run twice per emission.
func Subscribe[T any](b *Bus, fn func(T)) {
	t := reflect.TypeFor[T]()
	b.handlers[t] = append(b.handlers[t], fn)
}

// Emit delivers ev to every handler of T. With no handlers it does nothing.
// Handlers subscribed while Emit runs are not called for this event.
func Emit[T any](b *Bus, ev T) {
	hs := b.handlers[reflect.TypeFor[T]()]
	for _, h := range hs {
		// Safe: Subscribe stores func(T) under T's key.
		h.(func(T))(ev)
	}
}

// HandlerCount returns the number of handlers subscribed to T.
func HandlerCount[T any](b *Bus) int {
	return len(b.handlers[reflect.TypeFor[T]()])
}

// Len returns the number of handlers across all event types.
func (b *Bus) Len() int {
	n := 0
	for _, hs := range b.handlers {
		n += len(hs)
	}
	return n
}

// Reset clears all subscriptions.
func (b *Bus) Reset() {
	clear(b.handlers)
}

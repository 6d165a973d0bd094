package emitter

// EventEmitter is the capability set an Emitter grants. Embedding an Emitter[K] in any
// struct makes that struct satisfy EventEmitter[K] while its registry stays private to it.
//
//	type Door struct {
//		emitter.Emitter[string]
//	}
//
//	d := &Door{}
//	d.On("open", emitter.NewListener(onOpen))
//	d.Emit("open")
type EventEmitter[K comparable] interface {
	// On registers a listener for the given event.
	On(event K, l *Listener, opts ...SubscribeOption) (*Subscription[K], error)

	// Once registers a listener that is removed before its first invocation runs.
	Once(event K, l *Listener, opts ...SubscribeOption) (*Subscription[K], error)

	// When registers a listener that stays until it returns true.
	When(event K, l *Listener, opts ...SubscribeOption) (*Subscription[K], error)

	// Off removes the specified listener from the given event.
	Off(event K, l *Listener, opts ...SubscribeOption)

	// RemoveListeners removes all listeners of the given event.
	RemoveListeners(event K)

	// RemoveAllListeners removes all listeners for all events.
	RemoveAllListeners()

	// Emit triggers all listeners registered for the given event synchronously.
	Emit(event K, args ...any) error

	// Trigger is an alias of Emit.
	Trigger(event K, args ...any) error

	// Listeners returns the subscriptions of the given event in dispatch order.
	Listeners(event K) []*Subscription[K]
}

var _ EventEmitter[string] = (*Emitter[string])(nil)

// Ops holds an emitter's operations as plain function values, for wiring them into
// records or structs that cannot embed an Emitter.
type Ops[K comparable] struct {
	On                 func(event K, l *Listener, opts ...SubscribeOption) (*Subscription[K], error)
	Once               func(event K, l *Listener, opts ...SubscribeOption) (*Subscription[K], error)
	When               func(event K, l *Listener, opts ...SubscribeOption) (*Subscription[K], error)
	Off                func(event K, l *Listener, opts ...SubscribeOption)
	RemoveListeners    func(event K)
	RemoveAllListeners func()
	Emit               func(event K, args ...any) error
	Trigger            func(event K, args ...any) error
	Listeners          func(event K) []*Subscription[K]
}

// Export returns the operations of e bound to e. Every function in the result acts on
// e's registry.
func Export[K comparable](e *Emitter[K]) Ops[K] {
	return Ops[K]{
		On:                 e.On,
		Once:               e.Once,
		When:               e.When,
		Off:                e.Off,
		RemoveListeners:    e.RemoveListeners,
		RemoveAllListeners: e.RemoveAllListeners,
		Emit:               e.Emit,
		Trigger:            e.Trigger,
		Listeners:          e.Listeners,
	}
}

// Package emitter provides a synchronous, per-instance event emitter. Listeners are
// grouped by event key, invoked in subscription order and may be bound to a receiver.
// Any type gains the emitter operations by embedding an Emitter.
package emitter

import (
	"slices"
	"sync"

	"github.com/pkg/errors"
)

// Emitter maps events (of type K) to ordered subscriptions. The zero value is ready to
// use, which makes it suitable for embedding. An Emitter must not be copied after use.
type Emitter[K comparable] struct {
	mu        sync.Mutex
	listeners map[K][]*Subscription[K]
	opts      options
}

// New creates a new Emitter and returns a pointer to it.
func New[K comparable](opts ...Option) *Emitter[K] {
	e := &Emitter[K]{
		listeners: make(map[K][]*Subscription[K]),
	}
	for _, opt := range opts {
		opt(&e.opts)
	}
	return e
}

// On registers l for event. Subscribing the same listener and receiver twice returns
// the existing subscription.
func (e *Emitter[K]) On(event K, l *Listener, opts ...SubscribeOption) (*Subscription[K], error) {
	return e.subscribe(event, KindOn, l, opts)
}

// Once registers l for the next dispatch of event only.
func (e *Emitter[K]) Once(event K, l *Listener, opts ...SubscribeOption) (*Subscription[K], error) {
	return e.subscribe(event, KindOnce, l, opts)
}

// When registers l for every dispatch of event until it returns true. l should be
// built with NewCondition; a plain listener never completes.
func (e *Emitter[K]) When(event K, l *Listener, opts ...SubscribeOption) (*Subscription[K], error) {
	return e.subscribe(event, KindWhen, l, opts)
}

func (e *Emitter[K]) subscribe(
	event K,
	kind Kind,
	l *Listener,
	opts []SubscribeOption,
) (*Subscription[K], error) {
	if !l.valid() {
		return nil, errors.Wrapf(ErrInvalidListener, "cannot subscribe %s listener to %v", kind, event)
	}

	so := newSubscribeOptions(opts)

	e.mu.Lock()
	if e.listeners == nil {
		e.listeners = make(map[K][]*Subscription[K])
	}

	list := e.listeners[event]
	for _, s := range list {
		if s.matches(l, so) {
			e.mu.Unlock()
			return s, nil
		}
	}

	s := &Subscription[K]{
		id:       e.ids().New(),
		event:    event,
		kind:     kind,
		listener: l,
		receiver: so.receiver,
		bound:    so.bound,
		owner:    e,
	}
	e.listeners[event] = append(list, s)
	e.mu.Unlock()

	e.loggerFor(s).Debugf("subscribed %s listener", kind)

	return s, nil
}

// Off removes the most recently added subscription of l to event. With Bind, only a
// subscription bound to the same receiver is removed. Nothing happens when no
// subscription matches.
func (e *Emitter[K]) Off(event K, l *Listener, opts ...SubscribeOption) {
	if l == nil {
		return
	}

	so := newSubscribeOptions(opts)

	e.mu.Lock()
	var removed *Subscription[K]
	list := e.listeners[event]
	for i := len(list) - 1; i >= 0; i-- {
		s := list[i]
		if s.listener != l {
			continue
		}
		if so.bound && !(s.bound && sameReceiver(s.receiver, so.receiver)) {
			continue
		}
		e.detachAt(event, i)
		removed = s
		break
	}
	e.mu.Unlock()

	if removed != nil {
		e.loggerFor(removed).Debugf("unsubscribed %s listener", removed.kind)
	}
}

// RemoveListeners removes every subscription of event.
func (e *Emitter[K]) RemoveListeners(event K) {
	e.mu.Lock()
	list := e.listeners[event]
	for _, s := range list {
		s.removed = true
	}
	delete(e.listeners, event)
	e.mu.Unlock()

	if len(list) > 0 {
		e.logger().WithField("event", event).Debugf("removed %d listener(s)", len(list))
	}
}

// RemoveAllListeners removes every subscription of every event.
func (e *Emitter[K]) RemoveAllListeners() {
	e.mu.Lock()
	n := 0
	for _, list := range e.listeners {
		for _, s := range list {
			s.removed = true
		}
		n += len(list)
	}
	e.listeners = make(map[K][]*Subscription[K])
	e.mu.Unlock()

	if n > 0 {
		e.logger().Debugf("removed all %d listener(s)", n)
	}
}

// Emit invokes every listener of event synchronously, in subscription order, with args.
// The listener list is captured when Emit starts: listeners added meanwhile wait for the
// next dispatch, and listeners removed before their turn are skipped. Listeners may
// subscribe, unsubscribe and emit from within their callback.
//
// A panicking listener does not stop the pass. Its panic is recovered and reported in
// the returned *DispatchError, unless the Emitter was built with WithPanicPropagation.
func (e *Emitter[K]) Emit(event K, args ...any) error {
	e.mu.Lock()
	snapshot := slices.Clone(e.listeners[event])
	e.mu.Unlock()

	var failures []error
	for _, s := range snapshot {
		if !e.claim(s) {
			continue
		}
		if err := e.invoke(s, args); err != nil {
			failures = append(failures, err)
		}
	}

	return wrapDispatchError(event, failures)
}

// Trigger is an alias of Emit.
func (e *Emitter[K]) Trigger(event K, args ...any) error {
	return e.Emit(event, args...)
}

// Listeners returns the subscriptions of event in dispatch order. The slice is a copy;
// it is empty, never nil, for events without listeners.
func (e *Emitter[K]) Listeners(event K) []*Subscription[K] {
	e.mu.Lock()
	defer e.mu.Unlock()

	list := e.listeners[event]
	out := make([]*Subscription[K], len(list))
	copy(out, list)
	return out
}

// ListenerCount returns the number of subscriptions of event.
func (e *Emitter[K]) ListenerCount(event K) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners[event])
}

// Events returns the events that currently have listeners, in no particular order.
func (e *Emitter[K]) Events() []K {
	e.mu.Lock()
	defer e.mu.Unlock()

	events := make([]K, 0, len(e.listeners))
	for event := range e.listeners {
		events = append(events, event)
	}
	return events
}

// claim reports whether s may run now. Once subscriptions are detached here, before
// their callback runs, so a re-entrant Emit cannot fire them a second time.
func (e *Emitter[K]) claim(s *Subscription[K]) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if s.removed {
		return false
	}
	if s.kind == KindOnce {
		e.detach(s)
	}
	return true
}

func (e *Emitter[K]) invoke(s *Subscription[K], args []any) (err error) {
	if !e.opts.propagatePanics {
		defer func() {
			if r := recover(); r != nil {
				err = newListenerPanicError(s.event, s.id, s.listener.Name(), r)
				e.loggerFor(s).Errorf("listener panicked: %v", r)
			}
		}()
	}

	done := s.listener.call(s.receiver, args)
	if done && s.kind == KindWhen && e.removeSubscription(s) {
		e.loggerFor(s).Debugf("condition met, unsubscribed")
	}
	return nil
}

func (e *Emitter[K]) removeSubscription(s *Subscription[K]) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if s.removed {
		return false
	}
	e.detach(s)
	return true
}

// detach and detachAt must be called with e.mu held.
func (e *Emitter[K]) detach(s *Subscription[K]) {
	if i := slices.Index(e.listeners[s.event], s); i >= 0 {
		e.detachAt(s.event, i)
	}
}

func (e *Emitter[K]) detachAt(event K, i int) {
	list := e.listeners[event]
	list[i].removed = true

	list = slices.Delete(list, i, i+1)
	if len(list) == 0 {
		delete(e.listeners, event)
		return
	}
	e.listeners[event] = list
}

func (e *Emitter[K]) logger() Logger {
	if e.opts.logger == nil {
		return noopLogger{}
	}
	return e.opts.logger
}

func (e *Emitter[K]) loggerFor(s *Subscription[K]) Logger {
	return e.logger().
		WithField("event", s.event).
		WithField("subscription", s.id).
		WithField("listener", s.listener.Name())
}

func (e *Emitter[K]) ids() IDGenerator {
	if e.opts.ids == nil {
		return uuidGenerator{}
	}
	return e.opts.ids
}

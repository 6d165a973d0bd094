package emitter

import (
	"reflect"
)

// Kind tells how a subscription behaves once invoked.
type Kind uint8

const (
	KindOn Kind = iota
	KindOnce
	KindWhen
)

func (k Kind) String() string {
	switch k {
	case KindOn:
		return "on"
	case KindOnce:
		return "once"
	case KindWhen:
		return "when"
	default:
		return "unknown"
	}
}

// Subscription is one registered listener for one event. Once and When subscriptions
// keep the user's Listener as their identity, so Off with that listener finds them.
type Subscription[K comparable] struct {
	id       string
	event    K
	kind     Kind
	listener *Listener
	receiver any
	bound    bool

	owner *Emitter[K]

	// guarded by owner.mu
	removed bool
}

// ID returns the id assigned at subscribe time.
func (s *Subscription[K]) ID() string { return s.id }

// Event returns the event s is registered for.
func (s *Subscription[K]) Event() K { return s.event }

// Kind returns whether s was registered with On, Once or When.
func (s *Subscription[K]) Kind() Kind { return s.kind }

// Listener returns the listener given at subscribe time, never an internal wrapper.
func (s *Subscription[K]) Listener() *Listener { return s.listener }

// Receiver returns the bound receiver and whether one was bound at all.
func (s *Subscription[K]) Receiver() (any, bool) { return s.receiver, s.bound }

// Active reports whether s is still registered.
func (s *Subscription[K]) Active() bool {
	s.owner.mu.Lock()
	defer s.owner.mu.Unlock()
	return !s.removed
}

// Off removes this exact subscription. Calling it again is a no-op.
func (s *Subscription[K]) Off() {
	s.owner.removeSubscription(s)
}

func (s *Subscription[K]) matches(l *Listener, so subscribeOptions) bool {
	return s.listener == l && s.bound == so.bound && sameReceiver(s.receiver, so.receiver)
}

// sameReceiver compares receivers by identity. Maps are the same receiver when they
// share storage, slices when they share backing array and length. Funcs and values of
// other non-comparable types only equal each other when both are nil.
func sameReceiver(a, b any) (same bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Map:
		return va.UnsafePointer() == vb.UnsafePointer()
	case reflect.Slice:
		return va.UnsafePointer() == vb.UnsafePointer() && va.Len() == vb.Len()
	}

	if !va.Type().Comparable() {
		return false
	}

	// structs holding non-comparable interface values still panic on ==
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

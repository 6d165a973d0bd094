package emitter

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrInvalidListener = errors.New("listener is nil or has no callback")
	ErrListenerPanic   = errors.New("listener panicked")
)

// ListenerPanicError is reported for every listener that panicked during a dispatch pass.
type ListenerPanicError struct {
	Event        any
	Subscription string
	Listener     string
	Value        any
	err          error
}

func (e *ListenerPanicError) Error() string {
	return fmt.Sprintf("listener %s (%s) panicked on event %v: %s",
		e.Listener, e.Subscription, e.Event, e.err)
}

func (e *ListenerPanicError) Unwrap() error { return e.err }

func (e *ListenerPanicError) Is(target error) bool { return target == ErrListenerPanic }

// DispatchError aggregates the failures of a single Emit call. Listeners after a failing
// one still run, so Failures may hold more than one entry.
type DispatchError struct {
	Event    any
	Failures []error
}

func (e *DispatchError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, f.Error())
	}
	return fmt.Sprintf("%d listener(s) failed on event %v: %s",
		len(e.Failures), e.Event, strings.Join(msgs, "; "))
}

func (e *DispatchError) Unwrap() []error { return e.Failures }

func wrapDispatchError(event any, failures []error) error {
	if len(failures) == 0 {
		return nil
	}
	return &DispatchError{
		Event:    event,
		Failures: failures,
	}
}

func newListenerPanicError(event any, subscription, listener string, r any) *ListenerPanicError {
	return &ListenerPanicError{
		Event:        event,
		Subscription: subscription,
		Listener:     listener,
		Value:        r,
		err:          recoverErr(r),
	}
}

// recoverErr turns a recovered panic value into an error, keeping the original error
// in the chain when the listener panicked with one.
func recoverErr(r any) error {
	switch v := r.(type) {
	case error:
		return errors.WithStack(v)
	case string:
		return errors.New(v)
	default:
		return errors.Errorf("panic: %v", r)
	}
}

package emitter

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
)

// spyListener records every invocation through testify's mock, with the receiver as the
// first argument followed by the emitted arguments.
type spyListener struct {
	mock.Mock

	listener *Listener
}

func newSpyListener(t *testing.T) *spyListener {
	s := &spyListener{}
	s.Test(t)
	s.listener = NewListener(func(receiver any, args ...any) {
		s.MethodCalled("Call", append([]any{receiver}, args...)...)
	})
	return s
}

// sequenceIDs hands out predictable subscription ids.
type sequenceIDs struct {
	mu sync.Mutex
	n  int
}

func (g *sequenceIDs) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("sub-%d", g.n)
}

// callLog collects listener names in invocation order.
type callLog struct {
	mu    sync.Mutex
	names []string
}

func (c *callLog) record(name string) {
	c.mu.Lock()
	c.names = append(c.names, name)
	c.mu.Unlock()
}

func (c *callLog) listener(name string) *Listener {
	return NewListener(func(any, ...any) {
		c.record(name)
	}).Named(name)
}

func (c *callLog) calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

package emitter

// Func is a listener callback. receiver is the value bound with Bind, or nil when the
// subscription has none. args are exactly the arguments passed to Emit.
type Func func(receiver any, args ...any)

// CondFunc is a listener callback that reports whether its subscription is done.
// Subscribed with When, returning true removes the subscription.
type CondFunc func(receiver any, args ...any) bool

// Listener carries the identity of a callback. Go func values cannot be compared, so
// subscriptions are deduplicated and removed by *Listener: keep the pointer returned
// by NewListener or NewCondition and pass the same one to Off.
type Listener struct {
	fn   Func
	cond CondFunc
	name string
}

// NewListener wraps fn into a Listener.
func NewListener(fn Func) *Listener {
	return &Listener{fn: fn}
}

// NewCondition wraps fn into a Listener whose return value ends a When subscription.
func NewCondition(fn CondFunc) *Listener {
	return &Listener{cond: fn}
}

// Named sets the name used for l in log output and errors.
func (l *Listener) Named(name string) *Listener {
	l.name = name
	return l
}

func (l *Listener) Name() string {
	if l == nil || l.name == "" {
		return "anonymous"
	}
	return l.name
}

func (l *Listener) valid() bool {
	return l != nil && (l.fn != nil || l.cond != nil)
}

// call invokes the callback. Plain listeners never report completion.
func (l *Listener) call(receiver any, args []any) bool {
	if l.cond != nil {
		return l.cond(receiver, args...)
	}
	l.fn(receiver, args...)
	return false
}

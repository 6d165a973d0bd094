package emitter

type (
	options struct {
		logger          Logger
		ids             IDGenerator
		propagatePanics bool
	}

	// Option configures an Emitter built with New.
	Option func(*options)

	subscribeOptions struct {
		receiver any
		bound    bool
	}

	// SubscribeOption configures a single On, Once, When or Off call.
	SubscribeOption func(*subscribeOptions)
)

// WithLogger sets the logger used for subscription and dispatch events.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithIDGenerator replaces the uuid based subscription id generator.
func WithIDGenerator(ids IDGenerator) Option {
	return func(o *options) {
		o.ids = ids
	}
}

// WithPanicPropagation disables per-listener panic recovery. A panicking listener
// aborts the dispatch pass and the panic reaches the Emit caller.
func WithPanicPropagation() Option {
	return func(o *options) {
		o.propagatePanics = true
	}
}

// Bind sets the receiver a listener is invoked against. On Off, it restricts removal
// to the subscription bound to the same receiver. Bind(nil) is the same as not
// binding at all.
func Bind(receiver any) SubscribeOption {
	return func(o *subscribeOptions) {
		o.receiver = receiver
		o.bound = receiver != nil
	}
}

func newSubscribeOptions(opts []SubscribeOption) subscribeOptions {
	var so subscribeOptions
	for _, opt := range opts {
		opt(&so)
	}
	return so
}

package pubsub

import "context"

// Transport executes one authenticated request against the service root it
// was constructed for. in and out, when non-nil, are the JSON request and
// response bodies. Implementations must be safe for concurrent use by
// multiple in-flight operations; the client only borrows the transport and
// never closes it.
type Transport interface {
	Send(ctx context.Context, method, path string, in, out any) error
}

// Logger interface with the methods pubsub components log through.
type Logger interface {
	Debug(args ...any)
	Debugf(pattern string, args ...any)
	Log(args ...any)
	Logf(pattern string, args ...any)
	Error(args ...any)
	Errorf(pattern string, args ...any)
}

// Metrics interface for recording pubsub metrics.
type Metrics interface {
	IncrementCounter(ctx context.Context, name string, labels ...string)
}

// Publisher is the capability to send messages to one topic. Satisfied by
// *Topic; callers that only publish can depend on this instead of the
// concrete handle.
type Publisher interface {
	Publish(ctx context.Context, msg *Message) error
	PublishString(ctx context.Context, text string, attributes map[string]string) error
	PublishBytes(ctx context.Context, data []byte, attributes map[string]string) error
}

// Puller is the capability to receive messages from one subscription by
// pulling. Satisfied by *Subscription.
type Puller interface {
	Pull(ctx context.Context, wait bool) (*PullEvent, error)
}

var (
	_ Publisher = (*Topic)(nil)
	_ Puller    = (*Subscription)(nil)
)

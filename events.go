package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PullEvent pairs a received message with its acknowledgment handle.
type PullEvent struct {
	msg   *Message
	ackID string
	sub   *Subscription
	acked bool
}

// Message returns the received message.
func (e *PullEvent) Message() *Message {
	return e.msg
}

// Ack acknowledges receipt so the service stops redelivering the message.
// Only the first successful call reaches the service; calling Ack again on an
// already acknowledged event is a no-op returning nil.
func (e *PullEvent) Ack(ctx context.Context) error {
	if e.acked {
		return nil
	}

	req := ackRequest{AckIDs: []string{e.ackID}}
	if err := e.sub.client.transport.Send(ctx, http.MethodPost, e.sub.absoluteName+":acknowledge", req, nil); err != nil {
		return notFoundErr(err, kindSubscription, e.sub.absoluteName)
	}

	e.acked = true

	return nil
}

// ModifyAckDeadline extends the window before the service redelivers the
// message; a zero deadline releases it for immediate redelivery.
func (e *PullEvent) ModifyAckDeadline(ctx context.Context, deadline time.Duration) error {
	req := modifyAckDeadlineRequest{
		AckIDs:             []string{e.ackID},
		AckDeadlineSeconds: int(deadline.Seconds()),
	}

	if err := e.sub.client.transport.Send(ctx, http.MethodPost, e.sub.absoluteName+":modifyAckDeadline", req, nil); err != nil {
		return notFoundErr(err, kindSubscription, e.sub.absoluteName)
	}

	return nil
}

// PushEvent is a message decoded from a service-initiated push delivery,
// together with the absolute name of the subscription that delivered it.
// Push deliveries have no acknowledgment handle: the HTTP status returned by
// the receiving endpoint acknowledges them.
type PushEvent struct {
	msg          *Message
	subscription string
}

// Message returns the delivered message.
func (e *PushEvent) Message() *Message {
	return e.msg
}

// Subscription returns the absolute name of the delivering subscription.
func (e *PushEvent) Subscription() string {
	return e.subscription
}

// DecodePushEvent decodes the JSON body of a push delivery. Every malformed
// input, including missing required fields, fails with an error wrapping
// ErrDecode so callers can tell a bad payload from other failures. The
// message body is expected base64-encoded; data that does not decode as
// base64 is taken as plain text, which some emulators deliver.
func DecodePushEvent(payload []byte) (*PushEvent, error) {
	var body pushPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if body.Message == nil {
		return nil, fmt.Errorf("%w: push delivery has no message", ErrDecode)
	}

	if body.Subscription == "" {
		return nil, fmt.Errorf("%w: push delivery has no subscription", ErrDecode)
	}

	data, err := base64.StdEncoding.DecodeString(body.Message.Data)
	if err != nil {
		data = []byte(body.Message.Data)
	}

	return &PushEvent{
		msg:          &Message{data: data, attributes: body.Message.Attributes},
		subscription: body.Subscription,
	}, nil
}

package pubsub

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
)

// Subscription is a live handle to a consumer binding. A subscription is in
// exactly one of two delivery modes at any time: pull, where the consumer
// retrieves messages via Pull, or push, where the service delivers them to an
// HTTP endpoint. The mode changes only through SetPushEndpoint.
type Subscription struct {
	name         string
	absoluteName string
	topic        *Topic
	endpoint     string
	client       *Client
}

// Name returns the relative subscription name.
func (s *Subscription) Name() string {
	return s.name
}

// AbsoluteName returns the fully qualified
// projects/<project>/subscriptions/<name> form.
func (s *Subscription) AbsoluteName() string {
	return s.absoluteName
}

// Topic returns the topic this subscription is bound to.
func (s *Subscription) Topic() *Topic {
	return s.topic
}

// Endpoint returns the push endpoint, or "" when the subscription is in pull
// mode.
func (s *Subscription) Endpoint() string {
	return s.endpoint
}

// IsPush reports whether the service delivers this subscription's messages to
// an HTTP endpoint.
func (s *Subscription) IsPush() bool {
	return s.endpoint != ""
}

// IsPull reports whether messages are retrieved via Pull. Always the exact
// complement of IsPush.
func (s *Subscription) IsPull() bool {
	return !s.IsPush()
}

// SetPushEndpoint switches the subscription to push delivery towards
// endpoint, or back to pull mode when endpoint is "". The local mode changes
// only after the remote update succeeds, so a failed call leaves the handle
// in its previous mode.
func (s *Subscription) SetPushEndpoint(ctx context.Context, endpoint string) error {
	req := modifyPushConfigRequest{}
	if endpoint != "" {
		req.PushConfig.PushEndpoint = endpoint
	}

	if err := s.client.transport.Send(ctx, http.MethodPost, s.absoluteName+":modifyPushConfig", req, nil); err != nil {
		s.client.logger.Errorf("could not update push config of subscription '%s', error: %v", s.name, err)

		return notFoundErr(err, kindSubscription, s.absoluteName)
	}

	s.endpoint = endpoint

	return nil
}

// Pull retrieves a single message. With wait true the call suspends until a
// message arrives, the service's own poll window elapses or ctx is cancelled;
// with wait false it returns immediately. When no message is available the
// result is (nil, nil), not an error. A transport failure always propagates.
//
// Pulling from a push-mode subscription is permitted by the service but
// discouraged: the endpoint keeps receiving deliveries, so the same message
// may arrive through both paths.
func (s *Subscription) Pull(ctx context.Context, wait bool) (*PullEvent, error) {
	ctx, span := otel.GetTracerProvider().Tracer("gofr-pubsub").Start(ctx, "pubsub-pull")
	defer span.End()

	s.client.metrics.IncrementCounter(ctx, pullTotalCount, "subscription", s.name)

	req := pullRequest{ReturnImmediately: !wait, MaxMessages: 1}

	var res pullResponse

	start := time.Now()

	if err := s.client.transport.Send(ctx, http.MethodPost, s.absoluteName+":pull", req, &res); err != nil {
		s.client.logger.Errorf("error pulling from subscription '%s', error: %v", s.name, err)
		s.client.metrics.IncrementCounter(ctx, pullFailureCount, "subscription", s.name)

		return nil, notFoundErr(err, kindSubscription, s.absoluteName)
	}

	if len(res.ReceivedMessages) == 0 {
		return nil, nil
	}

	rm := res.ReceivedMessages[0]
	msg := &Message{data: rm.Message.Data, attributes: rm.Message.Attributes}

	s.client.logger.Debug(&Log{
		Mode:          "PULL",
		CorrelationID: span.SpanContext().TraceID().String(),
		MessageID:     rm.Message.MessageID,
		MessageValue:  string(msg.data),
		Topic:         s.name,
		Host:          s.client.ProjectID,
		Time:          time.Since(start).Microseconds(),
	})

	s.client.metrics.IncrementCounter(ctx, pullSuccessCount, "subscription", s.name)

	return &PullEvent{msg: msg, ackID: rm.AckID, sub: s}, nil
}

// Exists reports whether the backing resource still exists.
func (s *Subscription) Exists(ctx context.Context) (bool, error) {
	err := s.client.transport.Send(ctx, http.MethodGet, s.absoluteName, nil, nil)
	if err == nil {
		return true, nil
	}

	if isNotFound(err) {
		return false, nil
	}

	return false, err
}

// Delete removes the backing resource. Afterwards every operation on the
// handle fails with ErrNotFound.
func (s *Subscription) Delete(ctx context.Context) error {
	if err := s.client.transport.Send(ctx, http.MethodDelete, s.absoluteName, nil, nil); err != nil {
		return notFoundErr(err, kindSubscription, s.absoluteName)
	}

	s.client.logger.Debugf("deleted subscription '%s'", s.absoluteName)

	return nil
}

package pubsub

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
)

// Topic is a live handle to a publishing endpoint. The backing resource lives
// in the external service; once it is deleted there, every further operation
// on the handle fails with ErrNotFound.
type Topic struct {
	name         string
	absoluteName string
	client       *Client
}

func newTopic(c *Client, absoluteName string) *Topic {
	return &Topic{client: c, name: relativeName(absoluteName), absoluteName: absoluteName}
}

// Name returns the relative topic name.
func (t *Topic) Name() string {
	return t.name
}

// AbsoluteName returns the fully qualified projects/<project>/topics/<name>
// form.
func (t *Topic) AbsoluteName() string {
	return t.absoluteName
}

// Publish submits msg to this topic. Transport failures propagate to the
// caller unchanged; retrying is a caller concern.
func (t *Topic) Publish(ctx context.Context, msg *Message) error {
	ctx, span := otel.GetTracerProvider().Tracer("gofr-pubsub").Start(ctx, "pubsub-publish")
	defer span.End()

	t.client.metrics.IncrementCounter(ctx, publishTotalCount, "topic", t.name)

	req := publishRequest{Messages: []wireMessage{{
		Data:        msg.data,
		Attributes:  msg.attributes,
		PublishTime: time.Now(),
	}}}

	var res publishResponse

	start := time.Now()

	if err := t.client.transport.Send(ctx, http.MethodPost, t.absoluteName+":publish", req, &res); err != nil {
		t.client.logger.Errorf("error publishing to topic '%s', error: %v", t.name, err)
		t.client.metrics.IncrementCounter(ctx, publishFailureCount, "topic", t.name)

		return notFoundErr(err, kindTopic, t.absoluteName)
	}

	var messageID string
	if len(res.MessageIDs) > 0 {
		messageID = res.MessageIDs[0]
	}

	t.client.logger.Debug(&Log{
		Mode:          "PUB",
		CorrelationID: span.SpanContext().TraceID().String(),
		MessageID:     messageID,
		MessageValue:  string(msg.data),
		Topic:         t.name,
		Host:          t.client.ProjectID,
		Time:          time.Since(start).Microseconds(),
	})

	t.client.metrics.IncrementCounter(ctx, publishSuccessCount, "topic", t.name)

	return nil
}

// PublishString wraps text in a Message and publishes it. A nil attribute map
// is equivalent to an empty one.
func (t *Topic) PublishString(ctx context.Context, text string, attributes map[string]string) error {
	return t.Publish(ctx, NewStringMessage(text, attributes))
}

// PublishBytes wraps data in a Message and publishes it.
func (t *Topic) PublishBytes(ctx context.Context, data []byte, attributes map[string]string) error {
	return t.Publish(ctx, NewBytesMessage(data, attributes))
}

// Exists reports whether the backing resource still exists.
func (t *Topic) Exists(ctx context.Context) (bool, error) {
	err := t.client.transport.Send(ctx, http.MethodGet, t.absoluteName, nil, nil)
	if err == nil {
		return true, nil
	}

	if isNotFound(err) {
		return false, nil
	}

	return false, err
}

// Delete removes the backing resource. Afterwards the handle and every
// subscription bound to the topic fail with ErrNotFound.
func (t *Topic) Delete(ctx context.Context) error {
	if err := t.client.transport.Send(ctx, http.MethodDelete, t.absoluteName, nil, nil); err != nil {
		return notFoundErr(err, kindTopic, t.absoluteName)
	}

	t.client.logger.Debugf("deleted topic '%s'", t.absoluteName)

	return nil
}

// Subscriptions returns an iterator over the subscriptions bound to this
// topic, filtered server-side. The yielded handles carry name and topic only;
// use Client.Subscription to fetch their delivery configuration.
func (t *Topic) Subscriptions(ctx context.Context) *SubscriptionIterator {
	return &SubscriptionIterator{
		ctx:     ctx,
		client:  t.client,
		source:  t.absoluteName + "/subscriptions",
		byTopic: t,
	}
}

// PageSubscriptions exposes the paging behind Subscriptions explicitly.
func (t *Topic) PageSubscriptions(ctx context.Context, pageSize int) (*SubscriptionPage, error) {
	return t.client.pageSubscriptions(ctx, t.absoluteName+"/subscriptions", t, "", pageSize)
}

package pubsub

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSubscription(client *Client, endpoint string) *Subscription {
	return &Subscription{
		client:       client,
		name:         "s1",
		absoluteName: "projects/proj/subscriptions/s1",
		topic:        newTopic(client, "projects/proj/topics/t1"),
		endpoint:     endpoint,
	}
}

func TestSubscription_Modes(t *testing.T) {
	client, _ := newTestClient(t, &mockTransport{})

	pull := newTestSubscription(client, "")
	assert.True(t, pull.IsPull())
	assert.False(t, pull.IsPush())

	push := newTestSubscription(client, "https://example.com/push")
	assert.True(t, push.IsPush())
	assert.False(t, push.IsPull())
	assert.Equal(t, "https://example.com/push", push.Endpoint())

	// the two are always each other's complement
	assert.NotEqual(t, pull.IsPull(), pull.IsPush())
	assert.NotEqual(t, push.IsPull(), push.IsPush())
}

func TestSubscription_SetPushEndpoint(t *testing.T) {
	mock := &mockTransport{}
	client, _ := newTestClient(t, mock)

	sub := newTestSubscription(client, "")

	err := sub.SetPushEndpoint(context.Background(), "https://example.com/push")
	require.NoError(t, err)

	call := mock.lastCall()
	assert.Equal(t, http.MethodPost, call.method)
	assert.Equal(t, "projects/proj/subscriptions/s1:modifyPushConfig", call.path)

	req, ok := call.in.(modifyPushConfigRequest)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/push", req.PushConfig.PushEndpoint)

	assert.True(t, sub.IsPush())
	assert.Equal(t, "https://example.com/push", sub.Endpoint())
}

func TestSubscription_SetPushEndpoint_Clear(t *testing.T) {
	mock := &mockTransport{}
	client, _ := newTestClient(t, mock)

	sub := newTestSubscription(client, "https://example.com/push")

	err := sub.SetPushEndpoint(context.Background(), "")
	require.NoError(t, err)

	req, ok := mock.lastCall().in.(modifyPushConfigRequest)
	require.True(t, ok)
	assert.Empty(t, req.PushConfig.PushEndpoint)

	assert.True(t, sub.IsPull())
	assert.False(t, sub.IsPush())
}

func TestSubscription_SetPushEndpoint_FailureKeepsMode(t *testing.T) {
	mock := &mockTransport{sendFunc: func(context.Context, string, string, any, any) error {
		return errTestSentinel
	}}
	client, _ := newTestClient(t, mock)

	sub := newTestSubscription(client, "")

	err := sub.SetPushEndpoint(context.Background(), "https://example.com/push")

	assert.ErrorIs(t, err, errTestSentinel)
	assert.True(t, sub.IsPull())
	assert.Empty(t, sub.Endpoint())
}

func TestSubscription_Pull_ReturnsEvent(t *testing.T) {
	mock := &mockTransport{sendFunc: func(_ context.Context, _, _ string, _, out any) error {
		*(out.(*pullResponse)) = pullResponse{ReceivedMessages: []receivedMessage{{
			AckID: "ack-1",
			Message: wireMessage{
				MessageID:  "m1",
				Data:       []byte("hi"),
				Attributes: map[string]string{"lang": "en"},
			},
		}}}

		return nil
	}}
	client, metrics := newTestClient(t, mock)

	sub := newTestSubscription(client, "")

	event, err := sub.Pull(context.Background(), true)
	require.NoError(t, err)
	require.NotNil(t, event)

	call := mock.lastCall()
	assert.Equal(t, "projects/proj/subscriptions/s1:pull", call.path)

	req, ok := call.in.(pullRequest)
	require.True(t, ok)
	assert.False(t, req.ReturnImmediately)
	assert.Equal(t, 1, req.MaxMessages)

	text, err := event.Message().Text()
	require.NoError(t, err)
	assert.Equal(t, "hi", text)
	assert.Equal(t, map[string]string{"lang": "en"}, event.Message().Attributes())
	assert.Equal(t, "ack-1", event.ackID)

	assert.Equal(t, 1, metrics.Counts[pullSuccessCount])
}

func TestSubscription_Pull_NoWait_NoMessage(t *testing.T) {
	mock := &mockTransport{}
	client, _ := newTestClient(t, mock)

	sub := newTestSubscription(client, "")

	event, err := sub.Pull(context.Background(), false)

	require.NoError(t, err)
	assert.Nil(t, event)

	req, ok := mock.lastCall().in.(pullRequest)
	require.True(t, ok)
	assert.True(t, req.ReturnImmediately)
}

func TestSubscription_Pull_TransportError(t *testing.T) {
	mock := &mockTransport{sendFunc: func(context.Context, string, string, any, any) error {
		return errTestSentinel
	}}
	client, metrics := newTestClient(t, mock)

	sub := newTestSubscription(client, "")

	_, err := sub.Pull(context.Background(), false)

	assert.ErrorIs(t, err, errTestSentinel)
	assert.Equal(t, 1, metrics.Counts[pullFailureCount])
}

func TestSubscription_Pull_AfterDelete(t *testing.T) {
	mock := &mockTransport{sendFunc: func(context.Context, string, string, any, any) error {
		return &APIError{Code: http.StatusNotFound, Message: "Subscription not found", Status: "NOT_FOUND"}
	}}
	client, _ := newTestClient(t, mock)

	sub := newTestSubscription(client, "")

	_, err := sub.Pull(context.Background(), false)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubscription_Delete(t *testing.T) {
	mock := &mockTransport{}
	client, _ := newTestClient(t, mock)

	sub := newTestSubscription(client, "")

	require.NoError(t, sub.Delete(context.Background()))

	call := mock.lastCall()
	assert.Equal(t, http.MethodDelete, call.method)
	assert.Equal(t, "projects/proj/subscriptions/s1", call.path)
}

func TestSubscription_Exists(t *testing.T) {
	mock := &mockTransport{sendFunc: func(context.Context, string, string, any, any) error {
		return &APIError{Code: http.StatusNotFound, Message: "Subscription not found", Status: "NOT_FOUND"}
	}}
	client, _ := newTestClient(t, mock)

	sub := newTestSubscription(client, "")

	ok, err := sub.Exists(context.Background())

	require.NoError(t, err)
	assert.False(t, ok)
}

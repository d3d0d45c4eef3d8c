package pubsub

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPullEvent_Ack(t *testing.T) {
	mock := &mockTransport{}
	client, _ := newTestClient(t, mock)

	event := &PullEvent{
		msg:   NewStringMessage("hi", nil),
		ackID: "ack-1",
		sub:   newTestSubscription(client, ""),
	}

	require.NoError(t, event.Ack(context.Background()))

	call := mock.lastCall()
	assert.Equal(t, http.MethodPost, call.method)
	assert.Equal(t, "projects/proj/subscriptions/s1:acknowledge", call.path)

	req, ok := call.in.(ackRequest)
	require.True(t, ok)
	assert.Equal(t, []string{"ack-1"}, req.AckIDs)

	// a second Ack is a no-op: nothing further reaches the service
	require.NoError(t, event.Ack(context.Background()))
	assert.Len(t, mock.calls, 1)
}

func TestPullEvent_Ack_FailureAllowsRetry(t *testing.T) {
	mock := &mockTransport{sendFunc: func(context.Context, string, string, any, any) error {
		return errTestSentinel
	}}
	client, _ := newTestClient(t, mock)

	event := &PullEvent{
		msg:   NewStringMessage("hi", nil),
		ackID: "ack-1",
		sub:   newTestSubscription(client, ""),
	}

	assert.ErrorIs(t, event.Ack(context.Background()), errTestSentinel)

	mock.sendFunc = nil

	require.NoError(t, event.Ack(context.Background()))
	assert.Len(t, mock.calls, 2)
}

func TestPullEvent_ModifyAckDeadline(t *testing.T) {
	mock := &mockTransport{}
	client, _ := newTestClient(t, mock)

	event := &PullEvent{
		msg:   NewStringMessage("hi", nil),
		ackID: "ack-1",
		sub:   newTestSubscription(client, ""),
	}

	require.NoError(t, event.ModifyAckDeadline(context.Background(), 10*time.Minute))

	call := mock.lastCall()
	assert.Equal(t, "projects/proj/subscriptions/s1:modifyAckDeadline", call.path)

	req, ok := call.in.(modifyAckDeadlineRequest)
	require.True(t, ok)
	assert.Equal(t, []string{"ack-1"}, req.AckIDs)
	assert.Equal(t, 600, req.AckDeadlineSeconds)
}

func TestDecodePushEvent(t *testing.T) {
	payload := []byte(`{
		"message": {
			"messageId": "m1",
			"data": "` + base64.StdEncoding.EncodeToString([]byte("test")) + `",
			"attributes": {"lang": "en"}
		},
		"subscription": "projects/proj/subscriptions/s1"
	}`)

	event, err := DecodePushEvent(payload)
	require.NoError(t, err)

	text, err := event.Message().Text()
	require.NoError(t, err)
	assert.Equal(t, "test", text)
	assert.Equal(t, map[string]string{"lang": "en"}, event.Message().Attributes())
	assert.Equal(t, "projects/proj/subscriptions/s1", event.Subscription())
}

func TestDecodePushEvent_PlainTextBody(t *testing.T) {
	payload := []byte(`{
		"message": {"data": "not base64!"},
		"subscription": "projects/proj/subscriptions/s1"
	}`)

	event, err := DecodePushEvent(payload)
	require.NoError(t, err)

	text, err := event.Message().Text()
	require.NoError(t, err)
	assert.Equal(t, "not base64!", text)
}

func TestDecodePushEvent_Malformed(t *testing.T) {
	malformed := [][]byte{
		[]byte(`{not json`),
		[]byte(`{}`),
		[]byte(`{"subscription": "projects/proj/subscriptions/s1"}`),
		[]byte(`{"message": {"data": "dGVzdA=="}}`),
	}

	for _, payload := range malformed {
		_, err := DecodePushEvent(payload)
		assert.ErrorIs(t, err, ErrDecode, "payload %s", payload)
	}
}

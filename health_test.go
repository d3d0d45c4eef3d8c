package pubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient_Health_Up(t *testing.T) {
	mock := &mockTransport{sendFunc: func(_ context.Context, _, _ string, _, out any) error {
		switch res := out.(type) {
		case *listTopicsResponse:
			*res = listTopicsResponse{Topics: []topicResource{{Name: "projects/proj/topics/t1"}}}
		case *listSubscriptionsResponse:
			*res = listSubscriptionsResponse{}
		}

		return nil
	}}
	client, _ := newTestClient(t, mock)

	health := client.Health(context.Background())

	assert.Equal(t, StatusUp, health.Status)
	assert.Equal(t, []string{"t1"}, health.Details["topics"])
	assert.Empty(t, health.Details["subscriptions"])
	assert.Equal(t, "proj", health.Details["project"])
}

func TestClient_Health_Down(t *testing.T) {
	mock := &mockTransport{sendFunc: func(context.Context, string, string, any, any) error {
		return errTestSentinel
	}}
	client, _ := newTestClient(t, mock)

	health := client.Health(context.Background())

	assert.Equal(t, StatusDown, health.Status)
}

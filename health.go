package pubsub

import (
	"context"
	"errors"
	"time"

	"google.golang.org/api/iterator"
)

const (
	// StatusUp indicates the service answered the health probe.
	StatusUp = "UP"
	// StatusDown indicates the service could not be listed within the probe
	// timeout.
	StatusDown = "DOWN"
)

const healthTimeout = 500 * time.Millisecond

// Health describes the reachability of the service plus the topics and
// subscriptions visible to this client.
type Health struct {
	Status  string                 `json:"status,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Health probes the service by listing the project's topics and
// subscriptions with a short timeout.
func (c *Client) Health(ctx context.Context) Health {
	health := Health{Status: StatusUp, Details: map[string]interface{}{
		"backend": "PUBSUB",
		"project": c.ProjectID,
	}}

	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	topics := make([]string, 0)

	it := c.Topics(ctx)

	for {
		topic, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}

		if err != nil {
			health.Status = StatusDown

			break
		}

		topics = append(topics, topic.Name())
	}

	health.Details["topics"] = topics

	subscriptions := make([]string, 0)

	subIt := c.Subscriptions(ctx)

	for {
		sub, err := subIt.Next()
		if errors.Is(err, iterator.Done) {
			break
		}

		if err != nil {
			health.Status = StatusDown

			break
		}

		subscriptions = append(subscriptions, sub.Name())
	}

	health.Details["subscriptions"] = subscriptions

	return health
}

package pubsub

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMetrics_IncrementCounter(t *testing.T) {
	m := NewPrometheusMetrics(prometheus.NewRegistry())

	m.IncrementCounter(context.Background(), publishTotalCount, "topic", "t1")
	m.IncrementCounter(context.Background(), publishTotalCount, "topic", "t1")
	m.IncrementCounter(context.Background(), pullTotalCount, "subscription", "s1")

	assert.InDelta(t, 2, promtestutil.ToFloat64(m.counters[publishTotalCount].WithLabelValues("t1")), 0)
	assert.InDelta(t, 1, promtestutil.ToFloat64(m.counters[pullTotalCount].WithLabelValues("s1")), 0)
}

func TestPrometheusMetrics_UnknownCounterIgnored(*testing.T) {
	m := NewPrometheusMetrics(prometheus.NewRegistry())

	// must not panic
	m.IncrementCounter(context.Background(), "no_such_metric", "topic", "t1")
}

func TestPrometheusMetrics_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	NewPrometheusMetrics(reg)

	m := NewPrometheusMetrics(reg)

	assert.NotNil(t, m)
}

package pubsub

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	publishTotalCount   = "app_pubsub_publish_total_count"
	publishSuccessCount = "app_pubsub_publish_success_count"
	publishFailureCount = "app_pubsub_publish_failure_count"
	pullTotalCount      = "app_pubsub_pull_total_count"
	pullSuccessCount    = "app_pubsub_pull_success_count"
	pullFailureCount    = "app_pubsub_pull_failure_count"
)

// PrometheusMetrics is a Metrics implementation backed by prometheus
// counters, one CounterVec per pubsub metric.
type PrometheusMetrics struct {
	counters map[string]*prometheus.CounterVec
}

// NewPrometheusMetrics registers the pubsub counters on reg; a nil reg uses
// the default registerer. Re-registering on the same registerer is ignored.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &PrometheusMetrics{counters: map[string]*prometheus.CounterVec{
		publishTotalCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: publishTotalCount, Help: "Total number of publish operations",
		}, []string{"topic"}),
		publishSuccessCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: publishSuccessCount, Help: "Number of successful publish operations",
		}, []string{"topic"}),
		publishFailureCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: publishFailureCount, Help: "Number of failed publish operations",
		}, []string{"topic"}),
		pullTotalCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: pullTotalCount, Help: "Total number of pull operations",
		}, []string{"subscription"}),
		pullSuccessCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: pullSuccessCount, Help: "Number of pull operations that returned a message",
		}, []string{"subscription"}),
		pullFailureCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: pullFailureCount, Help: "Number of failed pull operations",
		}, []string{"subscription"}),
	}}

	for _, counter := range m.counters {
		_ = reg.Register(counter)
	}

	return m
}

// IncrementCounter bumps the named counter. Labels are alternating key-value
// pairs; unknown metric names are ignored.
func (m *PrometheusMetrics) IncrementCounter(_ context.Context, name string, labels ...string) {
	counter, ok := m.counters[name]
	if !ok {
		return
	}

	values := make([]string, 0, len(labels)/2)
	for i := 1; i < len(labels); i += 2 {
		values = append(values, labels[i])
	}

	counter.WithLabelValues(values...).Inc()
}

package pubsub

import "context"

// MockLogger is a no-op Logger that remembers the last error line, useful in
// tests.
type MockLogger struct {
	lastError string
}

// NewMockLogger creates a new MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (*MockLogger) Debug(...any)          {}
func (*MockLogger) Debugf(string, ...any) {}
func (*MockLogger) Log(...any)            {}
func (*MockLogger) Logf(string, ...any)   {}
func (*MockLogger) Error(...any)          {}

func (m *MockLogger) Errorf(format string, args ...any) {
	if len(args) > 0 {
		m.lastError = format
	}
}

// MockMetrics is a Metrics implementation counting increments per metric
// name.
type MockMetrics struct {
	Counts map[string]int
}

// NewMockMetrics creates a new MockMetrics.
func NewMockMetrics() *MockMetrics {
	return &MockMetrics{Counts: make(map[string]int)}
}

func (m *MockMetrics) IncrementCounter(_ context.Context, name string, _ ...string) {
	m.Counts[name]++
}

// transportCall records one request seen by the mock transport.
type transportCall struct {
	method string
	path   string
	in     any
}

// mockTransport is a func-field Transport implementation for tests. Every
// call is recorded; sendFunc, when set, produces the response.
type mockTransport struct {
	sendFunc func(ctx context.Context, method, path string, in, out any) error
	calls    []transportCall
}

func (m *mockTransport) Send(ctx context.Context, method, path string, in, out any) error {
	m.calls = append(m.calls, transportCall{method: method, path: path, in: in})

	if m.sendFunc != nil {
		return m.sendFunc(ctx, method, path, in, out)
	}

	return nil
}

func (m *mockTransport) lastCall() transportCall {
	if len(m.calls) == 0 {
		return transportCall{}
	}

	return m.calls[len(m.calls)-1]
}

package mocks

import (
	"net/http"

	"github.com/stretchr/testify/mock"

	"recontracker/observability/types"
)

// MockProvider is a mock implementation of Provider interface
type MockProvider struct {
	mock.Mock
}

// Logger mocks the Logger method
func (m *MockProvider) Logger(component string) types.Logger {
	args := m.Called(component)
	if logger, ok := args.Get(0).(types.Logger); ok {
		return logger
	}
	return nil
}

// Metrics mocks the Metrics method
func (m *MockProvider) Metrics(component string) types.Metrics {
	args := m.Called(component)
	if metrics, ok := args.Get(0).(types.Metrics); ok {
		return metrics
	}
	return nil
}

// MetricsHandler mocks the MetricsHandler method
func (m *MockProvider) MetricsHandler() http.Handler {
	args := m.Called()
	if h, ok := args.Get(0).(http.Handler); ok {
		return h
	}
	return http.NotFoundHandler()
}

// Close mocks the Close method
func (m *MockProvider) Close() error {
	args := m.Called()
	return args.Error(0)
}

// NewNopProvider returns a MockProvider whose loggers and metrics accept every call.
func NewNopProvider() *MockProvider {
	p := &MockProvider{}
	p.On("Logger", mock.Anything).Return(NewNopLogger()).Maybe()
	p.On("Metrics", mock.Anything).Return(NewNopMetrics()).Maybe()
	p.On("MetricsHandler").Return(http.NotFoundHandler()).Maybe()
	p.On("Close").Return(nil).Maybe()
	return p
}

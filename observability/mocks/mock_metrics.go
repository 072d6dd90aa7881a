package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockMetrics is a mock implementation of Metrics interface
type MockMetrics struct {
	mock.Mock
}

// RecordSuccess mocks the RecordSuccess method
func (m *MockMetrics) RecordSuccess(operation string) {
	m.Called(operation)
}

// RecordError mocks the RecordError method
func (m *MockMetrics) RecordError(operation string, errorType string) {
	m.Called(operation, errorType)
}

// RecordDuration mocks the RecordDuration method
func (m *MockMetrics) RecordDuration(operation string, duration float64) {
	m.Called(operation, duration)
}

// RecordRows mocks the RecordRows method
func (m *MockMetrics) RecordRows(operation string, rows int) {
	m.Called(operation, rows)
}

// StartOperation mocks the StartOperation method
func (m *MockMetrics) StartOperation(operation string) {
	m.Called(operation)
}

// EndOperation mocks the EndOperation method
func (m *MockMetrics) EndOperation(operation string) {
	m.Called(operation)
}

// NewNopMetrics returns a MockMetrics that accepts every call.
func NewNopMetrics() *MockMetrics {
	m := &MockMetrics{}
	m.On("RecordSuccess", mock.Anything).Maybe()
	m.On("RecordError", mock.Anything, mock.Anything).Maybe()
	m.On("RecordDuration", mock.Anything, mock.Anything).Maybe()
	m.On("RecordRows", mock.Anything, mock.Anything).Maybe()
	m.On("StartOperation", mock.Anything).Maybe()
	m.On("EndOperation", mock.Anything).Maybe()
	return m
}

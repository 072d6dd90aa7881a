package mocks

import (
	"context"

	"recontracker/handler"

	"github.com/stretchr/testify/mock"
)

// MockWorker is a mock implementation of the Worker interface.
// Use this to test handlers, middleware and adapters without the API.
type MockWorker struct {
	mock.Mock
}

var _ handler.Worker = (*MockWorker)(nil)

// NewMockWorker returns a worker named "mock" serving routes.
func NewMockWorker(routes ...handler.Route) *MockWorker {
	m := &MockWorker{}
	m.On("Name").Return("mock").Maybe()
	m.On("Routes").Return(routes).Maybe()
	return m
}

// Name returns the mock worker name
func (m *MockWorker) Name() string {
	args := m.Called()
	return args.String(0)
}

// Routes returns the mocked route table
func (m *MockWorker) Routes() []handler.Route {
	args := m.Called()
	if routes, ok := args.Get(0).([]handler.Route); ok {
		return routes
	}
	return nil
}

// Process mocks the request processing
func (m *MockWorker) Process(ctx context.Context, request handler.Request) (handler.Response, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(handler.Response), args.Error(1)
}

// Health mocks the health check
func (m *MockWorker) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ExpectProcess sets up an expectation for Process on a named route
func (m *MockWorker) ExpectProcess(route string, response handler.Response, err error) *mock.Call {
	return m.On("Process",
		mock.Anything,
		mock.MatchedBy(func(req handler.Request) bool {
			return req.Route == route
		}),
	).Return(response, err)
}

// ExpectProcessAny sets up an expectation for any Process call
func (m *MockWorker) ExpectProcessAny(response handler.Response, err error) *mock.Call {
	return m.On("Process", mock.Anything, mock.Anything).Return(response, err)
}

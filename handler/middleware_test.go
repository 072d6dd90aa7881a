package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"recontracker/observability/mocks"
	"recontracker/observability/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func okHandler(ctx context.Context, req Request) (Response, error) {
	return NewSuccessResponse(req.ID, http.StatusOK, map[string]string{"ok": "true"}), nil
}

func TestLoggingMiddleware(t *testing.T) {
	t.Run("success logs at info", func(t *testing.T) {
		mockProvider := new(mocks.MockProvider)
		mockLogger := new(mocks.MockLogger)
		mockProvider.On("Logger", "handler").Return(mockLogger)
		mockLogger.On("WithFields", mock.MatchedBy(func(f types.Fields) bool {
			return f["request_id"] == "req-1" && f["route"] == "list_items"
		})).Return(mockLogger)
		mockLogger.On("Debug", mock.Anything, "Processing request", mock.Anything).Return()
		mockLogger.On("Info", mock.Anything, "Request completed", mock.Anything).Return()

		h := LoggingMiddleware(mockProvider)(okHandler)
		resp, err := h(context.Background(), Request{ID: "req-1", Route: "list_items"})

		require.NoError(t, err)
		assert.True(t, resp.Success())
		mockLogger.AssertExpectations(t)
	})

	t.Run("client error logs at warn", func(t *testing.T) {
		mockProvider := new(mocks.MockProvider)
		mockLogger := new(mocks.MockLogger)
		mockProvider.On("Logger", "handler").Return(mockLogger)
		mockLogger.On("WithFields", mock.Anything).Return(mockLogger)
		mockLogger.On("Debug", mock.Anything, mock.Anything, mock.Anything).Return()
		mockLogger.On("Warn", mock.Anything, "Request rejected", mock.MatchedBy(func(f types.Fields) bool {
			return f["error_code"] == CodeNotFound && f["status"] == http.StatusNotFound
		})).Return()

		h := LoggingMiddleware(mockProvider)(func(ctx context.Context, req Request) (Response, error) {
			return NewErrorResponse(req.ID, http.StatusNotFound, CodeNotFound, "Program not found", ""), nil
		})
		_, err := h(context.Background(), Request{ID: "req-2"})

		require.NoError(t, err)
		mockLogger.AssertExpectations(t)
	})

	t.Run("processing error logs at error", func(t *testing.T) {
		mockProvider := new(mocks.MockProvider)
		mockLogger := new(mocks.MockLogger)
		mockProvider.On("Logger", "handler").Return(mockLogger)
		mockLogger.On("WithFields", mock.Anything).Return(mockLogger)
		mockLogger.On("Debug", mock.Anything, mock.Anything, mock.Anything).Return()
		mockLogger.On("Error", mock.Anything, "Request failed with error", mock.Anything, mock.Anything).Return()

		boom := errors.New("boom")
		h := LoggingMiddleware(mockProvider)(func(ctx context.Context, req Request) (Response, error) {
			return Response{ID: req.ID}, boom
		})
		_, err := h(context.Background(), Request{ID: "req-3"})

		assert.ErrorIs(t, err, boom)
		mockLogger.AssertExpectations(t)
	})
}

func TestMetricsMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		next   HandlerFunc
		expect func(m *mocks.MockMetrics)
	}{
		{
			name: "success",
			next: okHandler,
			expect: func(m *mocks.MockMetrics) {
				m.On("RecordSuccess", "list_items").Return().Once()
			},
		},
		{
			name: "error response recorded by code",
			next: func(ctx context.Context, req Request) (Response, error) {
				return NewErrorResponse(req.ID, http.StatusConflict, CodeConflict, "conflict", ""), nil
			},
			expect: func(m *mocks.MockMetrics) {
				m.On("RecordError", "list_items", "conflict").Return().Once()
			},
		},
		{
			name: "processing error",
			next: func(ctx context.Context, req Request) (Response, error) {
				return Response{}, errors.New("boom")
			},
			expect: func(m *mocks.MockMetrics) {
				m.On("RecordError", "list_items", "processing_error").Return().Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProvider := new(mocks.MockProvider)
			mockMetrics := new(mocks.MockMetrics)
			mockProvider.On("Metrics", "handler").Return(mockMetrics)
			mockMetrics.On("StartOperation", "list_items").Return().Once()
			mockMetrics.On("EndOperation", "list_items").Return().Once()
			mockMetrics.On("RecordDuration", "list_items", mock.AnythingOfType("float64")).Return().Once()
			tt.expect(mockMetrics)

			h := MetricsMiddleware(mockProvider)(tt.next)
			_, _ = h(context.Background(), Request{ID: "req", Route: "list_items"})

			mockMetrics.AssertExpectations(t)
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	provider := mocks.NewNopProvider()

	h := RecoveryMiddleware(provider)(func(ctx context.Context, req Request) (Response, error) {
		panic("something went wrong")
	})

	resp, err := h(context.Background(), Request{ID: "req-panic"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic recovered")
	assert.Equal(t, http.StatusInternalServerError, resp.Status())
	assert.Equal(t, CodeInternal, resp.Error.Code)
	assert.Equal(t, "req-panic", resp.ID)
	assert.Empty(t, resp.Error.Details)
}

func TestTracingMiddleware(t *testing.T) {
	t.Run("propagated trace id", func(t *testing.T) {
		var ctxTrace string
		h := TracingMiddleware()(func(ctx context.Context, req Request) (Response, error) {
			ctxTrace, _ = ctx.Value(types.TraceIDKey).(string)
			return okHandler(ctx, req)
		})

		req := Request{ID: "req-1", Metadata: map[string]string{"x-trace-id": "trace-abc"}}
		resp, err := h(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "trace-abc", ctxTrace)
		assert.Equal(t, "trace-abc", resp.Metadata["Trace-ID"])
		assert.Equal(t, "req-1", resp.ID)
	})

	t.Run("falls back to request id", func(t *testing.T) {
		h := TracingMiddleware()(okHandler)

		resp, err := h(context.Background(), Request{ID: "req-2"})

		require.NoError(t, err)
		assert.Equal(t, "req-2", resp.Metadata["Trace-ID"])
	})

	t.Run("generates request id when missing", func(t *testing.T) {
		h := TracingMiddleware()(okHandler)

		resp, err := h(context.Background(), Request{})

		require.NoError(t, err)
		assert.Len(t, resp.ID, 36)
	})
}

func TestValidationMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		payload    string
		wantStatus int
		wantMsg    string
	}{
		{name: "get without body passes", method: http.MethodGet, wantStatus: http.StatusOK},
		{name: "delete without body passes", method: http.MethodDelete, wantStatus: http.StatusOK},
		{name: "post with object passes", method: http.MethodPost, payload: `{"name":"x"}`, wantStatus: http.StatusOK},
		{name: "post without body", method: http.MethodPost, wantStatus: http.StatusBadRequest, wantMsg: "Request body is required"},
		{name: "put with whitespace body", method: http.MethodPut, payload: "  \n", wantStatus: http.StatusBadRequest, wantMsg: "Request body is required"},
		{name: "post with malformed json", method: http.MethodPost, payload: `{"name":`, wantStatus: http.StatusBadRequest, wantMsg: "Invalid JSON payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := ValidationMiddleware()(okHandler)

			resp, err := h(context.Background(), Request{ID: "req", Method: tt.method, Payload: []byte(tt.payload)})

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.Status())
			if tt.wantMsg != "" {
				assert.Equal(t, CodeValidation, resp.Error.Code)
				assert.Equal(t, tt.wantMsg, resp.Error.Message)
			}
		})
	}
}

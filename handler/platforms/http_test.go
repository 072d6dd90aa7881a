package platforms

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recontracker/handler"
	"recontracker/handler/mocks"
	obmocks "recontracker/observability/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testRoutes = []handler.Route{
	{Name: "list_items", Method: http.MethodGet, Path: "/api/items"},
	{Name: "create_item", Method: http.MethodPost, Path: "/api/items"},
}

func newTestHandler(worker *mocks.MockWorker) *handler.Handler {
	return handler.NewFactory(worker, obmocks.NewNopProvider()).CreateHTTP()
}

func TestHTTPAdapter_ServeHTTP(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		worker := mocks.NewMockWorker(testRoutes...)
		worker.On("Process", mock.Anything, mock.MatchedBy(func(req handler.Request) bool {
			return req.Route == "create_item" && string(req.Payload) == `{"name":"x"}` &&
				req.Query["program_id"] == "3"
		})).Return(handler.NewSuccessResponse("", http.StatusCreated, map[string]string{"name": "x"}), nil)

		adapter := NewHTTPAdapter(newTestHandler(worker))

		req := httptest.NewRequest(http.MethodPost, "/api/items?program_id=3", bytes.NewBufferString(`{"name":"x"}`))
		req.Header.Set("X-Request-ID", "test-123")
		w := httptest.NewRecorder()
		adapter.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.Equal(t, "test-123", w.Header().Get("X-Request-ID"))
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.JSONEq(t, `{"name":"x"}`, w.Body.String())
		worker.AssertExpectations(t)
	})

	t.Run("preflight", func(t *testing.T) {
		worker := mocks.NewMockWorker(testRoutes...)
		adapter := NewHTTPAdapter(newTestHandler(worker))

		req := httptest.NewRequest(http.MethodOptions, "/api/items", nil)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		adapter.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
		assert.Empty(t, w.Body.String())
		worker.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
	})

	t.Run("health", func(t *testing.T) {
		worker := mocks.NewMockWorker(testRoutes...)
		worker.On("Health", mock.Anything).Return(nil).Once()
		worker.On("Health", mock.Anything).Return(errors.New("down")).Once()
		adapter := NewHTTPAdapter(newTestHandler(worker))

		w := httptest.NewRecorder()
		adapter.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())

		w = httptest.NewRecorder()
		adapter.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"unhealthy"}`, w.Body.String())
	})

	t.Run("body over limit", func(t *testing.T) {
		worker := mocks.NewMockWorker(testRoutes...)
		cfg := handler.DefaultConfig()
		cfg.MaxRequestSize = 8
		h := handler.NewFactory(worker, obmocks.NewNopProvider()).WithConfig(cfg).CreateHTTP()
		adapter := NewHTTPAdapter(h)

		req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(`{"name":"a long name"}`))
		w := httptest.NewRecorder()
		adapter.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
		assert.Contains(t, w.Body.String(), "request body too large")
	})

	t.Run("processing error hides details", func(t *testing.T) {
		worker := mocks.NewMockWorker(testRoutes...)
		worker.ExpectProcess("list_items", handler.Response{}, errors.New("secret driver failure"))
		adapter := NewHTTPAdapter(newTestHandler(worker))

		w := httptest.NewRecorder()
		adapter.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/items", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
		assert.NotContains(t, w.Body.String(), "secret")
	})

	t.Run("unknown route", func(t *testing.T) {
		adapter := NewHTTPAdapter(newTestHandler(mocks.NewMockWorker(testRoutes...)))

		w := httptest.NewRecorder()
		adapter.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nothing", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestCheckHealth(t *testing.T) {
	worker := mocks.NewMockWorker()
	worker.On("Health", mock.Anything).Return(nil)

	status, body := checkHealth(context.Background(), newTestHandler(worker))

	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"healthy"}`, string(body))
}

package handler

import (
	"context"
	"net/http"
)

// testWorker serves a fixed route table and echoes what it was given.
type testWorker struct {
	name    string
	health  error
	process func(ctx context.Context, req Request) (Response, error)
}

func newTestWorker() *testWorker {
	return &testWorker{name: "test-worker"}
}

func (w *testWorker) Name() string {
	return w.name
}

func (w *testWorker) Routes() []Route {
	return []Route{
		{Name: "list_items", Method: http.MethodGet, Path: "/api/items"},
		{Name: "create_item", Method: http.MethodPost, Path: "/api/items"},
		{Name: "update_item", Method: http.MethodPut, Path: "/api/items/{id}"},
		{Name: "delete_item", Method: http.MethodDelete, Path: "/api/items/{id}"},
	}
}

func (w *testWorker) Process(ctx context.Context, req Request) (Response, error) {
	if w.process != nil {
		return w.process(ctx, req)
	}
	return NewSuccessResponse(req.ID, http.StatusOK, map[string]string{
		"route": req.Route,
		"id":    req.Param("id"),
	}), nil
}

func (w *testWorker) Health(ctx context.Context) error {
	return w.health
}

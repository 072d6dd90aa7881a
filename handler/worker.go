package handler

import (
	"context"
)

// Worker defines the interface the API implements.
// Workers process requests and return responses without knowing about
// the underlying platform or transport mechanism.
type Worker interface {
	// Name returns the worker name for identification in logs and metrics.
	Name() string

	// Routes lists every route the worker serves.
	Routes() []Route

	// Process handles a request already matched to one of Routes.
	// Failures the client caused are reported in the Response; a returned
	// error means the request could not be served at all.
	Process(ctx context.Context, request Request) (Response, error)

	// Health checks that the worker's dependencies are reachable.
	Health(ctx context.Context) error
}

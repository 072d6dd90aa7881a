package api

import (
	"context"
	"errors"
	"net/http"

	"recontracker/application/dto"
	"recontracker/domain/repository"
	"recontracker/handler"
	"recontracker/observability/types"
)

// messages overrides the client-facing message per error class for a route.
type messages struct {
	notFound string
	conflict string
}

// fail maps an operation error onto the error envelope. Storage failures are
// logged in full and reported without details.
func (w *Worker) fail(ctx context.Context, req handler.Request, err error, msg messages) handler.Response {
	var vErr *dto.ValidationError
	switch {
	case errors.As(err, &vErr):
		return handler.NewErrorResponse(req.ID, http.StatusBadRequest, handler.CodeValidation,
			"Invalid request", vErr.Error())

	case errors.Is(err, repository.ErrNotFound):
		return handler.NewErrorResponse(req.ID, http.StatusNotFound, handler.CodeNotFound,
			orDefault(msg.notFound, "Resource not found"), "")

	case errors.Is(err, repository.ErrConflict):
		return handler.NewErrorResponse(req.ID, http.StatusConflict, handler.CodeConflict,
			orDefault(msg.conflict, "Referenced resource conflict"), "")

	default:
		w.logger.Error(ctx, "Operation failed", err, types.Fields{
			"route":      req.Route,
			"request_id": req.ID,
		})
		return handler.NewErrorResponse(req.ID, http.StatusInternalServerError, handler.CodeInternal,
			"Internal server error", "")
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// Package api serves the tracker's JSON API on top of the handler package:
// it declares the route table and turns each routed request into a tracker
// service call.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"recontracker/application/dto"
	"recontracker/domain/entity"
	"recontracker/domain/repository"
	"recontracker/handler"
	"recontracker/observability/types"
)

// Service is the set of tracker operations the API exposes.
type Service interface {
	ListPrograms(ctx context.Context) ([]entity.Program, error)
	CreateProgram(ctx context.Context, req *dto.ProgramCreate) (*entity.Program, error)
	DeleteProgram(ctx context.Context, id int64) error
	ListTargets(ctx context.Context, filter repository.TargetFilter) ([]entity.Target, error)
	CreateTarget(ctx context.Context, req *dto.TargetCreate) (*entity.Target, error)
	DeleteTarget(ctx context.Context, id int64) error
	ListVulnerabilities(ctx context.Context, filter repository.VulnerabilityFilter) ([]entity.Vulnerability, error)
	CreateVulnerability(ctx context.Context, req *dto.VulnerabilityCreate) (*entity.Vulnerability, error)
	UpdateVulnerability(ctx context.Context, id int64, req *dto.VulnerabilityCreate) (*entity.Vulnerability, error)
	DeleteVulnerability(ctx context.Context, id int64) error
	GetStats(ctx context.Context) (*entity.Stats, error)
	Health(ctx context.Context) error
}

// Worker implements handler.Worker for the tracker API.
type Worker struct {
	service Service
	logger  types.Logger
	metrics types.Metrics
	routes  map[string]routeFunc
}

type routeFunc func(ctx context.Context, req handler.Request) (handler.Response, error)

// NewWorker creates the API worker
func NewWorker(service Service, logger types.Logger, metrics types.Metrics) *Worker {
	w := &Worker{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
	w.routes = map[string]routeFunc{
		RouteRoot:                w.root,
		RouteListPrograms:        w.listPrograms,
		RouteCreateProgram:       w.createProgram,
		RouteDeleteProgram:       w.deleteProgram,
		RouteListTargets:         w.listTargets,
		RouteCreateTarget:        w.createTarget,
		RouteDeleteTarget:        w.deleteTarget,
		RouteListVulnerabilities: w.listVulnerabilities,
		RouteCreateVulnerability: w.createVulnerability,
		RouteUpdateVulnerability: w.updateVulnerability,
		RouteDeleteVulnerability: w.deleteVulnerability,
		RouteStats:               w.stats,
	}
	return w
}

// Name returns the worker name
func (w *Worker) Name() string {
	return "tracker"
}

// Routes returns the API route table
func (w *Worker) Routes() []handler.Route {
	return Routes()
}

// Process dispatches a routed request to its operation
func (w *Worker) Process(ctx context.Context, req handler.Request) (handler.Response, error) {
	fn, ok := w.routes[req.Route]
	if !ok {
		return handler.NewErrorResponse(req.ID, http.StatusNotFound, handler.CodeNotFound,
			"Route not found", req.Path), nil
	}
	return fn(ctx, req)
}

// Health reports whether the store is reachable
func (w *Worker) Health(ctx context.Context) error {
	if err := w.service.Health(ctx); err != nil {
		w.metrics.RecordError("health_check", "unhealthy")
		return err
	}
	w.metrics.RecordSuccess("health_check")
	return nil
}

type statusBody struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type messageBody struct {
	Message string `json:"message"`
}

func (w *Worker) root(ctx context.Context, req handler.Request) (handler.Response, error) {
	return handler.NewSuccessResponse(req.ID, http.StatusOK, statusBody{
		Message: "Bug Bounty Recon Dashboard API",
		Status:  "running",
	}), nil
}

func (w *Worker) listPrograms(ctx context.Context, req handler.Request) (handler.Response, error) {
	programs, err := w.service.ListPrograms(ctx)
	if err != nil {
		return w.fail(ctx, req, err, messages{}), nil
	}
	return handler.NewSuccessResponse(req.ID, http.StatusOK, programs), nil
}

func (w *Worker) createProgram(ctx context.Context, req handler.Request) (handler.Response, error) {
	var body dto.ProgramCreate
	if err := dto.Decode(req.Payload, &body); err != nil {
		return w.fail(ctx, req, err, messages{}), nil
	}

	program, err := w.service.CreateProgram(ctx, &body)
	if err != nil {
		return w.fail(ctx, req, err, messages{}), nil
	}
	return handler.NewSuccessResponse(req.ID, http.StatusCreated, program), nil
}

func (w *Worker) deleteProgram(ctx context.Context, req handler.Request) (handler.Response, error) {
	id, err := pathID(req)
	if err == nil {
		err = w.service.DeleteProgram(ctx, id)
	}
	if err != nil {
		return w.fail(ctx, req, err, messages{
			notFound: "Program not found",
			conflict: "Program still has targets",
		}), nil
	}
	return handler.NewSuccessResponse(req.ID, http.StatusOK, messageBody{Message: "Program deleted successfully"}), nil
}

func (w *Worker) listTargets(ctx context.Context, req handler.Request) (handler.Response, error) {
	programID, err := queryID(req, "program_id")
	if err != nil {
		return w.fail(ctx, req, err, messages{}), nil
	}

	targets, err := w.service.ListTargets(ctx, repository.TargetFilter{ProgramID: programID})
	if err != nil {
		return w.fail(ctx, req, err, messages{}), nil
	}
	return handler.NewSuccessResponse(req.ID, http.StatusOK, targets), nil
}

func (w *Worker) createTarget(ctx context.Context, req handler.Request) (handler.Response, error) {
	var body dto.TargetCreate
	if err := dto.Decode(req.Payload, &body); err != nil {
		return w.fail(ctx, req, err, messages{}), nil
	}

	target, err := w.service.CreateTarget(ctx, &body)
	if err != nil {
		return w.fail(ctx, req, err, messages{conflict: "Program does not exist"}), nil
	}
	return handler.NewSuccessResponse(req.ID, http.StatusCreated, target), nil
}

func (w *Worker) deleteTarget(ctx context.Context, req handler.Request) (handler.Response, error) {
	id, err := pathID(req)
	if err == nil {
		err = w.service.DeleteTarget(ctx, id)
	}
	if err != nil {
		return w.fail(ctx, req, err, messages{
			notFound: "Target not found",
			conflict: "Target still has vulnerabilities",
		}), nil
	}
	return handler.NewSuccessResponse(req.ID, http.StatusOK, messageBody{Message: "Target deleted successfully"}), nil
}

func (w *Worker) listVulnerabilities(ctx context.Context, req handler.Request) (handler.Response, error) {
	targetID, err := queryID(req, "target_id")
	if err != nil {
		return w.fail(ctx, req, err, messages{}), nil
	}

	vulns, err := w.service.ListVulnerabilities(ctx, repository.VulnerabilityFilter{TargetID: targetID})
	if err != nil {
		return w.fail(ctx, req, err, messages{}), nil
	}
	return handler.NewSuccessResponse(req.ID, http.StatusOK, vulns), nil
}

func (w *Worker) createVulnerability(ctx context.Context, req handler.Request) (handler.Response, error) {
	var body dto.VulnerabilityCreate
	if err := dto.Decode(req.Payload, &body); err != nil {
		return w.fail(ctx, req, err, messages{}), nil
	}

	vuln, err := w.service.CreateVulnerability(ctx, &body)
	if err != nil {
		return w.fail(ctx, req, err, messages{conflict: "Target does not exist"}), nil
	}
	return handler.NewSuccessResponse(req.ID, http.StatusCreated, vuln), nil
}

func (w *Worker) updateVulnerability(ctx context.Context, req handler.Request) (handler.Response, error) {
	id, err := pathID(req)
	if err != nil {
		return w.fail(ctx, req, err, messages{}), nil
	}

	var body dto.VulnerabilityCreate
	if err := dto.Decode(req.Payload, &body); err != nil {
		return w.fail(ctx, req, err, messages{}), nil
	}

	vuln, err := w.service.UpdateVulnerability(ctx, id, &body)
	if err != nil {
		return w.fail(ctx, req, err, messages{
			notFound: "Vulnerability not found",
			conflict: "Target does not exist",
		}), nil
	}
	return handler.NewSuccessResponse(req.ID, http.StatusOK, vuln), nil
}

func (w *Worker) deleteVulnerability(ctx context.Context, req handler.Request) (handler.Response, error) {
	id, err := pathID(req)
	if err == nil {
		err = w.service.DeleteVulnerability(ctx, id)
	}
	if err != nil {
		return w.fail(ctx, req, err, messages{notFound: "Vulnerability not found"}), nil
	}
	return handler.NewSuccessResponse(req.ID, http.StatusOK, messageBody{Message: "Vulnerability deleted successfully"}), nil
}

func (w *Worker) stats(ctx context.Context, req handler.Request) (handler.Response, error) {
	stats, err := w.service.GetStats(ctx)
	if err != nil {
		return w.fail(ctx, req, err, messages{}), nil
	}
	return handler.NewSuccessResponse(req.ID, http.StatusOK, stats), nil
}

// pathID parses the {id} path variable.
func pathID(req handler.Request) (int64, error) {
	raw := req.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, dto.NewValidationError("id", fmt.Sprintf("must be a positive integer, got %q", raw))
	}
	return id, nil
}

// queryID parses an optional integer filter. An absent parameter means no filter.
func queryID(req handler.Request, name string) (*int64, error) {
	raw, ok := req.QueryValue(name)
	if !ok {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, dto.NewValidationError(name, fmt.Sprintf("must be an integer, got %q", raw))
	}
	return &id, nil
}

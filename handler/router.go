package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
)

var (
	// ErrRouteNotFound is returned when no route matches the path.
	ErrRouteNotFound = errors.New("route not found")

	// ErrMethodNotAllowed is returned when the path matches but the method does not.
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// Route binds a method and path template to a name the worker dispatches on.
// Path templates use gorilla/mux syntax, e.g. "/api/programs/{id}".
type Route struct {
	Name   string
	Method string
	Path   string
}

// matched is attached to every route; only the match result is used.
var matched = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})

// Router matches platform-agnostic requests against a route table.
type Router struct {
	mux *mux.Router
}

// NewRouter builds a router over routes.
func NewRouter(routes []Route) *Router {
	r := mux.NewRouter()
	for _, route := range routes {
		r.NewRoute().Name(route.Name).Path(route.Path).Methods(route.Method).Handler(matched)
	}
	return &Router{mux: r}
}

// Match resolves req's method and path. On success it returns req with
// Route and PathParams filled in.
func (r *Router) Match(req Request) (Request, error) {
	httpReq := &http.Request{
		Method: req.Method,
		URL:    &url.URL{Path: req.Path},
		Header: http.Header{},
	}

	var match mux.RouteMatch
	if !r.mux.Match(httpReq, &match) || match.MatchErr != nil {
		if errors.Is(match.MatchErr, mux.ErrMethodMismatch) {
			return req, ErrMethodNotAllowed
		}
		return req, ErrRouteNotFound
	}

	req.Route = match.Route.GetName()
	req.PathParams = make(map[string]string, len(match.Vars))
	for k, v := range match.Vars {
		req.PathParams[k] = v
	}
	return req, nil
}

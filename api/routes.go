package api

import (
	"net/http"

	"recontracker/handler"
)

// Route names, also used as metric operation labels.
const (
	RouteRoot                = "root"
	RouteListPrograms        = "programs_list"
	RouteCreateProgram       = "programs_create"
	RouteDeleteProgram       = "programs_delete"
	RouteListTargets         = "targets_list"
	RouteCreateTarget        = "targets_create"
	RouteDeleteTarget        = "targets_delete"
	RouteListVulnerabilities = "vulnerabilities_list"
	RouteCreateVulnerability = "vulnerabilities_create"
	RouteUpdateVulnerability = "vulnerabilities_update"
	RouteDeleteVulnerability = "vulnerabilities_delete"
	RouteStats               = "stats"
)

// Routes returns the API route table. /health and /metrics are served by the
// platform adapter and the runtime.
func Routes() []handler.Route {
	return []handler.Route{
		{Name: RouteRoot, Method: http.MethodGet, Path: "/"},

		{Name: RouteListPrograms, Method: http.MethodGet, Path: "/api/programs"},
		{Name: RouteCreateProgram, Method: http.MethodPost, Path: "/api/programs"},
		{Name: RouteDeleteProgram, Method: http.MethodDelete, Path: "/api/programs/{id}"},

		{Name: RouteListTargets, Method: http.MethodGet, Path: "/api/targets"},
		{Name: RouteCreateTarget, Method: http.MethodPost, Path: "/api/targets"},
		{Name: RouteDeleteTarget, Method: http.MethodDelete, Path: "/api/targets/{id}"},

		{Name: RouteListVulnerabilities, Method: http.MethodGet, Path: "/api/vulnerabilities"},
		{Name: RouteCreateVulnerability, Method: http.MethodPost, Path: "/api/vulnerabilities"},
		{Name: RouteUpdateVulnerability, Method: http.MethodPut, Path: "/api/vulnerabilities/{id}"},
		{Name: RouteDeleteVulnerability, Method: http.MethodDelete, Path: "/api/vulnerabilities/{id}"},

		{Name: RouteStats, Method: http.MethodGet, Path: "/api/stats"},
	}
}

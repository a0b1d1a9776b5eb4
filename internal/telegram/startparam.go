package telegram

import "strings"

var startParamRoutes = map[string]string{
	"tasks":     "/tasks",
	"plan_fact": "/plan-fact",
	"modules":   "/modules",
	"gantt":     "/gantt",
	"documents": "/documents",
}

// RouteForStartParam maps a deep-link start_param to a Mini App route.
// ok is false when the parameter names no known screen.
func RouteForStartParam(param string) (route string, ok bool) {
	if strings.HasPrefix(param, "task_") {
		return "/tasks", true
	}
	route, ok = startParamRoutes[param]
	return route, ok
}

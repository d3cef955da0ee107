// Package adapters enumerates the routes of live gin, echo and fiber engines as routedoc routes.
package adapters

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/toyz/routedoc/pkg/routedoc"
)

// registeredRoute is a single method/path/handler triple reported by an engine
type registeredRoute struct {
	method  string
	path    string
	handler string
	name    string
}

// buildRoutes converts engine routes into routedoc routes.
// Registrations sharing a path and handler are merged into one route answering to all their methods.
func buildRoutes(registered []registeredRoute) []*routedoc.Route {
	var routes []*routedoc.Route
	index := make(map[string]*routedoc.Route)

	for _, rr := range registered {
		method := strings.ToUpper(rr.method)
		if method == "" || method != rr.method {
			// engine-internal pseudo methods are lower-case (e.g. echo's route-not-found marker)
			continue
		}

		path, requirements := routedoc.FromColonPath(rr.path)
		controller := routedoc.ControllerRefFromFunc(rr.handler)

		key := path + "\x00" + controller
		if route, ok := index[key]; ok {
			route.SetMethods(append(route.Methods, method)...)
			if route.Name == "" {
				route.Name = rr.name
			}
			continue
		}

		route := routedoc.NewRoute(path, controller, method)
		route.Name = rr.name
		for name, pattern := range requirements {
			route.SetRequirement(name, pattern)
		}
		index[key] = route
		routes = append(routes, route)
	}

	return routes
}

// funcName returns the runtime name of a handler function
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	if f := runtime.FuncForPC(v.Pointer()); f != nil {
		return f.Name()
	}
	return ""
}

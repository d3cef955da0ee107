package adapters

import (
	"cmp"
	"slices"

	"github.com/labstack/echo/v4"
	"github.com/toyz/routedoc/pkg/routedoc"
)

// EchoRoutes returns the routes registered on an Echo instance.
// Echo names routes after their handler unless a name was set, so the name doubles as the handler reference.
func EchoRoutes(e *echo.Echo) []*routedoc.Route {
	echoRoutes := e.Routes()
	// Echo reports routes in map order
	slices.SortStableFunc(echoRoutes, func(a, b *echo.Route) int {
		if c := cmp.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		if c := cmp.Compare(methodIndex(a.Method), methodIndex(b.Method)); c != 0 {
			return c
		}
		return cmp.Compare(a.Method, b.Method)
	})

	var registered []registeredRoute
	for _, r := range echoRoutes {
		registered = append(registered, registeredRoute{
			method:  r.Method,
			path:    r.Path,
			handler: r.Name,
		})
	}
	return buildRoutes(registered)
}

func methodIndex(method string) int {
	if i := slices.Index(routedoc.MethodOrder, method); i >= 0 {
		return i
	}
	return len(routedoc.MethodOrder)
}

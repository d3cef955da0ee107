package adapters

import (
	"github.com/gofiber/fiber/v2"
	"github.com/toyz/routedoc/pkg/routedoc"
)

// FiberRoutes returns the routes registered on a Fiber app, without middleware mounts.
// Fiber registers a HEAD twin for every GET route; those twins are dropped.
func FiberRoutes(app *fiber.App) []*routedoc.Route {
	fiberRoutes := app.GetRoutes(true)

	gets := make(map[string]bool)
	for _, r := range fiberRoutes {
		if r.Method == fiber.MethodGet {
			gets[r.Path+"\x00"+lastHandler(r)] = true
		}
	}

	var registered []registeredRoute
	for _, r := range fiberRoutes {
		handler := lastHandler(r)
		if r.Method == fiber.MethodHead && gets[r.Path+"\x00"+handler] {
			continue
		}
		registered = append(registered, registeredRoute{
			method:  r.Method,
			path:    r.Path,
			handler: handler,
			name:    r.Name,
		})
	}
	return buildRoutes(registered)
}

func lastHandler(r fiber.Route) string {
	if len(r.Handlers) == 0 {
		return ""
	}
	return funcName(r.Handlers[len(r.Handlers)-1])
}

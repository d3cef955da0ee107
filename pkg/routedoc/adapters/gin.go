package adapters

import (
	"github.com/gin-gonic/gin"
	"github.com/toyz/routedoc/pkg/routedoc"
)

// GinRoutes returns the routes registered on a Gin engine
func GinRoutes(engine *gin.Engine) []*routedoc.Route {
	var registered []registeredRoute
	for _, info := range engine.Routes() {
		registered = append(registered, registeredRoute{
			method:  info.Method,
			path:    info.Path,
			handler: info.Handler,
		})
	}
	return buildRoutes(registered)
}

package routedoc

import (
	"slices"
	"sync"
)

// RouteRegistry provides access to the routes of an application
type RouteRegistry interface {
	// Routes returns all registered routes in registration order
	Routes() []*Route

	// ByController returns routes handled by a controller reference
	ByController(controller string) []*Route

	// ByMethod returns routes answering to an HTTP method
	ByMethod(method string) []*Route

	// ByName returns the route with the given name
	ByName(name string) (*Route, bool)

	// Register adds routes to the registry
	Register(routes ...*Route)
}

// InMemoryRegistry implements RouteRegistry using an in-memory slice
type InMemoryRegistry struct {
	mu     sync.RWMutex
	routes []*Route
}

// NewInMemoryRegistry creates a new in-memory route registry
func NewInMemoryRegistry(routes ...*Route) *InMemoryRegistry {
	r := &InMemoryRegistry{routes: make([]*Route, 0, len(routes))}
	r.Register(routes...)
	return r
}

// Routes returns all registered routes
func (r *InMemoryRegistry) Routes() []*Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.routes)
}

// ByController returns routes filtered by controller reference
func (r *InMemoryRegistry) ByController(controller string) []*Route {
	return r.filter(func(route *Route) bool {
		return route.Controller == controller
	})
}

// ByMethod returns routes filtered by HTTP method
func (r *InMemoryRegistry) ByMethod(method string) []*Route {
	return r.filter(func(route *Route) bool {
		return slices.Contains(route.Methods, method)
	})
}

// ByName returns the first route registered under name
func (r *InMemoryRegistry) ByName(name string) (*Route, bool) {
	matches := r.filter(func(route *Route) bool {
		return name != "" && route.Name == name
	})
	if len(matches) == 0 {
		return nil, false
	}
	return matches[0], true
}

// Register adds routes to the registry, ignoring nil ones
func (r *InMemoryRegistry) Register(routes ...*Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, route := range routes {
		if route != nil {
			r.routes = append(r.routes, route)
		}
	}
}

// Len returns the number of registered routes
func (r *InMemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.routes)
}

func (r *InMemoryRegistry) filter(keep func(*Route) bool) []*Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var filtered []*Route
	for _, route := range r.routes {
		if keep(route) {
			filtered = append(filtered, route)
		}
	}
	return filtered
}

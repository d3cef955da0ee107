package routedoc

import (
	"fmt"
)

// nilRouteType is the reported type of a nil *Route element
var nilRouteType = fmt.Sprintf("%T", (*Route)(nil))

// InvalidRouteError is returned when an element of the route list is not a route
type InvalidRouteError struct {
	Index int    `json:"index"`
	Type  string `json:"type"`
}

// Error implements the error interface
func (e *InvalidRouteError) Error() string {
	if e.Type == nilRouteType {
		return fmt.Sprintf("all elements of routes must be routes, nil route given at index %d", e.Index)
	}
	return fmt.Sprintf("all elements of routes must be routes, %q given at index %d", e.Type, e.Index)
}

// AsRoutes converts a loosely typed list into routes, rejecting anything that is not a route
func AsRoutes(items []any) ([]*Route, error) {
	routes := make([]*Route, 0, len(items))
	for i, item := range items {
		switch r := item.(type) {
		case *Route:
			if r == nil {
				return nil, &InvalidRouteError{Index: i, Type: fmt.Sprintf("%T", item)}
			}
			routes = append(routes, r)
		case Route:
			routes = append(routes, &r)
		default:
			return nil, &InvalidRouteError{Index: i, Type: fmt.Sprintf("%T", item)}
		}
	}
	return routes, nil
}

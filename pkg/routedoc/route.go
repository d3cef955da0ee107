package routedoc

import (
	"strings"
)

// Route describes a registered route: a path and its HTTP methods mapped to a controller.
type Route struct {
	// Path is the route path with brace placeholders (e.g., "/users/{id}")
	Path string `json:"path" yaml:"path"`

	// Methods are the upper-cased HTTP methods the route answers to, in registration order
	Methods []string `json:"methods" yaml:"methods"`

	// Controller is the controller reference in "Type::Method" form
	Controller string `json:"controller" yaml:"controller"`

	// Name is the optional route name
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Requirements maps path parameter names to their pattern (e.g., {"id": `\d+`})
	Requirements map[string]string `json:"requirements,omitempty" yaml:"requirements,omitempty"`

	// Options holds raw route options such as "security" and "form"
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// Route option keys understood by the collector
const (
	SecurityOption   = "security"
	FormOption       = "form"
	MiddlewareOption = "middleware"
)

// NewRoute creates a route for the given path and controller reference
func NewRoute(path, controller string, methods ...string) *Route {
	r := &Route{
		Path:         path,
		Controller:   controller,
		Requirements: make(map[string]string),
		Options:      make(map[string]any),
	}
	r.SetMethods(methods...)
	return r
}

// SetMethods replaces the route methods, upper-casing and de-duplicating them
func (r *Route) SetMethods(methods ...string) {
	out := make([]string, 0, len(methods))
	seen := make(map[string]bool, len(methods))
	for _, m := range methods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	r.Methods = out
}

// SetOption sets a raw route option
func (r *Route) SetOption(key string, value any) *Route {
	if r.Options == nil {
		r.Options = make(map[string]any)
	}
	r.Options[key] = value
	return r
}

// Option returns a raw route option
func (r *Route) Option(key string) (any, bool) {
	v, ok := r.Options[key]
	return v, ok
}

// SetRequirement sets the pattern for a path parameter
func (r *Route) SetRequirement(name, pattern string) *Route {
	if r.Requirements == nil {
		r.Requirements = make(map[string]string)
	}
	r.Requirements[name] = pattern
	return r
}

// Requirement returns the pattern for a path parameter, or "" when absent
func (r *Route) Requirement(name string) string {
	return r.Requirements[name]
}

// Security returns the security option when it is a mapping
func (r *Route) Security() (map[string]any, bool) {
	v, ok := r.Options[SecurityOption]
	if !ok {
		return nil, false
	}
	switch s := v.(type) {
	case map[string]any:
		return s, true
	case map[string][]string:
		m := make(map[string]any, len(s))
		for k, roles := range s {
			m[k] = roles
		}
		return m, true
	case map[string]string:
		m := make(map[string]any, len(s))
		for k, role := range s {
			m[k] = role
		}
		return m, true
	}
	return nil, false
}

// Roles returns the "roles" entry of the security mapping
func (r *Route) Roles() ([]string, bool) {
	sec, ok := r.Security()
	if !ok {
		return nil, false
	}
	v, ok := sec["roles"]
	if !ok {
		return nil, false
	}
	return toStrings(v), true
}

// Form returns the "form" option verbatim
func (r *Route) Form() any {
	return r.Options[FormOption]
}

// JoinedMethods returns the methods joined by "|"
func (r *Route) JoinedMethods() string {
	return strings.Join(r.Methods, "|")
}

func toStrings(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case []string:
		return append([]string{}, t...)
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}

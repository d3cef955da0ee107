package routedoc

import "slices"

// DefaultView is the view used when none is requested and the view an untagged annotation belongs to
const DefaultView = "default"

// Origin tells where an annotation came from
type Origin int

const (
	// OriginExplicit marks an annotation written on the controller method
	OriginExplicit Origin = iota
	// OriginSynthesized marks a default annotation generated for an undocumented route
	OriginSynthesized
	// OriginProvider marks an annotation supplied by an AnnotationProvider
	OriginProvider
)

// String returns the string representation of the origin
func (o Origin) String() string {
	switch o {
	case OriginExplicit:
		return "explicit"
	case OriginSynthesized:
		return "synthesized"
	case OriginProvider:
		return "provider"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (o Origin) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (o *Origin) UnmarshalText(text []byte) error {
	switch string(text) {
	case "synthesized":
		*o = OriginSynthesized
	case "provider":
		*o = OriginProvider
	default:
		*o = OriginExplicit
	}
	return nil
}

// Filter is a query filter accepted by a listing route
type Filter struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Parameter is a body or query parameter of an operation
type Parameter struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Requirement is a path parameter constraint
type Requirement struct {
	Name        string `json:"name" yaml:"name"`
	Pattern     string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Annotation is the documentation attached to a route
type Annotation struct {
	Origin              Origin         `json:"origin" yaml:"origin"`
	Resource            bool           `json:"resource" yaml:"resource"`
	ResourceName        string         `json:"resource_name,omitempty" yaml:"resource_name,omitempty"`
	Section             string         `json:"section,omitempty" yaml:"section,omitempty"`
	Description         string         `json:"description,omitempty" yaml:"description,omitempty"`
	StatusCodes         map[int]string `json:"status_codes,omitempty" yaml:"status_codes,omitempty"`
	Authentication      bool           `json:"authentication" yaml:"authentication"`
	AuthenticationRoles []string       `json:"authentication_roles,omitempty" yaml:"authentication_roles,omitempty"`
	Input               any            `json:"input,omitempty" yaml:"input,omitempty"`
	Filters             []Filter       `json:"filters,omitempty" yaml:"filters,omitempty"`
	Parameters          []Parameter    `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Requirements        []Requirement  `json:"requirements,omitempty" yaml:"requirements,omitempty"`
	Views               []string       `json:"views,omitempty" yaml:"views,omitempty"`
	Tags                []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	Deprecated          bool           `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`

	// Location is the "file:line" of an explicit annotation
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
}

// InView reports whether the annotation belongs to the given view
func (a *Annotation) InView(view string) bool {
	if slices.Contains(a.Views, view) {
		return true
	}
	return len(a.Views) == 0 && view == DefaultView
}

// HasRequirement reports whether a requirement with the given name is declared
func (a *Annotation) HasRequirement(name string) bool {
	return slices.ContainsFunc(a.Requirements, func(r Requirement) bool {
		return r.Name == name
	})
}

// Clone returns a deep copy of the annotation
func (a Annotation) Clone() Annotation {
	c := a
	if a.StatusCodes != nil {
		c.StatusCodes = make(map[int]string, len(a.StatusCodes))
		for code, text := range a.StatusCodes {
			c.StatusCodes[code] = text
		}
	}
	c.AuthenticationRoles = slices.Clone(a.AuthenticationRoles)
	c.Filters = slices.Clone(a.Filters)
	c.Parameters = slices.Clone(a.Parameters)
	c.Requirements = slices.Clone(a.Requirements)
	c.Views = slices.Clone(a.Views)
	c.Tags = slices.Clone(a.Tags)
	return c
}

// StandardFilters returns the pagination filters given to undocumented listing routes
func StandardFilters() []Filter {
	return []Filter{
		{Name: "filter[offset]", Type: "integer"},
		{Name: "filter[limit]", Type: "integer"},
		{Name: "filter[orderBy]", Type: "string"},
		{Name: "filter[order]", Type: "string"},
		{Name: "filter[count]", Type: "bool"},
	}
}

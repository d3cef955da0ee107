package routedoc

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Method is a controller method a route resolves to
type Method struct {
	// Controller is the "Type::Method" reference
	Controller string
	Receiver   string
	Name       string
	Package    string
	File       string
	Line       int

	// Doc is the method's doc comment without annotation lines
	Doc string
}

// MethodResolver resolves a controller reference to its method
type MethodResolver interface {
	ResolveMethod(controller string) (*Method, bool)
}

// MethodResolverFunc adapts a function to MethodResolver
type MethodResolverFunc func(controller string) (*Method, bool)

// ResolveMethod calls f(controller)
func (f MethodResolverFunc) ResolveMethod(controller string) (*Method, bool) {
	return f(controller)
}

// AnnotationReader returns the documentation annotations attached to a method, in source order
type AnnotationReader interface {
	MethodAnnotations(method *Method) []Annotation
}

// AnnotationReaderFunc adapts a function to AnnotationReader
type AnnotationReaderFunc func(method *Method) []Annotation

// MethodAnnotations calls f(method)
func (f AnnotationReaderFunc) MethodAnnotations(method *Method) []Annotation {
	return f(method)
}

// Annotated pairs an annotation with the route it documents
type Annotated struct {
	Annotation Annotation `json:"annotation" yaml:"annotation"`
	Route      *Route     `json:"route" yaml:"route"`
}

// AnnotationProvider supplies documentation entries that do not come from the route list
type AnnotationProvider interface {
	Annotations() []Annotated
}

// StaticProvider is an AnnotationProvider over a fixed list
type StaticProvider []Annotated

// Annotations returns the provider's entries
func (p StaticProvider) Annotations() []Annotated {
	return p
}

// Option configures a Collector
type Option func(*Collector)

// WithExcludedSections drops explicit annotations of the given sections
func WithExcludedSections(sections ...string) Option {
	return func(c *Collector) {
		for _, s := range sections {
			c.excludedSections[s] = true
		}
	}
}

// WithProviders adds annotation providers
func WithProviders(providers ...AnnotationProvider) Option {
	return func(c *Collector) {
		c.providers = append(c.providers, providers...)
	}
}

// Collector extracts documentation entries from routes
type Collector struct {
	resolver         MethodResolver
	reader           AnnotationReader
	providers        []AnnotationProvider
	excludedSections map[string]bool
}

// NewCollector creates a collector over the given resolver and annotation reader
func NewCollector(resolver MethodResolver, reader AnnotationReader, opts ...Option) *Collector {
	c := &Collector{
		resolver:         resolver,
		reader:           reader,
		excludedSections: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect returns the documentation entries of routes for a view, grouped by resource and ordered for rendering.
// An empty view selects DefaultView. A nil route fails the whole call with an *InvalidRouteError.
func (c *Collector) Collect(routes []*Route, view string) ([]Entry, error) {
	if view == "" {
		view = DefaultView
	}

	var entries []Entry
	var resources []string

	for i, route := range routes {
		if route == nil {
			return nil, &InvalidRouteError{Index: i, Type: fmt.Sprintf("%T", route)}
		}

		method, ok := c.resolver.ResolveMethod(route.Controller)
		if !ok || method == nil {
			continue
		}

		if isSynthesizable(route.Path) {
			annotation, ok := c.firstAnnotation(method)
			if !ok {
				annotation = synthesize(route)
			} else if annotation.Resource {
				resources = append(resources, resourceCandidate(annotation, route))
			}
			entries = append(entries, bind(annotation, route, method))
			continue
		}

		annotation, ok := c.firstAnnotation(method)
		if !ok || c.excludedSections[annotation.Section] || !annotation.InView(view) {
			continue
		}
		if annotation.Resource {
			resources = append(resources, resourceCandidate(annotation, route))
		}
		entries = append(entries, bind(annotation, route, method))
	}

	for _, provider := range c.providers {
		for _, item := range provider.Annotations() {
			if item.Route == nil {
				continue
			}
			annotation := item.Annotation.Clone()
			annotation.Origin = OriginProvider
			method, _ := c.resolver.ResolveMethod(item.Route.Controller)
			entries = append(entries, bind(annotation, item.Route, method))
		}
	}

	assignResources(entries, resources)
	sortEntries(entries)

	return entries, nil
}

func (c *Collector) firstAnnotation(method *Method) (Annotation, bool) {
	if c.reader == nil {
		return Annotation{}, false
	}
	annotations := c.reader.MethodAnnotations(method)
	if len(annotations) == 0 {
		return Annotation{}, false
	}
	a := annotations[0].Clone()
	a.Origin = OriginExplicit
	return a, true
}

// isSynthesizable excludes framework-internal routes ("/_...") and the root route
func isSynthesizable(path string) bool {
	return !strings.HasPrefix(path, "/_") && path != "/"
}

func synthesize(route *Route) Annotation {
	roles, hasRoles := route.Roles()
	if !hasRoles {
		roles = []string{}
	}

	var description string
	if parts := strings.Split(route.Controller, "::"); len(parts) > 1 {
		description = parts[1]
	}

	var filters []Filter
	if len(route.Methods) == 1 && route.Methods[0] == "GET" && route.Requirement("id") == "" {
		filters = StandardFilters()
	}

	return Annotation{
		Origin:              OriginSynthesized,
		Resource:            true,
		Section:             sectionOf(route.Path),
		Description:         description,
		StatusCodes:         map[int]string{200: "OK"},
		Authentication:      hasRoles,
		AuthenticationRoles: roles,
		Input:               route.Form(),
		Filters:             filters,
		Parameters:          []Parameter{},
		Requirements:        []Requirement{},
	}
}

// sectionOf returns the first path segment with its first letter upper-cased
func sectionOf(path string) string {
	segment := strings.TrimLeft(path, "/")
	if i := strings.IndexByte(segment, '/'); i >= 0 {
		segment = segment[:i]
	}
	r, size := utf8.DecodeRuneInString(segment)
	if r == utf8.RuneError {
		return segment
	}
	return string(unicode.ToUpper(r)) + segment[size:]
}

func resourceCandidate(annotation Annotation, route *Route) string {
	if annotation.ResourceName != "" {
		return annotation.ResourceName
	}
	return strings.ReplaceAll(route.Path, ".{_format}", "")
}

// bind attaches an annotation to its route, filling what the route and method already tell
func bind(annotation Annotation, route *Route, method *Method) Entry {
	if annotation.Origin != OriginSynthesized {
		if annotation.Description == "" && method != nil {
			annotation.Description = firstLine(method.Doc)
		}
		names := make([]string, 0, len(route.Requirements))
		for name := range route.Requirements {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			if annotation.HasRequirement(name) {
				continue
			}
			annotation.Requirements = append(annotation.Requirements, Requirement{
				Name:    name,
				Pattern: route.Requirements[name],
				Type:    "string",
			})
		}
	}

	return Entry{
		Annotation: annotation,
		Route:      route,
		Method:     method,
	}
}

func firstLine(doc string) string {
	doc = strings.TrimSpace(doc)
	if i := strings.IndexByte(doc, '\n'); i >= 0 {
		doc = doc[:i]
	}
	return strings.TrimSpace(doc)
}

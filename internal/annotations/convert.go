package annotations

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/toyz/routedoc/pkg/routedoc"
)

// RouteSpec is the content of a //axon::route annotation
type RouteSpec struct {
	Methods    []string
	Path       string
	Middleware []string
	Roles      []string
	Form       string
	Name       string
}

// ControllerSpec is the content of a //axon::controller annotation
type ControllerSpec struct {
	Prefix     string
	Middleware []string
}

// ToDoc converts a parsed //axon::doc annotation into a routedoc annotation
func ToDoc(p *ParsedAnnotation) (routedoc.Annotation, error) {
	if p.Kind != DocKind {
		return routedoc.Annotation{}, fmt.Errorf("expected doc annotation, got %s", p.Kind)
	}

	a := routedoc.Annotation{
		Origin:       routedoc.OriginExplicit,
		Resource:     p.Has("Resource"),
		ResourceName: p.GetString("Resource"),
		Section:      p.GetString("Section"),
		Description:  p.GetString("Description"),
		Views:        p.GetStringSlice("Views"),
		Tags:         p.GetStringSlice("Tags"),
		Deprecated:   p.GetBool("Deprecated"),
	}

	if !p.Location.IsEmpty() {
		a.Location = fmt.Sprintf("%s:%d", p.Location.File, p.Location.Line)
	}

	if p.Has("Status") {
		a.StatusCodes = make(map[int]string)
		for _, v := range p.GetValues("Status") {
			code, err := strconv.Atoi(v.Key)
			if err != nil {
				return routedoc.Annotation{}, fmt.Errorf("invalid status code '%s': %w", v.Key, err)
			}
			a.StatusCodes[code] = v.Value
		}
	}

	roles := p.GetStringSlice("Roles")
	a.Authentication = p.GetBool("Auth") || len(roles) > 0
	a.AuthenticationRoles = roles

	if input := p.GetString("Input"); input != "" {
		a.Input = input
	}

	for _, v := range p.GetValues("Filter") {
		a.Filters = append(a.Filters, routedoc.Filter{Name: v.Key, Type: typeOr(v, "string")})
	}
	for _, v := range p.GetValues("Param") {
		a.Parameters = append(a.Parameters, routedoc.Parameter{Name: v.Key, Type: typeOr(v, "string")})
	}
	for _, v := range p.GetValues("Requirement") {
		a.Requirements = append(a.Requirements, routedoc.Requirement{Name: v.Key, Pattern: v.Value, Type: "string"})
	}

	return a, nil
}

// ToRoute converts a parsed //axon::route annotation into a route spec
func ToRoute(p *ParsedAnnotation) (RouteSpec, error) {
	if p.Kind != RouteKind {
		return RouteSpec{}, fmt.Errorf("expected route annotation, got %s", p.Kind)
	}
	if len(p.Args) < 2 {
		return RouteSpec{}, fmt.Errorf("route annotation requires a method and a path")
	}

	spec := RouteSpec{
		Path:       p.Args[len(p.Args)-1],
		Middleware: p.GetStringSlice("Middleware"),
		Roles:      p.GetStringSlice("Roles"),
		Form:       p.GetString("Form"),
		Name:       p.GetString("Name"),
	}
	for _, method := range p.Args[:len(p.Args)-1] {
		spec.Methods = append(spec.Methods, strings.ToUpper(method))
	}
	return spec, nil
}

// ToController converts a parsed //axon::controller annotation into a controller spec
func ToController(p *ParsedAnnotation) (ControllerSpec, error) {
	if p.Kind != ControllerKind {
		return ControllerSpec{}, fmt.Errorf("expected controller annotation, got %s", p.Kind)
	}
	return ControllerSpec{
		Prefix:     strings.TrimSuffix(p.GetString("Prefix"), "/"),
		Middleware: p.GetStringSlice("Middleware"),
	}, nil
}

func typeOr(v Value, fallback string) string {
	if v.Pair && v.Value != "" {
		return v.Value
	}
	return fallback
}

package annotations

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// OptionType describes the shape of an option value
type OptionType int

const (
	// FlagOption is given bare (-Deprecated) or as -Deprecated=true|false
	FlagOption OptionType = iota
	// StringOption takes exactly one value
	StringOption
	// ListOption takes one or more comma-separated values
	ListOption
	// PairsOption takes one or more comma-separated key:value items
	PairsOption
	// FlagOrStringOption is given bare or with a single value
	FlagOrStringOption
)

// String returns a human description of the option type, used in error messages
func (t OptionType) String() string {
	switch t {
	case FlagOption:
		return "flag"
	case StringOption:
		return "single value"
	case ListOption:
		return "comma-separated list"
	case PairsOption:
		return "comma-separated key:value list"
	case FlagOrStringOption:
		return "flag or single value"
	default:
		return "unknown"
	}
}

// OptionSpec defines a single option of an annotation
type OptionSpec struct {
	Type        OptionType
	Description string
	Validator   func(Value) error // applied to every value
}

// AnnotationSchema defines the accepted arguments and options of an annotation kind
type AnnotationSchema struct {
	Kind        Kind
	Description string
	Args        func(args []string) error
	Options     map[string]OptionSpec
	Examples    []string
}

// ValidMethods lists the HTTP methods a route annotation accepts
var ValidMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}

// DocAnnotationSchema defines the schema for //axon::doc annotations
var DocAnnotationSchema = AnnotationSchema{
	Kind:        DocKind,
	Description: "Documents the route handled by a controller method",
	Args:        noArgs,
	Options: map[string]OptionSpec{
		"Resource":    {Type: FlagOrStringOption, Description: "Marks the route as a resource root, optionally naming the resource"},
		"Section":     {Type: StringOption, Description: "Section the route is listed under"},
		"Description": {Type: StringOption, Description: "Free-text description"},
		"Status":      {Type: PairsOption, Description: "Status codes as code:message", Validator: validateStatus},
		"Auth":        {Type: FlagOption, Description: "Route requires authentication"},
		"Roles":       {Type: ListOption, Description: "Roles required to call the route, implies -Auth"},
		"Input":       {Type: StringOption, Description: "Input type or form of the operation"},
		"Filter":      {Type: PairsOption, Description: "Query filters as name:type", Validator: validateName},
		"Param":       {Type: PairsOption, Description: "Parameters as name:type", Validator: validateName},
		"Requirement": {Type: PairsOption, Description: "Path requirements as name:\"regex\"", Validator: validateRequirement},
		"Views":       {Type: ListOption, Description: "Views the route is listed in"},
		"Tags":        {Type: ListOption, Description: "Free-form tags"},
		"Deprecated":  {Type: FlagOption, Description: "Route is deprecated"},
	},
	Examples: []string{
		"//axon::doc -Resource",
		"//axon::doc -Resource=Users -Section=Users",
		"//axon::doc -Description=\"List users\" -Filter=name:string,active:bool",
		"//axon::doc -Status=200:OK,404:\"Not found\" -Roles=ROLE_ADMIN",
		"//axon::doc -Requirement=id:\"\\d+\" -Views=internal",
	},
}

// RouteAnnotationSchema defines the schema for //axon::route annotations
var RouteAnnotationSchema = AnnotationSchema{
	Kind:        RouteKind,
	Description: "Defines an HTTP route handler",
	Args:        validateRouteArgs,
	Options: map[string]OptionSpec{
		"Middleware": {Type: ListOption, Description: "Comma-separated list of middleware names to apply to this route"},
		"Roles":      {Type: ListOption, Description: "Roles the route is secured with"},
		"Form":       {Type: StringOption, Description: "Form type bound to the route"},
		"Name":       {Type: StringOption, Description: "Route name"},
	},
	Examples: []string{
		"//axon::route GET /users",
		"//axon::route GET POST /users/{id:int}/edit",
		"//axon::route PUT /users/{id:int} -Middleware=Auth -Roles=ROLE_ADMIN",
		"//axon::route POST /users -Form=UserForm -Name=users_create",
	},
}

// ControllerAnnotationSchema defines the schema for //axon::controller annotations
var ControllerAnnotationSchema = AnnotationSchema{
	Kind:        ControllerKind,
	Description: "Marks a struct as a controller, optionally prefixing its routes",
	Args:        noArgs,
	Options: map[string]OptionSpec{
		"Prefix": {
			Type:        StringOption,
			Description: "URL prefix to apply to all routes in this controller",
			Validator: func(v Value) error {
				if !strings.HasPrefix(v.Key, "/") {
					return fmt.Errorf("prefix must start with '/', got '%s'", v.Key)
				}
				return nil
			},
		},
		"Middleware": {Type: ListOption, Description: "Comma-separated list of middleware names to apply to all routes in this controller"},
	},
	Examples: []string{
		"//axon::controller",
		"//axon::controller -Prefix=/api/v1",
	},
}

// SchemaFor returns the schema of an annotation kind
func SchemaFor(kind Kind) (*AnnotationSchema, bool) {
	switch kind {
	case DocKind:
		return &DocAnnotationSchema, true
	case RouteKind:
		return &RouteAnnotationSchema, true
	case ControllerKind:
		return &ControllerAnnotationSchema, true
	}
	return nil, false
}

func noArgs(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument '%s'", args[0])
	}
	return nil
}

func validateRouteArgs(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("route annotation requires at least one method and a path (e.g., GET /users)")
	}
	path := args[len(args)-1]
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path must start with '/', got '%s'", path)
	}
	for _, method := range args[:len(args)-1] {
		if !isValidMethod(method) {
			return fmt.Errorf("method must be one of: %s, got '%s'", strings.Join(ValidMethods, ", "), method)
		}
	}
	return nil
}

func isValidMethod(method string) bool {
	method = strings.ToUpper(method)
	for _, valid := range ValidMethods {
		if method == valid {
			return true
		}
	}
	return false
}

func validateStatus(v Value) error {
	code, err := strconv.Atoi(v.Key)
	if err != nil || code < 100 || code > 599 {
		return fmt.Errorf("status code must be an integer between 100 and 599, got '%s'", v.Key)
	}
	return nil
}

var namePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_\[\]\.]*$`)

func validateName(v Value) error {
	if !namePattern.MatchString(v.Key) {
		return fmt.Errorf("invalid name '%s'", v.Key)
	}
	return nil
}

func validateRequirement(v Value) error {
	if err := validateName(v); err != nil {
		return err
	}
	if !v.Pair || v.Value == "" {
		return fmt.Errorf("requirement '%s' needs a pattern", v.Key)
	}
	if _, err := regexp.Compile(v.Value); err != nil {
		return fmt.Errorf("requirement '%s' has an invalid pattern: %v", v.Key, err)
	}
	return nil
}

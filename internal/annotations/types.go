package annotations

import (
	"fmt"
	"strings"

	"github.com/toyz/routedoc/internal/errors"
)

// Prefix starts every annotation comment
const Prefix = "axon::"

// Kind represents the kind of annotation
type Kind int

const (
	DocKind Kind = iota
	RouteKind
	ControllerKind
)

// String returns the string representation of the annotation kind
func (k Kind) String() string {
	switch k {
	case DocKind:
		return "doc"
	case RouteKind:
		return "route"
	case ControllerKind:
		return "controller"
	default:
		return "unknown"
	}
}

// ParseKind converts a string to a Kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case "doc":
		return DocKind, nil
	case "route":
		return RouteKind, nil
	case "controller":
		return ControllerKind, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedKind, s)
	}
}

// SourceLocation represents the location of an annotation in source code
type SourceLocation = errors.SourceLocation

// Value is one comma-separated item of an option value, either a scalar or a key:value pair
type Value struct {
	Key   string // scalar, or the part before ':'
	Value string // part after ':' when Pair is set
	Pair  bool
}

// String renders the value the way it was written, minus quotes
func (v Value) String() string {
	if v.Pair {
		return v.Key + ":" + v.Value
	}
	return v.Key
}

// Option is a parsed -Name[=values] option
type Option struct {
	Name   string
	Values []Value
	Loc    SourceLocation
}

// ParsedAnnotation represents a parsed and validated annotation
type ParsedAnnotation struct {
	Kind     Kind              // annotation kind
	Args     []string          // positional arguments, unquoted
	Options  map[string]Option // options keyed by name
	Location SourceLocation    // source location
	Raw      string            // original annotation text
}

// Has reports whether an option was given
func (p *ParsedAnnotation) Has(name string) bool {
	_, ok := p.Options[name]
	return ok
}

// GetBool returns a flag option: true when given bare, or its explicit true/false value
func (p *ParsedAnnotation) GetBool(name string) bool {
	opt, ok := p.Options[name]
	if !ok {
		return false
	}
	if len(opt.Values) == 0 {
		return true
	}
	return strings.EqualFold(opt.Values[0].Key, "true")
}

// GetString returns the first value of an option, or the default
func (p *ParsedAnnotation) GetString(name string, defaultValue ...string) string {
	if opt, ok := p.Options[name]; ok && len(opt.Values) > 0 {
		return opt.Values[0].String()
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// GetStringSlice returns every value of an option
func (p *ParsedAnnotation) GetStringSlice(name string) []string {
	opt, ok := p.Options[name]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(opt.Values))
	for _, v := range opt.Values {
		out = append(out, v.String())
	}
	return out
}

// GetValues returns the raw values of an option
func (p *ParsedAnnotation) GetValues(name string) []Value {
	return p.Options[name].Values
}

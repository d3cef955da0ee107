package routedoc

import (
	"regexp"
	"strings"
)

// PathPartType represents the type of path part
type PathPartType int

const (
	StaticPart PathPartType = iota
	ParameterPart
	WildcardPart
)

// PathPart represents a single part of a route path
type PathPart struct {
	Type      PathPartType
	Value     string // For static parts: the literal text, for parameters: the parameter name
	ParamType string // For parameters: the type (e.g., "int", "string"), empty for untyped
}

// WildcardParam is the parameter name given to an unnamed wildcard
const WildcardParam = "path"

// Requirement patterns for typed path parameters
const (
	AnyPattern      = `[^/]+`
	IntPattern      = `\d+`
	FloatPattern    = `\d+(\.\d+)?`
	BoolPattern     = `true|false`
	UUIDPattern     = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`
	WildcardPattern = `.*`
)

// PatternFor returns the requirement pattern of a path parameter type
func PatternFor(paramType string) string {
	switch strings.ToLower(paramType) {
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
		return IntPattern
	case "float32", "float64":
		return FloatPattern
	case "bool":
		return BoolPattern
	case "uuid", "uuid.uuid":
		return UUIDPattern
	case "*":
		return WildcardPattern
	default:
		return AnyPattern
	}
}

// ParsePath splits a brace-style path ("/users/{id:int}/files/{*}") into parts
func ParsePath(path string) []PathPart {
	var parts []PathPart

	i := 0
	for i < len(path) {
		if path[i] == '{' {
			j := strings.IndexByte(path[i:], '}')
			if j < 0 {
				// Malformed, keep the rest as static text
				parts = append(parts, PathPart{Type: StaticPart, Value: path[i:]})
				break
			}
			content := path[i+1 : i+j]
			if content == "*" {
				parts = append(parts, PathPart{Type: WildcardPart, Value: WildcardParam})
			} else {
				name, paramType, _ := strings.Cut(content, ":")
				parts = append(parts, PathPart{
					Type:      ParameterPart,
					Value:     strings.TrimSpace(name),
					ParamType: strings.TrimSpace(paramType),
				})
			}
			i += j + 1
			continue
		}

		start := i
		for i < len(path) && path[i] != '{' {
			i++
		}
		parts = append(parts, PathPart{Type: StaticPart, Value: path[start:i]})
	}

	return parts
}

// NormalizePath turns a typed brace path into a plain brace path and its requirements.
// "/users/{id:int}" becomes "/users/{id}" with {"id": `\d+`}.
func NormalizePath(path string) (string, map[string]string) {
	requirements := make(map[string]string)

	var b strings.Builder
	for _, part := range ParsePath(path) {
		switch part.Type {
		case StaticPart:
			b.WriteString(part.Value)
		case ParameterPart:
			b.WriteString("{" + part.Value + "}")
			if _, exists := requirements[part.Value]; !exists {
				requirements[part.Value] = PatternFor(part.ParamType)
			}
		case WildcardPart:
			b.WriteString("{" + part.Value + "}")
			requirements[part.Value] = WildcardPattern
		}
	}

	return b.String(), requirements
}

var colonParamRegex = regexp.MustCompile(`([:*+])([a-zA-Z_][a-zA-Z0-9_]*)?`)

// FromColonPath turns a colon-style path ("/users/:id", "/static/*filepath") into a brace path and its requirements
func FromColonPath(path string) (string, map[string]string) {
	requirements := make(map[string]string)

	segments := strings.Split(path, "/")
	for i, segment := range segments {
		loc := colonParamRegex.FindStringSubmatchIndex(segment)
		if loc == nil || loc[0] != 0 {
			continue
		}
		marker := segment[loc[2]:loc[3]]
		name := ""
		if loc[4] >= 0 {
			name = segment[loc[4]:loc[5]]
		}
		rest := strings.TrimSuffix(segment[loc[1]:], "?")

		switch marker {
		case ":":
			if name == "" {
				continue
			}
			requirements[name] = AnyPattern
		default:
			if name == "" {
				name = WildcardParam
			}
			requirements[name] = WildcardPattern
		}
		segments[i] = "{" + name + "}" + rest
	}

	return strings.Join(segments, "/"), requirements
}

var closureRegex = regexp.MustCompile(`^func\d+$`)

// ControllerRefFromFunc turns a Go runtime function name into a "Type::Method" reference.
//
//	"github.com/acme/app/controllers.(*UserController).List-fm" -> "UserController::List"
//	"github.com/acme/app/controllers.listUsers"                 -> "controllers::listUsers"
func ControllerRefFromFunc(name string) string {
	name = strings.TrimSuffix(name, "-fm")
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	name = strings.ReplaceAll(name, "[...]", "")

	pkg, rest, ok := strings.Cut(name, ".")
	if !ok {
		return name
	}

	if strings.HasPrefix(rest, "(") {
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			return pkg + "::" + rest
		}
		receiver := strings.TrimPrefix(rest[1:end], "*")
		method := strings.TrimPrefix(rest[end+1:], ".")
		method, _, _ = strings.Cut(method, ".")
		return receiver + "::" + method
	}

	parts := strings.Split(rest, ".")
	if len(parts) >= 2 && !closureRegex.MatchString(parts[1]) {
		return parts[0] + "::" + parts[1]
	}
	return pkg + "::" + parts[0]
}

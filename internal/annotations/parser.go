package annotations

import (
	stderrors "errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/routedoc/internal/errors"
)

// ErrUnsupportedKind is returned for axon annotations this tool does not read (e.g. //axon::inject)
var ErrUnsupportedKind = stderrors.New("unsupported annotation kind")

// annotationNode is the root of an annotation comment
type annotationNode struct {
	Pos     lexer.Position
	Kind    string        `parser:"Comment 'axon' Separator @Ident"`
	Args    []*argNode    `parser:"@@*"`
	Options []*optionNode `parser:"@@*"`
}

// argNode is a positional argument such as a method or a path
type argNode struct {
	Pos   lexer.Position
	Value string `parser:"@(Ident | Path | Number | String)"`
}

// optionNode is a -Name or -Name=v1,v2 option
type optionNode struct {
	Pos    lexer.Position
	Name   string       `parser:"'-' @Ident"`
	Values []*valueNode `parser:"( '=' @@ ( ',' @@ )* )?"`
}

// valueNode is a scalar or a key:value item
type valueNode struct {
	Key   string  `parser:"@(String | Number | Ident | Path)"`
	Value *string `parser:"( ':' @(String | Number | Ident | Path) )?"`
}

var annotationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//`},
	{Name: "Separator", Pattern: `::`},
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Path", Pattern: `/[^\s,]*`},
	{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_\[\]*][a-zA-Z0-9_\[\]\.*]*`},
	{Name: "Punct", Pattern: `[-=,:]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

const syntaxHint = "annotations look like //axon::<kind> [args] [-Option[=value,...]]; quote values containing spaces"

// Parser parses and validates axon annotation comments
type Parser struct {
	parser *participle.Parser[annotationNode]
}

// NewParser creates a new annotation parser
func NewParser() *Parser {
	return &Parser{
		parser: participle.MustBuild[annotationNode](
			participle.Lexer(annotationLexer),
			participle.Elide("Whitespace"),
		),
	}
}

// IsAnnotation reports whether a comment line is an axon annotation
func IsAnnotation(comment string) bool {
	text := strings.TrimSpace(comment)
	if !strings.HasPrefix(text, "//") {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(text[2:]), Prefix)
}

// Parse parses a single annotation comment. loc is the position of the leading "//".
func (p *Parser) Parse(comment string, loc SourceLocation) (*ParsedAnnotation, error) {
	comment = strings.TrimSpace(comment)

	node, err := p.parser.ParseString(loc.File, comment)
	if err != nil {
		var perr participle.Error
		if stderrors.As(err, &perr) {
			return nil, errors.NewSyntaxError(perr.Message(), at(loc, perr.Position()), syntaxHint)
		}
		return nil, errors.WrapParseError("annotation", err).WithLocation(loc)
	}

	kind, err := ParseKind(node.Kind)
	if err != nil {
		return nil, errors.Wrapf(errors.SyntaxErrorCode, err, "unknown annotation kind '%s'", node.Kind).WithLocation(loc)
	}
	schema, _ := SchemaFor(kind)

	parsed := &ParsedAnnotation{
		Kind:     kind,
		Options:  make(map[string]Option),
		Location: loc,
		Raw:      comment,
	}

	for _, arg := range node.Args {
		parsed.Args = append(parsed.Args, unquote(arg.Value))
	}
	if err := schema.Args(parsed.Args); err != nil {
		return nil, errors.New(errors.ValidationErrorCode, err.Error()).
			WithLocation(loc).
			WithSuggestion(schema.exampleFor(""))
	}

	for _, opt := range node.Options {
		option, err := schema.option(opt, at(loc, opt.Pos))
		if err != nil {
			return nil, err
		}
		parsed.Options[option.Name] = option
	}

	return parsed, nil
}

// option converts and validates one option node against the schema
func (s *AnnotationSchema) option(node *optionNode, loc SourceLocation) (Option, error) {
	spec, ok := s.Options[node.Name]
	if !ok {
		return Option{}, errors.NewSyntaxError(
			fmt.Sprintf("unknown option '-%s' for %s annotation", node.Name, s.Kind),
			loc,
			"valid options: "+strings.Join(slices.Sorted(maps.Keys(s.Options)), ", "),
		)
	}

	option := Option{Name: node.Name, Loc: loc}
	for _, v := range node.Values {
		value := Value{Key: unquote(v.Key)}
		if v.Value != nil {
			value.Pair = true
			value.Value = unquote(*v.Value)
		}
		option.Values = append(option.Values, value)
	}

	if !spec.Type.accepts(option.Values) {
		return Option{}, errors.NewValidationError(node.Name, spec.Type.String(), describe(option.Values), loc, s.exampleFor(node.Name))
	}

	if spec.Validator != nil {
		for _, v := range option.Values {
			if err := spec.Validator(v); err != nil {
				return Option{}, errors.Newf(errors.ValidationErrorCode, "option '%s' validation failed: %v", node.Name, err).
					WithLocation(loc).
					WithContext("option", node.Name).
					WithSuggestion(s.exampleFor(node.Name))
			}
		}
	}

	return option, nil
}

// accepts reports whether the values have the shape the option type expects
func (t OptionType) accepts(values []Value) bool {
	switch t {
	case FlagOption:
		if len(values) == 0 {
			return true
		}
		if len(values) > 1 || values[0].Pair {
			return false
		}
		v := strings.ToLower(values[0].Key)
		return v == "true" || v == "false"
	case StringOption:
		return len(values) == 1
	case ListOption, PairsOption:
		return len(values) > 0
	case FlagOrStringOption:
		return len(values) <= 1
	}
	return false
}

// exampleFor returns the first example using the option, or the first example
func (s *AnnotationSchema) exampleFor(option string) string {
	if len(s.Examples) == 0 {
		return ""
	}
	if option != "" {
		for _, ex := range s.Examples {
			if strings.Contains(ex, "-"+option) {
				return "example: " + ex
			}
		}
	}
	return "example: " + s.Examples[0]
}

func describe(values []Value) string {
	if len(values) == 0 {
		return "no value"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return fmt.Sprintf("'%s'", strings.Join(parts, ","))
}

// at translates a position inside the comment into a file location
func at(loc SourceLocation, pos lexer.Position) SourceLocation {
	out := loc
	if loc.Column > 0 {
		out.Column = loc.Column + pos.Column - 1
	} else {
		out.Column = pos.Column
	}
	return out
}

// unquote strips surrounding double quotes and unescapes \" only, leaving regex escapes intact
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return strings.ReplaceAll(s[1:len(s)-1], `\"`, `"`)
	}
	return s
}

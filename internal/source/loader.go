// Package source indexes annotated controller methods and routes from Go source files.
package source

import (
	stderrors "errors"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/ast/inspector"

	"github.com/toyz/routedoc/internal/annotations"
	"github.com/toyz/routedoc/internal/errors"
	"github.com/toyz/routedoc/internal/utils"
	"github.com/toyz/routedoc/pkg/routedoc"
)

// Loader parses Go packages and builds an Index from their axon annotations
type Loader struct {
	fset   *token.FileSet
	parser *annotations.Parser
	files  *utils.FileProcessor
	diag   *utils.DiagnosticSystem
}

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithDiagnostics reports progress through the given diagnostic system
func WithDiagnostics(diag *utils.DiagnosticSystem) LoaderOption {
	return func(l *Loader) {
		if diag != nil {
			l.diag = diag
		}
	}
}

// NewLoader creates a new source loader
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		fset:   token.NewFileSet(),
		parser: annotations.NewParser(),
		files:  utils.NewFileProcessor(),
		diag:   utils.NewDiagnosticSystem(utils.DiagnosticSilent),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load indexes every package matched by the patterns ("./..." recurses).
// Annotation errors do not stop loading; they are returned together with the index.
func (l *Loader) Load(patterns ...string) (*Index, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	dirs, err := l.files.ResolvePatterns(patterns)
	if err != nil {
		return nil, err
	}

	idx := NewIndex()
	errs := errors.NewMultipleErrors()
	root := commonDir(dirs)

	for _, dir := range dirs {
		paths, err := l.files.GoFiles(dir)
		if err != nil {
			return nil, err
		}

		var files []*ast.File
		for _, path := range paths {
			file, err := parser.ParseFile(l.fset, path, nil, parser.ParseComments)
			if err != nil {
				errs.Add(errors.Wrap(errors.SourceErrorCode, "failed to parse Go file", err).
					WithLocation(errors.SourceLocation{File: path}))
				continue
			}
			files = append(files, file)
		}

		l.diag.Verbose("scanning %s (%d files)", dir, len(files))
		scope, err := filepath.Rel(root, dir)
		if err != nil || scope == "." {
			scope = ""
		}
		l.indexPackage(idx, files, filepath.ToSlash(scope), errs)
	}

	return idx, errs.ErrOrNil()
}

// LoadSource indexes a single file given as source text
func (l *Loader) LoadSource(filename string, src any) (*Index, error) {
	file, err := parser.ParseFile(l.fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, errors.Wrap(errors.SourceErrorCode, "failed to parse Go file", err).
			WithLocation(errors.SourceLocation{File: filename})
	}

	idx := NewIndex()
	errs := errors.NewMultipleErrors()
	l.indexPackage(idx, []*ast.File{file}, "", errs)
	return idx, errs.ErrOrNil()
}

// indexPackage indexes the files of one package: controller prefixes first, then methods and routes.
// scope is the package directory relative to the scanned root; it qualifies references already taken by another package.
func (l *Loader) indexPackage(idx *Index, files []*ast.File, scope string, errs *errors.MultipleErrors) {
	if len(files) == 0 {
		return
	}
	pkgName := files[0].Name.Name
	if scope == "" {
		scope = pkgName
	}
	insp := inspector.New(files)

	controllers := make(map[string]annotations.ControllerSpec)
	insp.Preorder([]ast.Node{(*ast.GenDecl)(nil)}, func(n ast.Node) {
		gen := n.(*ast.GenDecl)
		if gen.Tok != token.TYPE {
			return
		}
		for _, spec := range gen.Specs {
			typeSpec := spec.(*ast.TypeSpec)
			doc := typeSpec.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}
			for _, parsed := range l.parseComments(doc, errs) {
				if parsed.Kind != annotations.ControllerKind {
					continue
				}
				spec, err := annotations.ToController(parsed)
				if err != nil {
					errs.Add(errors.Wrap(errors.ValidationErrorCode, "invalid controller annotation", err).WithLocation(parsed.Location))
					continue
				}
				controllers[typeSpec.Name.Name] = spec
			}
		}
	})

	insp.Preorder([]ast.Node{(*ast.FuncDecl)(nil)}, func(n ast.Node) {
		fn := n.(*ast.FuncDecl)

		receiver := pkgName
		if fn.Recv != nil && len(fn.Recv.List) > 0 {
			receiver = receiverName(fn.Recv.List[0].Type)
		}
		if receiver == "" {
			return
		}

		pos := l.fset.Position(fn.Pos())
		method := &routedoc.Method{
			Controller: receiver + "::" + fn.Name.Name,
			Receiver:   receiver,
			Name:       fn.Name.Name,
			Package:    pkgName,
			File:       pos.Filename,
			Line:       pos.Line,
			Doc:        docText(fn.Doc),
		}

		var docs []routedoc.Annotation
		var routes []annotations.RouteSpec
		for _, parsed := range l.parseComments(fn.Doc, errs) {
			switch parsed.Kind {
			case annotations.DocKind:
				doc, err := annotations.ToDoc(parsed)
				if err != nil {
					errs.Add(errors.Wrap(errors.ValidationErrorCode, "invalid doc annotation", err).WithLocation(parsed.Location))
					continue
				}
				docs = append(docs, doc)
			case annotations.RouteKind:
				spec, err := annotations.ToRoute(parsed)
				if err != nil {
					errs.Add(errors.Wrap(errors.ValidationErrorCode, "invalid route annotation", err).WithLocation(parsed.Location))
					continue
				}
				routes = append(routes, spec)
			}
		}

		if !idx.addMethod(method, docs) {
			qualified := scope + "." + method.Controller
			l.diag.Verbose("%s:%d: %s is already defined, indexing as %s", method.File, method.Line, method.Controller, qualified)
			method.Controller = qualified
			if !idx.addMethod(method, docs) {
				l.diag.Warn("%s:%d: %s is already defined, skipping", method.File, method.Line, method.Controller)
				return
			}
		}

		var controller annotations.ControllerSpec
		if fn.Recv != nil {
			controller = controllers[receiver]
		}
		for _, spec := range routes {
			route := buildRoute(spec, controller, method.Controller)
			idx.routes.Register(route)
			l.diag.Debug("route %s %s -> %s", route.JoinedMethods(), route.Path, route.Controller)
		}
	})
}

// parseComments parses the axon annotations of a comment group, collecting errors
func (l *Loader) parseComments(doc *ast.CommentGroup, errs *errors.MultipleErrors) []*annotations.ParsedAnnotation {
	if doc == nil {
		return nil
	}

	var parsed []*annotations.ParsedAnnotation
	for _, c := range doc.List {
		if !annotations.IsAnnotation(c.Text) {
			continue
		}
		pos := l.fset.Position(c.Slash)
		loc := errors.SourceLocation{File: pos.Filename, Line: pos.Line, Column: pos.Column}

		p, err := l.parser.Parse(c.Text, loc)
		if err != nil {
			if stderrors.Is(err, annotations.ErrUnsupportedKind) {
				l.diag.Debug("%s: ignoring %s", loc, strings.TrimSpace(c.Text))
				continue
			}
			var rde errors.RouteDocError
			if stderrors.As(err, &rde) {
				errs.Add(rde)
			} else {
				errs.Add(errors.Wrap(errors.SyntaxErrorCode, "invalid annotation", err).WithLocation(loc))
			}
			continue
		}
		parsed = append(parsed, p)
	}
	return parsed
}

// buildRoute turns a route annotation into a route, joining the controller prefix
func buildRoute(spec annotations.RouteSpec, controller annotations.ControllerSpec, ref string) *routedoc.Route {
	path, requirements := routedoc.NormalizePath(joinPath(controller.Prefix, spec.Path))

	route := routedoc.NewRoute(path, ref, spec.Methods...)
	route.Name = spec.Name
	for name, pattern := range requirements {
		route.SetRequirement(name, pattern)
	}
	if len(spec.Roles) > 0 {
		route.SetOption(routedoc.SecurityOption, map[string]any{"roles": spec.Roles})
	}
	if spec.Form != "" {
		route.SetOption(routedoc.FormOption, spec.Form)
	}
	if middleware := append(append([]string{}, controller.Middleware...), spec.Middleware...); len(middleware) > 0 {
		route.SetOption(routedoc.MiddlewareOption, middleware)
	}
	return route
}

// commonDir returns the deepest directory containing every dir
func commonDir(dirs []string) string {
	if len(dirs) == 0 {
		return ""
	}
	root := dirs[0]
	for _, dir := range dirs[1:] {
		for !within(root, dir) {
			parent := filepath.Dir(root)
			if parent == root {
				return root
			}
			root = parent
		}
	}
	return root
}

func within(root, dir string) bool {
	if dir == root {
		return true
	}
	if !strings.HasSuffix(root, string(filepath.Separator)) {
		root += string(filepath.Separator)
	}
	return strings.HasPrefix(dir, root)
}

func joinPath(prefix, path string) string {
	if prefix == "" {
		return path
	}
	if path == "/" || path == "" {
		return prefix
	}
	return prefix + path
}

// receiverName returns the base type name of a method receiver
func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverName(t.X)
	case *ast.ParenExpr:
		return receiverName(t.X)
	case *ast.IndexExpr:
		return receiverName(t.X)
	case *ast.IndexListExpr:
		return receiverName(t.X)
	case *ast.Ident:
		return t.Name
	}
	return ""
}

// docText returns the doc comment text without annotation lines
func docText(doc *ast.CommentGroup) string {
	if doc == nil {
		return ""
	}
	filtered := &ast.CommentGroup{}
	for _, c := range doc.List {
		if !annotations.IsAnnotation(c.Text) {
			filtered.List = append(filtered.List, c)
		}
	}
	return strings.TrimSpace(filtered.Text())
}

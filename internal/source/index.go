package source

import (
	"slices"
	"sync"

	"github.com/toyz/routedoc/pkg/routedoc"
)

// Index holds the controller methods, doc annotations and routes found in Go sources.
// It resolves controller references and reads method annotations for a routedoc.Collector.
type Index struct {
	mu          sync.RWMutex
	methods     map[string]*routedoc.Method
	annotations map[string][]routedoc.Annotation
	routes      *routedoc.InMemoryRegistry
}

// NewIndex creates an empty index
func NewIndex() *Index {
	return &Index{
		methods:     make(map[string]*routedoc.Method),
		annotations: make(map[string][]routedoc.Annotation),
		routes:      routedoc.NewInMemoryRegistry(),
	}
}

// ResolveMethod implements routedoc.MethodResolver
func (idx *Index) ResolveMethod(controller string) (*routedoc.Method, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	m, ok := idx.methods[controller]
	return m, ok
}

// MethodAnnotations implements routedoc.AnnotationReader
func (idx *Index) MethodAnnotations(method *routedoc.Method) []routedoc.Annotation {
	if method == nil {
		return nil
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return slices.Clone(idx.annotations[method.Controller])
}

// Routes returns the routes declared with //axon::route, in source order
func (idx *Index) Routes() []*routedoc.Route {
	return idx.routes.Routes()
}

// Registry exposes the declared routes as a route registry
func (idx *Index) Registry() routedoc.RouteRegistry {
	return idx.routes
}

// Methods returns the number of indexed methods
func (idx *Index) Methods() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.methods)
}

// addMethod records a method; the first definition of a reference wins
func (idx *Index) addMethod(m *routedoc.Method, docs []routedoc.Annotation) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, exists := idx.methods[m.Controller]; exists {
		return false
	}
	idx.methods[m.Controller] = m
	if len(docs) > 0 {
		idx.annotations[m.Controller] = docs
	}
	return true
}

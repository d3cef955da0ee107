package routedoc

import (
	"github.com/google/uuid"
)

// OthersResource is the resource label of entries no resource candidate matched
const OthersResource = "others"

// entryNamespace scopes the anchor ids generated for entries
var entryNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/toyz/routedoc/entry"))

// Entry is a documented route: its annotation, the route it documents and its resource label
type Entry struct {
	Annotation Annotation `json:"annotation" yaml:"annotation"`
	Route      *Route     `json:"route" yaml:"route"`
	Resource   string     `json:"resource" yaml:"resource"`

	// Method is the resolved controller method, nil for provider entries that could not be resolved
	Method *Method `json:"-" yaml:"-"`
}

// ID returns a stable anchor id derived from the route methods, path and controller
func (e *Entry) ID() uuid.UUID {
	return uuid.NewSHA1(entryNamespace, []byte(e.Route.JoinedMethods()+" "+e.Route.Path+" "+e.Route.Controller))
}

// ResourceGroup is a run of entries sharing a resource label
type ResourceGroup struct {
	Resource string  `json:"resource" yaml:"resource"`
	Entries  []Entry `json:"entries" yaml:"entries"`
}

// GroupByResource splits ordered entries into consecutive resource groups
func GroupByResource(entries []Entry) []ResourceGroup {
	var groups []ResourceGroup
	for _, e := range entries {
		if n := len(groups); n > 0 && groups[n-1].Resource == e.Resource {
			groups[n-1].Entries = append(groups[n-1].Entries, e)
			continue
		}
		groups = append(groups, ResourceGroup{Resource: e.Resource, Entries: []Entry{e}})
	}
	return groups
}

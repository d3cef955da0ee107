package routedoc

import (
	"cmp"
	"slices"
	"strings"
)

// MethodOrder is the rank of HTTP methods among entries sharing a resource and path.
// Methods not listed rank after all of these.
var MethodOrder = []string{"GET", "POST", "PUT", "DELETE"}

// assignResources labels every entry with the first matching resource candidate.
// Candidates are tried in reverse lexicographic order so longer paths of a family win over their prefixes.
// Entries nothing matches fall back to their section when synthesized and to OthersResource otherwise.
func assignResources(entries []Entry, candidates []string) {
	candidates = slices.Clone(candidates)
	slices.Sort(candidates)
	slices.Reverse(candidates)

	for i := range entries {
		entries[i].Resource = matchResource(&entries[i], candidates)
	}
}

func matchResource(e *Entry, candidates []string) string {
	for _, candidate := range candidates {
		if strings.HasPrefix(e.Route.Path, candidate) || candidate == e.Annotation.ResourceName {
			return candidate
		}
	}
	if e.Annotation.Origin == OriginSynthesized && e.Annotation.Section != "" {
		return e.Annotation.Section
	}
	return OthersResource
}

// methodRank returns the best rank among the route's methods
func methodRank(methods []string) int {
	rank := len(MethodOrder)
	for _, m := range methods {
		if i := slices.Index(MethodOrder, m); i >= 0 && i < rank {
			rank = i
		}
	}
	return rank
}

func compareEntries(a, b Entry) int {
	if c := cmp.Compare(a.Resource, b.Resource); c != 0 {
		return c
	}
	if a.Route.Path != b.Route.Path {
		return cmp.Compare(a.Route.Path, b.Route.Path)
	}
	if c := cmp.Compare(methodRank(a.Route.Methods), methodRank(b.Route.Methods)); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Route.JoinedMethods(), b.Route.JoinedMethods()); c != 0 {
		return c
	}
	return cmp.Compare(a.Route.Controller, b.Route.Controller)
}

func sortEntries(entries []Entry) {
	slices.SortStableFunc(entries, compareEntries)
}

package routedoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry_ID(t *testing.T) {
	a := Entry{Route: NewRoute("/users", "Users::list", "GET")}
	b := Entry{Route: NewRoute("/users", "Other::list", "GET")}
	c := Entry{Route: NewRoute("/users", "Users::create", "POST")}

	assert.NotEqual(t, a.ID(), b.ID())
	assert.NotEqual(t, a.ID(), c.ID())
	same := Entry{Route: NewRoute("/users", "Users::list", "get")}
	assert.Equal(t, a.ID(), same.ID())
	assert.Equal(t, 5, int(a.ID().Version()))
}

func TestGroupByResource(t *testing.T) {
	entries := []Entry{
		{Resource: "/orders", Route: NewRoute("/orders", "O::list", "GET")},
		{Resource: "/orders", Route: NewRoute("/orders", "O::create", "POST")},
		{Resource: "Users", Route: NewRoute("/users", "U::list", "GET")},
		{Resource: OthersResource, Route: NewRoute("/ping", "P::ping", "GET")},
	}

	groups := GroupByResource(entries)
	require.Len(t, groups, 3)
	assert.Equal(t, "/orders", groups[0].Resource)
	assert.Len(t, groups[0].Entries, 2)
	assert.Equal(t, "Users", groups[1].Resource)
	assert.Equal(t, OthersResource, groups[2].Resource)

	assert.Empty(t, GroupByResource(nil))
}

func TestAsRoutes(t *testing.T) {
	route := NewRoute("/a", "A::a", "GET")

	routes, err := AsRoutes([]any{route, *NewRoute("/b", "B::b", "POST")})
	require.NoError(t, err)
	require.Len(t, routes, 2)
	assert.Same(t, route, routes[0])
	assert.Equal(t, "/b", routes[1].Path)

	_, err = AsRoutes([]any{route, "/c"})
	var invalid *InvalidRouteError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "string", invalid.Type)
	assert.Equal(t, 1, invalid.Index)

	_, err = AsRoutes([]any{nil})
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "<nil>", invalid.Type)

	var nilRoute *Route
	_, err = AsRoutes([]any{nilRoute})
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "*routedoc.Route", invalid.Type)
	assert.Contains(t, err.Error(), "nil route given at index 0")
}

func TestAnnotation_InView(t *testing.T) {
	untagged := Annotation{}
	assert.True(t, untagged.InView(DefaultView))
	assert.False(t, untagged.InView("internal"))

	tagged := Annotation{Views: []string{"internal"}}
	assert.True(t, tagged.InView("internal"))
	assert.False(t, tagged.InView(DefaultView))
}

func TestOrigin_Text(t *testing.T) {
	for _, o := range []Origin{OriginExplicit, OriginSynthesized, OriginProvider} {
		text, err := o.MarshalText()
		require.NoError(t, err)

		var back Origin
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, o, back)
	}
}

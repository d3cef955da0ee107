package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/routedoc/internal/errors"
	"github.com/toyz/routedoc/pkg/routedoc"
)

const usersSource = `package controllers

// UserController serves users
//axon::controller -Prefix=/api -Middleware=Auth
type UserController struct{}

// List returns every user.
// Supports pagination.
//axon::route GET /users -Name=users_list
//axon::doc -Resource -Section=Users -Description="List users"
func (c *UserController) List() {}

// Show returns a user
//axon::route GET /users/{id:int} -Roles=ROLE_ADMIN
func (c *UserController) Show() {}

//axon::route POST /users -Form=UserForm
//axon::inject
func (c UserController) Create() {}

//axon::route GET /health
func health() {}

type Repo[T any] struct{}

func (r *Repo[T]) Find() {}
`

func TestLoader_LoadSource(t *testing.T) {
	idx, err := NewLoader().LoadSource("users.go", usersSource)
	require.NoError(t, err)

	routes := idx.Routes()
	require.Len(t, routes, 4)

	list := routes[0]
	assert.Equal(t, "/api/users", list.Path)
	assert.Equal(t, []string{"GET"}, list.Methods)
	assert.Equal(t, "UserController::List", list.Controller)
	assert.Equal(t, "users_list", list.Name)
	mw, _ := list.Option(routedoc.MiddlewareOption)
	assert.Equal(t, []string{"Auth"}, mw)

	show := routes[1]
	assert.Equal(t, "/api/users/{id}", show.Path)
	assert.Equal(t, routedoc.IntPattern, show.Requirement("id"))
	roles, ok := show.Roles()
	assert.True(t, ok)
	assert.Equal(t, []string{"ROLE_ADMIN"}, roles)

	create := routes[2]
	assert.Equal(t, "UserController::Create", create.Controller)
	assert.Equal(t, "UserForm", create.Form())

	health := routes[3]
	assert.Equal(t, "/health", health.Path)
	assert.Equal(t, "controllers::health", health.Controller)
	_, hasMiddleware := health.Option(routedoc.MiddlewareOption)
	assert.False(t, hasMiddleware)

	byName, ok := idx.Registry().ByName("users_list")
	require.True(t, ok)
	assert.Same(t, list, byName)
}

func TestIndex_ResolveMethod(t *testing.T) {
	idx, err := NewLoader().LoadSource("users.go", usersSource)
	require.NoError(t, err)

	method, ok := idx.ResolveMethod("UserController::List")
	require.True(t, ok)
	assert.Equal(t, "UserController", method.Receiver)
	assert.Equal(t, "List", method.Name)
	assert.Equal(t, "controllers", method.Package)
	assert.Equal(t, "users.go", method.File)
	assert.Equal(t, 11, method.Line)
	assert.Equal(t, "List returns every user.\nSupports pagination.", method.Doc)

	_, ok = idx.ResolveMethod("Repo::Find")
	assert.True(t, ok)

	_, ok = idx.ResolveMethod("UserController::Missing")
	assert.False(t, ok)

	assert.Equal(t, 5, idx.Methods())
}

func TestIndex_MethodAnnotations(t *testing.T) {
	idx, err := NewLoader().LoadSource("users.go", usersSource)
	require.NoError(t, err)

	list, _ := idx.ResolveMethod("UserController::List")
	docs := idx.MethodAnnotations(list)
	require.Len(t, docs, 1)
	assert.True(t, docs[0].Resource)
	assert.Equal(t, "Users", docs[0].Section)
	assert.Equal(t, "List users", docs[0].Description)
	assert.Equal(t, "users.go:10", docs[0].Location)

	show, _ := idx.ResolveMethod("UserController::Show")
	assert.Empty(t, idx.MethodAnnotations(show))
	assert.Nil(t, idx.MethodAnnotations(nil))
}

func TestIndex_FeedsCollector(t *testing.T) {
	idx, err := NewLoader().LoadSource("users.go", usersSource)
	require.NoError(t, err)

	entries, err := routedoc.NewCollector(idx, idx).Collect(idx.Routes(), "")
	require.NoError(t, err)
	require.Len(t, entries, 4)

	var order []string
	for _, e := range entries {
		order = append(order, e.Route.Controller)
	}
	assert.Equal(t, []string{
		"UserController::List",
		"UserController::Create",
		"UserController::Show",
		"controllers::health",
	}, order)

	assert.Equal(t, routedoc.OriginExplicit, entries[0].Annotation.Origin)
	assert.Equal(t, "/api/users", entries[0].Resource)
	assert.Equal(t, "UserForm", entries[1].Annotation.Input)
	assert.True(t, entries[2].Annotation.Authentication)
	assert.Equal(t, "/api/users", entries[2].Resource)
	assert.Equal(t, "Health", entries[3].Resource)
}

func TestLoader_AnnotationErrors(t *testing.T) {
	src := `package controllers

type C struct{}

//axon::route GET /ok
//axon::doc -Status=abc
func (c *C) Bad() {}

//axon::route FETCH /nope
func (c *C) Worse() {}
`
	idx, err := NewLoader().LoadSource("bad.go", src)
	require.Error(t, err)
	require.NotNil(t, idx)

	multi, ok := err.(*errors.MultipleErrors)
	require.True(t, ok)
	assert.Equal(t, 2, multi.Count())
	assert.True(t, multi.HasCode(errors.ValidationErrorCode))
	assert.Equal(t, 6, multi.Errors[0].Location().Line)

	// valid annotations on the same method still count
	require.Len(t, idx.Routes(), 1)
	assert.Equal(t, "/ok", idx.Routes()[0].Path)
}

func TestLoader_LoadSourceSyntaxError(t *testing.T) {
	_, err := NewLoader().LoadSource("broken.go", "package controllers\nfunc (")
	require.Error(t, err)
	assert.Equal(t, errors.SourceErrorCode, errors.CodeOf(err))
}

func TestLoader_Load(t *testing.T) {
	root := t.TempDir()
	write := func(name, content string) {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	write("controllers/types.go", `package controllers

//axon::controller -Prefix=/orders
type OrderController struct{}
`)
	write("controllers/orders.go", `package controllers

// List lists orders
//axon::route GET /
func (c *OrderController) List() {}

//axon::route GET /{id:int}
//axon::doc -Description="Show an order"
func (c *OrderController) Show() {}
`)
	write("controllers/orders_test.go", `package controllers

//axon::route GET /test-only
func (c *OrderController) TestOnly() {}
`)
	write("vendor/dep/dep.go", `package dep

//axon::route GET /vendored
func Handler() {}
`)

	idx, err := NewLoader().Load(filepath.Join(root, "..."))
	require.NoError(t, err)

	routes := idx.Routes()
	require.Len(t, routes, 2)
	assert.Equal(t, "/orders", routes[0].Path)
	assert.Equal(t, "/orders/{id}", routes[1].Path)

	show, ok := idx.ResolveMethod("OrderController::Show")
	require.True(t, ok)
	assert.Equal(t, "orders.go", filepath.Base(show.File))

	_, ok = idx.ResolveMethod("OrderController::TestOnly")
	assert.False(t, ok)
}

func TestLoader_LoadQualifiesCollidingReferences(t *testing.T) {
	root := t.TempDir()
	for _, version := range []string{"v1", "v2"} {
		path := filepath.Join(root, version, "controllers", "users.go")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(`package controllers

//axon::controller -Prefix=/`+version+`
type UserController struct{}

//axon::route GET /users
func (c *UserController) List() {}

//axon::route GET /`+version+`/status
func status() {}
`), 0o644))
	}

	idx, err := NewLoader().Load(filepath.Join(root, "..."))
	require.NoError(t, err)

	routes := idx.Routes()
	require.Len(t, routes, 4)

	byPath := map[string]string{}
	for _, r := range routes {
		byPath[r.Path] = r.Controller
	}
	assert.Equal(t, "UserController::List", byPath["/v1/users"])
	assert.Equal(t, "v2/controllers.UserController::List", byPath["/v2/users"])
	assert.Equal(t, "controllers::status", byPath["/v1/status"])
	assert.Equal(t, "v2/controllers.controllers::status", byPath["/v2/status"])
	assert.Equal(t, 4, idx.Methods())

	for _, ref := range []string{"UserController::List", "v2/controllers.UserController::List", "v2/controllers.controllers::status"} {
		_, ok := idx.ResolveMethod(ref)
		assert.True(t, ok, ref)
	}

	entries, err := routedoc.NewCollector(idx, idx).Collect(routes, "")
	require.NoError(t, err)
	assert.Len(t, entries, 4)
	for _, e := range entries {
		if e.Route.Path == "/v2/users" {
			assert.Equal(t, "List", e.Annotation.Description)
		}
	}
}

func TestCommonDir(t *testing.T) {
	a := filepath.Join("/", "src", "app", "v1", "controllers")
	b := filepath.Join("/", "src", "app", "v2", "controllers")
	c := filepath.Join("/", "src", "app2")

	assert.Equal(t, a, commonDir([]string{a}))
	assert.Equal(t, filepath.Join("/", "src", "app"), commonDir([]string{a, b}))
	assert.Equal(t, filepath.Join("/", "src"), commonDir([]string{a, b, c}))
	assert.Equal(t, "", commonDir(nil))
}

func TestLoader_LoadMissingDirectory(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, errors.FileSystemErrorCode, errors.CodeOf(err))
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/users", joinPath("", "/users"))
	assert.Equal(t, "/api/users", joinPath("/api", "/users"))
	assert.Equal(t, "/api", joinPath("/api", "/"))
}

package router_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqkit/pkg/router"
)

func TestMatch(t *testing.T) {
	t.Parallel()

	r := router.New[string]()
	r.MustRegister("GET", "/", "home")
	r.MustRegister("GET", "/items/:id", "item")

	m, ok := r.Match("GET", "/items/42")
	require.True(t, ok)
	assert.Equal(t, "item", m.Handler)
	assert.Equal(t, map[string]string{"id": "42"}, m.Params)
	assert.Equal(t, "/items/:id", m.Pattern)

	_, ok = r.Match("GET", "/items")
	assert.False(t, ok)

	m, ok = r.Match("GET", "/")
	require.True(t, ok)
	assert.Equal(t, "home", m.Handler)
	assert.Empty(t, m.Params)
}

func TestExactBeatsParameterized(t *testing.T) {
	t.Parallel()

	// register the parameterized route first to prove order does not matter
	r := router.New[string]()
	r.MustRegister("GET", "/items/:id", "item")
	r.MustRegister("GET", "/items/new", "new-item")

	m, ok := r.Match("GET", "/items/new")
	require.True(t, ok)
	assert.Equal(t, "new-item", m.Handler)

	m, ok = r.Match("GET", "/items/7")
	require.True(t, ok)
	assert.Equal(t, "item", m.Handler)
}

func TestParameterRoutesScannedInRegistrationOrder(t *testing.T) {
	t.Parallel()

	r := router.New[string]()
	r.MustRegister("GET", "/a/:x", "first")
	r.MustRegister("GET", "/a/:y", "second")

	m, ok := r.Match("GET", "/a/1")
	require.True(t, ok)
	assert.Equal(t, "first", m.Handler)
	assert.Equal(t, "1", m.Params["x"])
}

func TestNoNormalization(t *testing.T) {
	t.Parallel()

	r := router.New[string]()
	r.MustRegister("GET", "/badge/:name.svg", "badge")
	r.MustRegister("GET", "/status", "status")

	tests := []struct {
		method string
		path   string
		want   string
		ok     bool
	}{
		{"GET", "/badge/build.svg", "badge", true},
		{"GET", "/badge/build.png", "", false},
		{"GET", "/badge/build", "", false},
		{"GET", "/badge/a/b.svg", "", false},
		{"GET", "/status/", "", false},
		{"GET", "/STATUS", "", false},
		{"POST", "/status", "", false},
		{"GET", "/status", "status", true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			t.Parallel()
			m, ok := r.Match(tt.method, tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, m.Handler)
		})
	}

	m, _ := r.Match("GET", "/badge/build.svg")
	assert.Equal(t, "build", m.Params["name"])
}

func TestMultipleParams(t *testing.T) {
	t.Parallel()

	r := router.New[int]()
	r.MustRegister("get", "/users/:user/repos/:repo", 7)

	m, ok := r.Match("GET", "/users/alice/repos/kit")
	require.True(t, ok)
	assert.Equal(t, 7, m.Handler)
	assert.Equal(t, map[string]string{"user": "alice", "repo": "kit"}, m.Params)
}

func TestRegisterErrors(t *testing.T) {
	t.Parallel()

	r := router.New[string]()
	require.NoError(t, r.Register("GET", "/x", "x"))
	require.NoError(t, r.Register("GET", "/y/:id", "y"))

	assert.ErrorIs(t, r.Register("", "/z", "z"), router.ErrEmptyMethod)
	assert.ErrorIs(t, r.Register("GET", "z", "z"), router.ErrInvalidPattern)
	assert.ErrorIs(t, r.Register("GET", "/x", "other"), router.ErrDuplicateRoute)
	assert.ErrorIs(t, r.Register("GET", "/y/:id", "other"), router.ErrDuplicateRoute)
	assert.ErrorIs(t, r.Register("GET", "/p/:", "p"), router.ErrInvalidParamName)
	assert.ErrorIs(t, r.Register("GET", "/p/:1a", "p"), router.ErrInvalidParamName)
	assert.ErrorIs(t, r.Register("GET", "/p/:a/:a", "p"), router.ErrInvalidParamName)

	assert.Panics(t, func() { r.MustRegister("GET", "/x", "x") })
}

func TestRoutesAndHandlers(t *testing.T) {
	t.Parallel()

	r := router.New[string]()
	r.MustRegister("GET", "/", "home")
	r.MustRegister("GET", "/items/:id", "item")
	r.MustRegister("HEAD", "/", "home")

	routes := r.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, "/", routes[0].Pattern)
	assert.Equal(t, []string{"id"}, routes[1].Params)
	assert.Equal(t, "HEAD", routes[2].Method)

	assert.Equal(t, map[string]struct{}{"home": {}, "item": {}}, r.Handlers())
}

func TestRegexMetaInLiterals(t *testing.T) {
	t.Parallel()

	r := router.New[string]()
	r.MustRegister("GET", "/v1.0/:id", "v1")

	_, ok := r.Match("GET", "/v1x0/abc")
	assert.False(t, ok)

	m, ok := r.Match("GET", "/v1.0/abc")
	require.True(t, ok)
	assert.Equal(t, "abc", m.Params["id"])
}

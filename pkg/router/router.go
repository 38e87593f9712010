package router

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const paramMarker = ':'

// Route is a registered pattern bound to a handler.
type Route[H comparable] struct {
	Method  string
	Pattern string
	Handler H
	Params  []string
	matcher *regexp.Regexp
}

// Match is the result of a successful lookup.
type Match[H comparable] struct {
	Handler H
	Pattern string
	Params  map[string]string
}

// Router maps method and path to a handler.
type Router[H comparable] struct {
	exact  map[string]Route[H]
	params []Route[H]
	order  []Route[H]
}

// New returns an empty router.
func New[H comparable]() *Router[H] {
	return &Router[H]{
		exact: make(map[string]Route[H]),
	}
}

func exactKey(method, path string) string {
	return method + ":" + path
}

// Register adds a route. Method is upper-cased.
func (r *Router[H]) Register(method, pattern string, handler H) error {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		return ErrEmptyMethod
	}
	if !strings.HasPrefix(pattern, "/") {
		return errors.Join(ErrInvalidPattern, fmt.Errorf("pattern %q", pattern))
	}

	route := Route[H]{Method: method, Pattern: pattern, Handler: handler}

	if strings.IndexByte(pattern, paramMarker) < 0 {
		key := exactKey(method, pattern)
		if _, ok := r.exact[key]; ok {
			return errors.Join(ErrDuplicateRoute, fmt.Errorf("%s %s", method, pattern))
		}
		r.exact[key] = route
		r.order = append(r.order, route)
		return nil
	}

	for _, p := range r.params {
		if p.Method == method && p.Pattern == pattern {
			return errors.Join(ErrDuplicateRoute, fmt.Errorf("%s %s", method, pattern))
		}
	}

	matcher, names, err := compile(pattern)
	if err != nil {
		return err
	}
	route.matcher = matcher
	route.Params = names
	r.params = append(r.params, route)
	r.order = append(r.order, route)
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Router[H]) MustRegister(method, pattern string, handler H) {
	if err := r.Register(method, pattern, handler); err != nil {
		panic(err)
	}
}

// Match resolves method and path. Exact routes are checked first, then
// parameterized routes in registration order.
func (r *Router[H]) Match(method, path string) (Match[H], bool) {
	if route, ok := r.exact[exactKey(method, path)]; ok {
		return Match[H]{Handler: route.Handler, Pattern: route.Pattern, Params: map[string]string{}}, true
	}

	for _, route := range r.params {
		if route.Method != method {
			continue
		}
		sub := route.matcher.FindStringSubmatch(path)
		if sub == nil {
			continue
		}
		params := make(map[string]string, len(route.Params))
		for i, name := range route.matcher.SubexpNames() {
			if i > 0 && name != "" {
				params[name] = sub[i]
			}
		}
		return Match[H]{Handler: route.Handler, Pattern: route.Pattern, Params: params}, true
	}

	var zero Match[H]
	return zero, false
}

// Routes returns all registered routes in registration order.
func (r *Router[H]) Routes() []Route[H] {
	out := make([]Route[H], len(r.order))
	copy(out, r.order)
	return out
}

// Handlers returns the set of handler values referenced by any route.
func (r *Router[H]) Handlers() map[H]struct{} {
	set := make(map[H]struct{}, len(r.order))
	for _, route := range r.order {
		set[route.Handler] = struct{}{}
	}
	return set
}

// compile turns "/items/:id.svg" into ^/items/(?P<id>[^/]+)\.svg$.
func compile(pattern string) (*regexp.Regexp, []string, error) {
	var (
		b     strings.Builder
		names []string
		seen  = make(map[string]struct{})
	)
	b.WriteByte('^')

	for i := 0; i < len(pattern); {
		c := pattern[i]
		if c != paramMarker {
			j := i
			for j < len(pattern) && pattern[j] != paramMarker {
				j++
			}
			b.WriteString(regexp.QuoteMeta(pattern[i:j]))
			i = j
			continue
		}

		j := i + 1
		for j < len(pattern) && isNameByte(pattern[j]) {
			j++
		}
		name := pattern[i+1 : j]
		if name == "" || (name[0] >= '0' && name[0] <= '9') {
			return nil, nil, errors.Join(ErrInvalidParamName, fmt.Errorf("pattern %q at offset %d", pattern, i))
		}
		if _, dup := seen[name]; dup {
			return nil, nil, errors.Join(ErrInvalidParamName, fmt.Errorf("duplicate parameter %q in %q", name, pattern))
		}
		seen[name] = struct{}{}
		names = append(names, name)

		b.WriteString("(?P<")
		b.WriteString(name)
		b.WriteString(">[^/]+)")
		i = j
	}
	b.WriteByte('$')

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, nil, errors.Join(ErrInvalidPattern, err)
	}
	return re, names, nil
}

func isNameByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

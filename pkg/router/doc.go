// Package router resolves a method and path to a registered handler.
//
// Routes are registered once during initialization and the tables are read
// only afterwards. Literal patterns live in a hash map keyed by
// "METHOD:/path" and are resolved in O(1). Patterns with ":name" markers are
// compiled into anchored regular expressions with named groups and scanned in
// registration order when the exact lookup misses.
//
// Exact routes always win over parameterized routes that would match the same
// path. There is no trailing slash normalization and no wildcard segment: a
// path must satisfy a pattern completely, including literal suffixes such as
// ".svg".
//
// # Usage
//
//	r := router.New[string]()
//	r.MustRegister("GET", "/", "home")
//	r.MustRegister("GET", "/items/:id", "item")
//
//	m, ok := r.Match("GET", "/items/42")
//	// m.Handler == "item", m.Params["id"] == "42"
//
// # Concurrency
//
// Register is not safe to call concurrently with Match. Finish all
// registration before serving traffic.
package router

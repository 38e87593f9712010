// Package envelope defines the immutable request description that the ingress
// layer hands to the runtime.
//
// An Envelope is built once per inbound request with New and is never mutated
// afterwards: every accessor returns a copy of the underlying data, so the
// value can be shared freely between the runtime, middleware and handlers.
//
// # Usage
//
//	env := envelope.New(envelope.Params{
//		ID:         requestid.New(),
//		Method:     "GET",
//		Target:     "/items/42?full=1",
//		Headers:    map[string]string{"Accept": "application/json"},
//		RemoteAddr: "10.0.0.1",
//	})
//
//	env.Path()            // "/items/42"
//	env.Query()           // "full=1"
//	env.Header("accept")  // "application/json"
package envelope

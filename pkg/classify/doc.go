// Package classify derives request intent and expected response format from
// an envelope, and checks request paths for traversal attempts.
//
// Classify is a pure function: it never mutates the envelope and has no side
// effects. IsPathSafe rejects null bytes, backslashes and ".." segments in
// every encoding the package knows about, including double percent-encoding.
//
// # Usage
//
//	c := classify.New("/app")
//	info := c.Classify(env)
//	if !classify.IsPathSafe(info.PathInfo) {
//		// reject with 400
//	}
package classify

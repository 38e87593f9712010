// Package requestid assigns and propagates request correlation identifiers.
//
// The ingress resolves an ID for every request with Resolve: a valid
// client-supplied X-Request-ID header is reused, anything else is replaced by
// a new UUID. The ID travels in the envelope and in the request context.
//
// Middleware is a pipeline middleware that copies the ID into pipeline
// metadata under MetadataKey and echoes it back in the X-Request-ID response
// header. LoggerExtractor injects the ID stored in a context into every log
// record:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//
// Invalid IDs are silently replaced; the package never returns errors.
package requestid

// Package clientip extracts the originating client IP address when the
// runtime is deployed behind one or more reverse proxies.
//
// Headers are examined in descending priority until a valid address is
// found:
//
//  1. CF-Connecting-IP
//  2. DO-Connecting-IP
//  3. X-Forwarded-For (first valid entry)
//  4. X-Real-IP
//  5. the peer address as a fallback
//
// FromRequest works on *http.Request at the ingress, FromEnvelope on a
// transport-neutral envelope. Middleware stores the result in pipeline
// metadata under MetadataKey; WithContext and LoggerExtractor carry it into
// log records.
//
// Headers are trusted as-is. Only expose the runtime behind proxies that
// overwrite them.
package clientip

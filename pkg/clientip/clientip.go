package clientip

import (
	"net"
	"net/http"
	"strings"

	"github.com/dmitrymomot/reqkit/pkg/envelope"
)

// Resolve returns the client IP given a header lookup and the peer address.
// Priority order:
// 1. CF-Connecting-IP (Cloudflare)
// 2. DO-Connecting-IP (DigitalOcean App Platform)
// 3. X-Forwarded-For (first valid entry)
// 4. X-Real-IP (Nginx)
// 5. remoteAddr
func Resolve(header func(name string) string, remoteAddr string) string {
	if ip := parseIP(header("CF-Connecting-IP")); ip != "" {
		return ip
	}
	if ip := parseIP(header("DO-Connecting-IP")); ip != "" {
		return ip
	}
	if forwarded := header("X-Forwarded-For"); forwarded != "" {
		for ip := range strings.SplitSeq(forwarded, ",") {
			if parsed := parseIP(ip); parsed != "" {
				return parsed
			}
		}
	}
	if ip := parseIP(header("X-Real-IP")); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		// already a bare address
		return parseIP(remoteAddr)
	}
	return parseIP(host)
}

// FromRequest resolves the client IP of an HTTP request.
func FromRequest(r *http.Request) string {
	return Resolve(r.Header.Get, r.RemoteAddr)
}

// FromEnvelope resolves the client IP of a transport-neutral request.
func FromEnvelope(env envelope.Envelope) string {
	return Resolve(env.Header, env.RemoteAddr())
}

// parseIP validates and normalizes an IP address string.
// Returns empty string if the IP is invalid.
func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}

package requestid

import (
	"regexp"

	"github.com/google/uuid"

	"github.com/dmitrymomot/reqkit/pkg/pipeline"
	"github.com/dmitrymomot/reqkit/pkg/response"
)

const (
	Header = "X-Request-ID"

	// MetadataKey is the pipeline metadata key holding the request ID.
	MetadataKey = "request_id"

	maxIDLength = 128
	idPattern   = "^[a-zA-Z0-9_-]+$"
)

var validIDRegex = regexp.MustCompile(idPattern)

// New generates a fresh request ID.
func New() string {
	return uuid.New().String()
}

// Valid reports whether id is acceptable as a client-supplied request ID.
func Valid(id string) bool {
	if len(id) == 0 || len(id) > maxIDLength {
		return false
	}
	return validIDRegex.MatchString(id)
}

// Resolve returns id when it is valid and a freshly generated ID otherwise.
func Resolve(id string) string {
	if Valid(id) {
		return id
	}
	return New()
}

// Middleware stores the request ID in pipeline metadata and echoes it on the
// response. The envelope ID is preferred, then the X-Request-ID header, then
// a generated one.
func Middleware() pipeline.Middleware {
	return pipeline.MiddlewareFunc(func(c *pipeline.Context, next pipeline.Next) (response.Response, error) {
		env := c.Envelope()
		id := env.ID()
		if !Valid(id) {
			id = Resolve(env.Header(Header))
		}
		c.Set(MetadataKey, id)

		resp, err := next(c)
		if err != nil {
			return resp, err
		}
		return resp.WithHeader(Header, id), nil
	})
}

package response

import (
	"bytes"
	"context"

	"github.com/a-h/templ"
)

// Component renders a templ component into an HTML response. A render
// failure produces an internal error page instead.
func Component(ctx context.Context, status int, c templ.Component) Response {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return Error(ErrInternalServerError, FormatHTML)
	}
	return New(status, ContentTypeHTML, buf.Bytes())
}

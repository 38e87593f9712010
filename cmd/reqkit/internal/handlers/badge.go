package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"unicode/utf8"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/reqkit/pkg/pipeline"
	"github.com/dmitrymomot/reqkit/pkg/response"
)

const (
	badgeCharWidth = 7
	badgePadding   = 10
	maxBadgeText   = 64
)

var badgeColors = map[string]string{
	"green":  "#4c1",
	"yellow": "#dfb317",
	"orange": "#fe7d37",
	"red":    "#e05d44",
	"blue":   "#007ec6",
	"grey":   "#555",
}

// badge renders a two-part SVG badge from the label and value path
// parameters. The optional color query parameter picks the value color.
func badge(c *pipeline.Context) (response.Response, error) {
	label, err := url.PathUnescape(c.Param("label"))
	if err != nil {
		return response.Error(response.ErrBadRequest, response.FormatText), nil
	}
	value, err := url.PathUnescape(c.Param("value"))
	if err != nil {
		return response.Error(response.ErrBadRequest, response.FormatText), nil
	}
	if utf8.RuneCountInString(label) > maxBadgeText || utf8.RuneCountInString(value) > maxBadgeText {
		return response.ErrorWithMessage(response.ErrBadRequest, response.FormatText, "badge text too long"), nil
	}

	color := badgeColors["green"]
	if q, err := url.ParseQuery(c.Envelope().Query()); err == nil {
		if v, ok := badgeColors[q.Get("color")]; ok {
			color = v
		}
	}

	return response.SVG(http.StatusOK, renderBadge(label, value, color)).
		WithHeader("Cache-Control", "public, max-age=300"), nil
}

func renderBadge(label, value, color string) string {
	lw := utf8.RuneCountInString(label)*badgeCharWidth + badgePadding
	vw := utf8.RuneCountInString(value)*badgeCharWidth + badgePadding
	total := lw + vw
	l, v := templ.EscapeString(label), templ.EscapeString(value)

	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="20" role="img" aria-label="%s: %s">`+
		`<rect width="%d" height="20" fill="#555"/>`+
		`<rect x="%d" width="%d" height="20" fill="%s"/>`+
		`<g fill="#fff" font-family="Verdana,sans-serif" font-size="11" text-anchor="middle">`+
		`<text x="%d" y="14">%s</text><text x="%d" y="14">%s</text></g></svg>`,
		total, l, v,
		lw,
		lw, vw, color,
		lw/2, l, lw+vw/2, v,
	)
}

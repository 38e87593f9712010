package classify

import (
	"strings"

	"github.com/dmitrymomot/reqkit/pkg/envelope"
	"github.com/dmitrymomot/reqkit/pkg/response"
)

// Intent describes what kind of resource the client is after.
type Intent string

const (
	IntentPage  Intent = "page"
	IntentAPI   Intent = "api"
	IntentAsset Intent = "asset"
)

// Classification is the derived view of an envelope.
type Classification struct {
	Intent   Intent
	Expects  response.Format
	BasePath string
	PathInfo string // path with BasePath stripped, always starts with "/"
	IsAjax   bool
}

// Classifier strips a configured base path and derives intent.
type Classifier struct {
	basePath string
}

// New returns a Classifier for the given base path. Trailing slashes are
// dropped; "" and "/" both mean no base path.
func New(basePath string) Classifier {
	return Classifier{basePath: strings.TrimRight(basePath, "/")}
}

// Classify derives the classification of env.
func (c Classifier) Classify(env envelope.Envelope) Classification {
	path := env.Path()
	pathInfo := path
	if c.basePath != "" && (path == c.basePath || strings.HasPrefix(path, c.basePath+"/")) {
		pathInfo = strings.TrimPrefix(path, c.basePath)
		if pathInfo == "" {
			pathInfo = "/"
		}
	}

	isAjax := strings.EqualFold(env.Header("X-Requested-With"), "XMLHttpRequest")
	accept := strings.ToLower(env.Header("Accept"))

	out := Classification{
		BasePath: c.basePath,
		PathInfo: pathInfo,
		IsAjax:   isAjax,
	}

	switch {
	case strings.HasSuffix(pathInfo, ".svg"):
		out.Intent = IntentAsset
		out.Expects = response.FormatSVG
	case strings.HasPrefix(pathInfo, "/api/") || strings.Contains(accept, "application/json") || isAjax:
		out.Intent = IntentAPI
		out.Expects = response.FormatJSON
	case strings.Contains(accept, "text/html"):
		out.Intent = IntentPage
		out.Expects = response.FormatHTML
	default:
		out.Intent = IntentPage
		out.Expects = response.FormatText
	}
	return out
}

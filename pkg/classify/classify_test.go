package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/reqkit/pkg/classify"
	"github.com/dmitrymomot/reqkit/pkg/envelope"
	"github.com/dmitrymomot/reqkit/pkg/response"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		base     string
		target   string
		headers  map[string]string
		intent   classify.Intent
		expects  response.Format
		pathInfo string
		ajax     bool
	}{
		{name: "plain page", target: "/", intent: classify.IntentPage, expects: response.FormatText, pathInfo: "/"},
		{name: "html page", target: "/", headers: map[string]string{"Accept": "text/html,*/*"}, intent: classify.IntentPage, expects: response.FormatHTML, pathInfo: "/"},
		{name: "json accept", target: "/items/1", headers: map[string]string{"Accept": "application/json"}, intent: classify.IntentAPI, expects: response.FormatJSON, pathInfo: "/items/1"},
		{name: "api prefix", target: "/api/health", intent: classify.IntentAPI, expects: response.FormatJSON, pathInfo: "/api/health"},
		{name: "ajax", target: "/x", headers: map[string]string{"X-Requested-With": "XMLHttpRequest"}, intent: classify.IntentAPI, expects: response.FormatJSON, pathInfo: "/x", ajax: true},
		{name: "svg asset", target: "/badge/ok.svg", headers: map[string]string{"Accept": "application/json"}, intent: classify.IntentAsset, expects: response.FormatSVG, pathInfo: "/badge/ok.svg"},
		{name: "base path stripped", base: "/app/", target: "/app/items/2?x=1", intent: classify.IntentPage, expects: response.FormatText, pathInfo: "/items/2"},
		{name: "base path root", base: "/app", target: "/app", intent: classify.IntentPage, expects: response.FormatText, pathInfo: "/"},
		{name: "base path prefix only", base: "/app", target: "/apple", intent: classify.IntentPage, expects: response.FormatText, pathInfo: "/apple"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := envelope.New(envelope.Params{Method: "GET", Target: tt.target, Headers: tt.headers})
			got := classify.New(tt.base).Classify(env)

			assert.Equal(t, tt.intent, got.Intent)
			assert.Equal(t, tt.expects, got.Expects)
			assert.Equal(t, tt.pathInfo, got.PathInfo)
			assert.Equal(t, tt.ajax, got.IsAjax)
		})
	}
}

func TestIsPathSafe(t *testing.T) {
	t.Parallel()

	safe := []string{
		"/",
		"/items/42",
		"/badge/build.svg",
		"/files/a..b",
		"/search/hello%20world",
		"/.well-known/x",
	}
	unsafe := []string{
		"/../etc/passwd",
		"/a/..",
		"/a/%2e%2e/b",
		"/a/%2E%2E/b",
		"/a/.%2e/b",
		"/a/%252e%252e/b",
		"/a/%25252e%25252e/b",
		"/a\\..\\b",
		"/a/%5c..%5cb",
		"/a/%255c",
		"/a\x00b",
		"/a/%00",
		"/a/%2500",
		"/a/%zz",
	}

	for _, p := range safe {
		assert.True(t, classify.IsPathSafe(p), "expected safe: %q", p)
	}
	for _, p := range unsafe {
		assert.False(t, classify.IsPathSafe(p), "expected unsafe: %q", p)
	}
}

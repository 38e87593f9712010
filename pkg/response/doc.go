// Package response defines the transport-neutral response value produced by
// handlers and by the runtime itself.
//
// A Response is a status code, a header map and a body. Builders such as Text,
// JSON and SVG cover the common content types; Error renders one of the
// predefined HTTPError values in the format the client expects (JSON for API
// and AJAX callers, plain text otherwise).
//
// # Usage
//
//	resp := response.JSON(http.StatusOK, map[string]any{"id": 42})
//	resp = resp.WithHeader("Cache-Control", "no-store")
//
//	notFound := response.Error(response.ErrNotFound, response.FormatJSON)
//
// Responses are values: WithHeader returns a modified copy and never changes
// the receiver.
package response

package response

import (
	"encoding/json"
	"maps"
	"net/http"
)

// Format is the representation a client expects for the response body.
type Format string

const (
	FormatHTML Format = "html"
	FormatJSON Format = "json"
	FormatText Format = "text"
	FormatSVG  Format = "svg"
)

const (
	ContentTypeJSON = "application/json; charset=utf-8"
	ContentTypeText = "text/plain; charset=utf-8"
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypeSVG  = "image/svg+xml"
)

// Response is an abstract status/headers/body triple.
type Response struct {
	Status  int
	Headers map[string]string
	Body    []byte
}

// Size returns the body length in bytes.
func (r Response) Size() int {
	return len(r.Body)
}

// Header returns the value of the named header.
func (r Response) Header(name string) string {
	return r.Headers[http.CanonicalHeaderKey(name)]
}

// WithHeader returns a copy of r with the header set.
func (r Response) WithHeader(name, value string) Response {
	h := maps.Clone(r.Headers)
	if h == nil {
		h = make(map[string]string, 1)
	}
	h[http.CanonicalHeaderKey(name)] = value
	r.Headers = h
	return r
}

// New builds a response with the given content type.
func New(status int, contentType string, body []byte) Response {
	return Response{
		Status:  status,
		Headers: map[string]string{"Content-Type": contentType},
		Body:    body,
	}
}

// Text creates a plain text response.
func Text(status int, body string) Response {
	return New(status, ContentTypeText, []byte(body))
}

// HTML creates an HTML response from pre-rendered markup.
func HTML(status int, markup string) Response {
	return New(status, ContentTypeHTML, []byte(markup))
}

// SVG creates an SVG image response.
func SVG(status int, markup string) Response {
	return New(status, ContentTypeSVG, []byte(markup))
}

// Envelope is the standard JSON body shape.
type Envelope struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// JSON creates a JSON response with v wrapped in the data field.
// Marshal failures produce an internal error response.
func JSON(status int, v any) Response {
	body, err := json.Marshal(Envelope{Data: v})
	if err != nil {
		return Error(ErrInternalServerError, FormatJSON)
	}
	return New(status, ContentTypeJSON, body)
}

// Error renders e in the requested format with a generic message.
func Error(e HTTPError, format Format) Response {
	return ErrorWithMessage(e, format, http.StatusText(e.Code))
}

// ErrorWithMessage renders e in the requested format using msg as the
// human-readable message.
func ErrorWithMessage(e HTTPError, format Format, msg string) Response {
	if format == FormatJSON {
		body, err := json.Marshal(Envelope{Error: &ErrorDetail{Code: e.Key, Message: msg}})
		if err == nil {
			return New(e.Code, ContentTypeJSON, body)
		}
	}
	return Text(e.Code, msg)
}

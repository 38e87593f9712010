package envelope

import (
	"maps"
	"strings"
	"time"
)

// Params carries the raw values used to build an Envelope.
type Params struct {
	ID         string
	Method     string
	Target     string // raw path plus optional "?query"
	Headers    map[string]string
	Body       []byte
	RemoteAddr string
	ArrivedAt  time.Time
}

// Envelope is an immutable description of one inbound request.
type Envelope struct {
	id         string
	method     string
	path       string
	query      string
	headers    map[string]string
	body       []byte
	remoteAddr string
	arrivedAt  time.Time
}

// New builds an Envelope from p. Header names are normalized to lower case,
// the method to upper case. A zero ArrivedAt is replaced with time.Now().
func New(p Params) Envelope {
	path, query, _ := strings.Cut(p.Target, "?")
	if path == "" {
		path = "/"
	}

	headers := make(map[string]string, len(p.Headers))
	for k, v := range p.Headers {
		headers[strings.ToLower(k)] = v
	}

	var body []byte
	if len(p.Body) > 0 {
		body = make([]byte, len(p.Body))
		copy(body, p.Body)
	}

	arrived := p.ArrivedAt
	if arrived.IsZero() {
		arrived = time.Now()
	}

	return Envelope{
		id:         p.ID,
		method:     strings.ToUpper(p.Method),
		path:       path,
		query:      query,
		headers:    headers,
		body:       body,
		remoteAddr: p.RemoteAddr,
		arrivedAt:  arrived,
	}
}

func (e Envelope) ID() string           { return e.id }
func (e Envelope) Method() string       { return e.method }
func (e Envelope) Path() string         { return e.path }
func (e Envelope) Query() string        { return e.query }
func (e Envelope) RemoteAddr() string   { return e.remoteAddr }
func (e Envelope) ArrivedAt() time.Time { return e.arrivedAt }

// Target returns the raw path and query as received.
func (e Envelope) Target() string {
	if e.query == "" {
		return e.path
	}
	return e.path + "?" + e.query
}

// Header returns the value of the named header, matched case-insensitively.
func (e Envelope) Header(name string) string {
	return e.headers[strings.ToLower(name)]
}

// Headers returns a copy of all headers keyed by lower-cased name.
func (e Envelope) Headers() map[string]string {
	return maps.Clone(e.headers)
}

// Body returns a copy of the request body, or nil when there is none.
func (e Envelope) Body() []byte {
	if e.body == nil {
		return nil
	}
	out := make([]byte, len(e.body))
	copy(out, e.body)
	return out
}

// HasBody reports whether the request carried a non-empty body.
func (e Envelope) HasBody() bool {
	return len(e.body) > 0
}

package httpserver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/reqkit/pkg/clientip"
	"github.com/dmitrymomot/reqkit/pkg/envelope"
	"github.com/dmitrymomot/reqkit/pkg/logger"
	"github.com/dmitrymomot/reqkit/pkg/requestid"
	"github.com/dmitrymomot/reqkit/pkg/response"
)

// DefaultMaxBodySize caps request bodies when no limit is configured.
const DefaultMaxBodySize int64 = 1 << 20

// Handler is the transport-neutral request processor behind the ingress.
// *engine.Runtime implements it.
type Handler interface {
	Handle(ctx context.Context, env envelope.Envelope) response.Response
}

// AdapterOption configures NewAdapter.
type AdapterOption func(*Adapter)

// WithMaxBodySize caps the request body read into the envelope. Non-positive
// values are ignored.
func WithMaxBodySize(n int64) AdapterOption {
	return func(a *Adapter) {
		if n > 0 {
			a.maxBodySize = n
		}
	}
}

// WithAdapterLogger sets the adapter logger. Nil is ignored.
func WithAdapterLogger(l *slog.Logger) AdapterOption {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// Adapter turns *http.Request values into envelopes and writes the resulting
// response back to the wire.
type Adapter struct {
	handler     Handler
	maxBodySize int64
	logger      *slog.Logger
	now         func() time.Time
}

// NewAdapter wraps h as an http.Handler.
func NewAdapter(h Handler, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		handler:     h,
		maxBodySize: DefaultMaxBodySize,
		logger:      logger.NewNop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ServeHTTP implements http.Handler.
func (a *Adapter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	arrived := a.now()
	id := requestid.Resolve(r.Header.Get(requestid.Header))
	ctx := requestid.WithContext(r.Context(), id)
	ctx = clientip.WithContext(ctx, clientip.FromRequest(r))

	body, err := a.readBody(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteResponse(w, response.Error(response.ErrPayloadTooLarge, response.FormatText).
				WithHeader(requestid.Header, id))
			return
		}
		a.logger.WarnContext(ctx, "reading request body", logger.Error(err))
		WriteResponse(w, response.Error(response.ErrBadRequest, response.FormatText).
			WithHeader(requestid.Header, id))
		return
	}

	env := envelope.New(envelope.Params{
		ID:         id,
		Method:     r.Method,
		Target:     requestTarget(r),
		Headers:    flattenHeaders(r),
		Body:       body,
		RemoteAddr: r.RemoteAddr,
		ArrivedAt:  arrived,
	})

	resp := a.handler.Handle(ctx, env)
	if resp.Header(requestid.Header) == "" {
		resp = resp.WithHeader(requestid.Header, id)
	}
	WriteResponse(w, resp)
}

func (a *Adapter) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	defer r.Body.Close()
	return io.ReadAll(http.MaxBytesReader(w, r.Body, a.maxBodySize))
}

// requestTarget keeps the path exactly as the client sent it so encoded
// traversal sequences reach the path-safety check.
func requestTarget(r *http.Request) string {
	if r.RequestURI != "" && strings.HasPrefix(r.RequestURI, "/") {
		return r.RequestURI
	}
	return r.URL.RequestURI()
}

// flattenHeaders joins repeated header values with ", " and adds Host.
func flattenHeaders(r *http.Request) map[string]string {
	out := make(map[string]string, len(r.Header)+1)
	for name, values := range r.Header {
		out[name] = strings.Join(values, ", ")
	}
	if r.Host != "" {
		out["Host"] = r.Host
	}
	return out
}

// WriteResponse writes resp to w. A zero status is written as 200 and empty
// header values are skipped.
func WriteResponse(w http.ResponseWriter, resp response.Response) {
	h := w.Header()
	for name, value := range resp.Headers {
		if value != "" {
			h.Set(name, value)
		}
	}

	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	if status != http.StatusNoContent && status != http.StatusNotModified {
		h.Set("Content-Length", strconv.Itoa(len(resp.Body)))
	}
	w.WriteHeader(status)
	if len(resp.Body) > 0 {
		_, _ = w.Write(resp.Body)
	}
}

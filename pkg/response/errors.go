package response

import (
	"net/http"
)

// HTTPError pairs a status code with a stable machine-readable key.
type HTTPError struct {
	Code int    // HTTP status code
	Key  string // Stable identifier, e.g. "not_found"
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Key
}

// StatusClientClosedRequest is the non-standard status recorded when the
// caller goes away before a response is produced.
const StatusClientClosedRequest = 499

// Errors produced by the runtime itself.
var (
	ErrBadRequest          = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrNotFound            = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	ErrPayloadTooLarge     = HTTPError{Code: http.StatusRequestEntityTooLarge, Key: "payload_too_large"}
	ErrInternalServerError = HTTPError{Code: http.StatusInternalServerError, Key: "internal_server_error"}
	ErrServiceUnavailable  = HTTPError{Code: http.StatusServiceUnavailable, Key: "service_unavailable"}
	ErrGatewayTimeout      = HTTPError{Code: http.StatusGatewayTimeout, Key: "gateway_timeout"}
	ErrClientClosedRequest = HTTPError{Code: StatusClientClosedRequest, Key: "client_closed_request"}
)

// NewHTTPError creates a custom error with the given status code and key.
func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

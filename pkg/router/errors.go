package router

import "errors"

var (
	ErrEmptyMethod      = errors.New("router: method cannot be empty")
	ErrInvalidPattern   = errors.New("router: pattern must start with '/'")
	ErrInvalidParamName = errors.New("router: invalid parameter name")
	ErrDuplicateRoute   = errors.New("router: route already registered")
)

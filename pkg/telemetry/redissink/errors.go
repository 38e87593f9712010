package redissink

import "errors"

var (
	ErrFailedToParseURL = errors.New("redissink: failed to parse redis url")
	ErrRedisNotReady    = errors.New("redissink: redis did not respond to ping")
	ErrFlush            = errors.New("redissink: flush failed")
)

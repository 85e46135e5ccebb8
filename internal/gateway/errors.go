package gateway

import "errors"

var (
	// ErrTransport is returned when the quiz API cannot be reached or answers
	// with a non-2xx status.
	ErrTransport = errors.New("quiz api transport error")
	// ErrFormat is returned when the quiz API answers with a payload that does
	// not have the expected shape.
	ErrFormat = errors.New("quiz api format error")
)

package config

import "errors"

var (
	// ErrNilPointer is returned when Load receives a nil configuration pointer.
	ErrNilPointer = errors.New("config: nil pointer provided")

	// ErrParseFailed wraps failures to parse environment variables into the struct.
	ErrParseFailed = errors.New("config: failed to parse environment variables")
)

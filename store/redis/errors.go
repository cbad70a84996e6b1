package redis

import "errors"

var (
	// ErrFailedToParseConnString is returned when the connection URL is invalid.
	ErrFailedToParseConnString = errors.New("redis store: failed to parse connection string")

	// ErrNotReady is returned when the server does not become ready within the retry budget.
	ErrNotReady = errors.New("redis store: server did not become ready")
)

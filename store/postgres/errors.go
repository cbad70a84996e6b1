package postgres

import "errors"

var (
	// ErrFailedToParseDBConfig is returned when the connection string cannot be parsed.
	ErrFailedToParseDBConfig = errors.New("postgres store: failed to parse connection config")

	// ErrFailedToOpenDBConnection is returned when all connection attempts fail.
	ErrFailedToOpenDBConnection = errors.New("postgres store: failed to open connection")
)

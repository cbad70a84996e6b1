package tenantkit

import "errors"

var (
	// ErrTenantNotFound is returned by stores when no tenant matches the identifier.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInvalidIdentifier is returned when the identifier format is invalid.
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")

	// ErrNoTenantInContext is returned when a required tenant is missing from context.
	ErrNoTenantInContext = errors.New("no tenant in context")

	// ErrNilTenant is returned by stores when a nil tenant is passed to Add.
	ErrNilTenant = errors.New("nil tenant")
)

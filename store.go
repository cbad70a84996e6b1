package tenantkit

import "context"

// Store loads and manages tenant records. The middleware only calls
// GetByID on the hot path; the remaining operations exist for the
// tooling that surrounds a deployment (provisioning scripts, admin
// endpoints, tests).
//
// Implementations report a missing tenant with ErrTenantNotFound so
// that callers can tell a miss apart from a transport failure.
type Store interface {
	// GetByID retrieves a tenant by its unique identifier.
	GetByID(ctx context.Context, id string) (*Tenant, error)

	// GetByName retrieves a tenant by its display name.
	GetByName(ctx context.Context, name string) (*Tenant, error)

	// GetAll returns every tenant known to the store.
	GetAll(ctx context.Context) ([]*Tenant, error)

	// Add upserts a tenant by identifier, replacing an existing record
	// that shares the same ID. Returns the stored record.
	Add(ctx context.Context, t *Tenant) (*Tenant, error)
}

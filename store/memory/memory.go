// Package memory provides a mutex-guarded in-memory tenant store, suitable
// for tests, examples and single-process deployments with a fixed tenant set.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tenantkit"
)

// Store is an in-memory tenantkit.Store implementation.
type Store struct {
	mu     sync.RWMutex
	byID   map[string]*tenantkit.Tenant
	byName map[string]string // display name -> id
}

// New creates a store pre-seeded with the given tenants. Seed records with
// a blank ID get a generated one, same as Add.
func New(tenants ...*tenantkit.Tenant) *Store {
	s := &Store{
		byID:   make(map[string]*tenantkit.Tenant),
		byName: make(map[string]string),
	}
	for _, t := range tenants {
		if t != nil {
			s.put(t)
		}
	}
	return s
}

// GetByID retrieves a tenant by its unique identifier.
func (s *Store) GetByID(ctx context.Context, id string) (*tenantkit.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.byID[id]
	if !ok {
		return nil, tenantkit.ErrTenantNotFound
	}
	return t.Clone(), nil
}

// GetByName retrieves a tenant by its display name.
func (s *Store) GetByName(ctx context.Context, name string) (*tenantkit.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byName[name]
	if !ok {
		return nil, tenantkit.ErrTenantNotFound
	}
	return s.byID[id].Clone(), nil
}

// GetAll returns every tenant, sorted by identifier for stable output.
func (s *Store) GetAll(ctx context.Context) ([]*tenantkit.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tenants := make([]*tenantkit.Tenant, 0, len(s.byID))
	for _, t := range s.byID {
		tenants = append(tenants, t.Clone())
	}
	sort.Slice(tenants, func(i, j int) bool { return tenants[i].ID < tenants[j].ID })
	return tenants, nil
}

// Add upserts a tenant by identifier, generating an ID when blank.
func (s *Store) Add(ctx context.Context, t *tenantkit.Tenant) (*tenantkit.Tenant, error) {
	if t == nil {
		return nil, tenantkit.ErrNilTenant
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(t).Clone(), nil
}

// put stores a copy of t, maintaining the name index. Caller holds the
// write lock (or has exclusive access during construction).
func (s *Store) put(t *tenantkit.Tenant) *tenantkit.Tenant {
	record := t.Clone()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if prev, ok := s.byID[record.ID]; ok {
		delete(s.byName, prev.Name)
	}
	s.byID[record.ID] = record
	s.byName[record.Name] = record.ID
	return record
}

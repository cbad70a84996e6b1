// Package file provides a YAML-file-backed tenant store. The file holds a
// list of tenant records; reads are served from memory and Add rewrites
// the file atomically.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/tenantkit"
)

// ErrLoadFailed wraps failures to read or decode the tenants file.
var ErrLoadFailed = errors.New("file store: failed to load tenants file")

// Store is a YAML-file-backed tenantkit.Store implementation.
type Store struct {
	path string

	mu   sync.RWMutex
	byID map[string]*tenantkit.Tenant
}

// Open reads the tenants file at path. A missing file is treated as an
// empty store; the file is created on the first Add.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		byID: make(map[string]*tenantkit.Tenant),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Join(ErrLoadFailed, err)
	}

	var tenants []*tenantkit.Tenant
	if err := yaml.Unmarshal(data, &tenants); err != nil {
		return nil, errors.Join(ErrLoadFailed, err)
	}
	for _, t := range tenants {
		if t != nil && t.ID != "" {
			s.byID[t.ID] = t
		}
	}
	return s, nil
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

	for _, t := range s.byID {
		if t.Name == name {
			return t.Clone(), nil
		}
	}
	return nil, tenantkit.ErrTenantNotFound
}

// GetAll returns every tenant, sorted by identifier for stable output.
func (s *Store) GetAll(ctx context.Context) ([]*tenantkit.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(), nil
}

// Add upserts a tenant by identifier and persists the whole set back to
// the file. The write goes through a temp file and rename so a crash never
// leaves a half-written tenants file.
func (s *Store) Add(ctx context.Context, t *tenantkit.Tenant) (*tenantkit.Tenant, error) {
	if t == nil {
		return nil, tenantkit.ErrNilTenant
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := t.Clone()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	prev, existed := s.byID[record.ID]
	s.byID[record.ID] = record

	if err := s.persistLocked(); err != nil {
		// The file still holds the previous state; roll the in-memory
		// view back to match it.
		if existed {
			s.byID[record.ID] = prev
		} else {
			delete(s.byID, record.ID)
		}
		return nil, err
	}
	return record.Clone(), nil
}

func (s *Store) sortedLocked() []*tenantkit.Tenant {
	tenants := make([]*tenantkit.Tenant, 0, len(s.byID))
	for _, t := range s.byID {
		tenants = append(tenants, t.Clone())
	}
	sort.Slice(tenants, func(i, j int) bool { return tenants[i].ID < tenants[j].ID })
	return tenants
}

func (s *Store) persistLocked() error {
	data, err := yaml.Marshal(s.sortedLocked())
	if err != nil {
		return fmt.Errorf("file store: failed to encode tenants: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tenants-*.yaml")
	if err != nil {
		return fmt.Errorf("file store: failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("file store: failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("file store: failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("file store: failed to replace tenants file: %w", err)
	}
	return nil
}

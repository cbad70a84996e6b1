// Package postgres provides a PostgreSQL-backed tenant store on top of a
// pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/tenantkit"
	"github.com/dmitrymomot/tenantkit/config"
)

// Schema is the DDL for the tenants table. Apply it with your migration
// tooling of choice, or execute it directly for tests and prototypes.
const Schema = `
CREATE TABLE IF NOT EXISTS tenants (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	meta JSONB NOT NULL DEFAULT '{}'::jsonb
)`

// Store is a PostgreSQL-backed tenantkit.Store implementation.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a store on an existing connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// NewFromEnv loads Config from the environment and connects.
func NewFromEnv(ctx context.Context) (*Store, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	pool, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(pool), nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// GetByID retrieves a tenant by its unique identifier.
func (s *Store) GetByID(ctx context.Context, id string) (*tenantkit.Tenant, error) {
	return s.get(ctx, `SELECT id, name, meta FROM tenants WHERE id = $1`, id)
}

// GetByName retrieves a tenant by its display name.
func (s *Store) GetByName(ctx context.Context, name string) (*tenantkit.Tenant, error) {
	return s.get(ctx, `SELECT id, name, meta FROM tenants WHERE name = $1`, name)
}

// GetAll returns every tenant ordered by identifier.
func (s *Store) GetAll(ctx context.Context) ([]*tenantkit.Tenant, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, meta FROM tenants ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("postgres store: query tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*tenantkit.Tenant
	for rows.Next() {
		t := &tenantkit.Tenant{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Meta); err != nil {
			return nil, fmt.Errorf("postgres store: scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres store: iterate tenants: %w", err)
	}
	return tenants, nil
}

// Add upserts a tenant by identifier, generating an ID when blank.
func (s *Store) Add(ctx context.Context, t *tenantkit.Tenant) (*tenantkit.Tenant, error) {
	if t == nil {
		return nil, tenantkit.ErrNilTenant
	}

	record := t.Clone()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Meta == nil {
		record.Meta = map[string]any{}
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO tenants (id, name, meta) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, meta = EXCLUDED.meta`,
		record.ID, record.Name, record.Meta,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres store: upsert tenant: %w", err)
	}
	return record, nil
}

func (s *Store) get(ctx context.Context, query, arg string) (*tenantkit.Tenant, error) {
	t := &tenantkit.Tenant{}
	err := s.pool.QueryRow(ctx, query, arg).Scan(&t.ID, &t.Name, &t.Meta)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tenantkit.ErrTenantNotFound
		}
		return nil, fmt.Errorf("postgres store: query tenant: %w", err)
	}
	return t, nil
}

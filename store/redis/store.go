// Package redis provides a Redis-backed tenant store. Records are stored
// as JSON values keyed by identifier, with a secondary index for display
// names and a set of all identifiers for listing.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/tenantkit"
	"github.com/dmitrymomot/tenantkit/config"
)

const (
	recordKeyPrefix = "tenant:"
	nameKeyPrefix   = "tenant:name:"
	idSetKey        = "tenants:ids"
)

// Store is a Redis-backed tenantkit.Store implementation.
type Store struct {
	client *redis.Client
}

// New creates a store on an existing Redis client.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

// NewFromEnv loads Config from the environment and connects.
func NewFromEnv(ctx context.Context) (*Store, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	client, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(client), nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// GetByID retrieves a tenant by its unique identifier.
func (s *Store) GetByID(ctx context.Context, id string) (*tenantkit.Tenant, error) {
	data, err := s.client.Get(ctx, recordKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, tenantkit.ErrTenantNotFound
		}
		return nil, fmt.Errorf("redis store: get tenant: %w", err)
	}

	t := &tenantkit.Tenant{}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("redis store: decode tenant: %w", err)
	}
	return t, nil
}

// GetByName retrieves a tenant by its display name through the name index.
func (s *Store) GetByName(ctx context.Context, name string) (*tenantkit.Tenant, error) {
	id, err := s.client.Get(ctx, nameKeyPrefix+name).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, tenantkit.ErrTenantNotFound
		}
		return nil, fmt.Errorf("redis store: get name index: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetAll returns every tenant, sorted by identifier for stable output.
func (s *Store) GetAll(ctx context.Context) ([]*tenantkit.Tenant, error) {
	ids, err := s.client.SMembers(ctx, idSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis store: list tenant ids: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = recordKeyPrefix + id
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis store: load tenants: %w", err)
	}

	tenants := make([]*tenantkit.Tenant, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Record expired or deleted between SMEMBERS and MGET.
			continue
		}
		t := &tenantkit.Tenant{}
		if err := json.Unmarshal([]byte(raw), t); err != nil {
			return nil, fmt.Errorf("redis store: decode tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	sort.Slice(tenants, func(i, j int) bool { return tenants[i].ID < tenants[j].ID })
	return tenants, nil
}

// Add upserts a tenant by identifier, generating an ID when blank. The
// name index entry of a replaced record is dropped in the same pipeline.
func (s *Store) Add(ctx context.Context, t *tenantkit.Tenant) (*tenantkit.Tenant, error) {
	if t == nil {
		return nil, tenantkit.ErrNilTenant
	}

	record := t.Clone()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("redis store: encode tenant: %w", err)
	}

	prev, err := s.GetByID(ctx, record.ID)
	if err != nil && !errors.Is(err, tenantkit.ErrTenantNotFound) {
		return nil, err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if prev != nil && prev.Name != record.Name {
			pipe.Del(ctx, nameKeyPrefix+prev.Name)
		}
		pipe.Set(ctx, recordKeyPrefix+record.ID, data, 0)
		pipe.Set(ctx, nameKeyPrefix+record.Name, record.ID, 0)
		pipe.SAdd(ctx, idSetKey, record.ID)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis store: upsert tenant: %w", err)
	}
	return record, nil
}

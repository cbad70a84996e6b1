// Package mongo provides a MongoDB-backed tenant store. Tenants live in a
// single collection with the identifier as the document key.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/tenantkit"
	"github.com/dmitrymomot/tenantkit/config"
)

// CollectionName is the collection holding tenant documents.
const CollectionName = "tenants"

type tenantDoc struct {
	ID   string         `bson:"_id"`
	Name string         `bson:"name"`
	Meta map[string]any `bson:"meta,omitempty"`
}

func (d tenantDoc) tenant() *tenantkit.Tenant {
	return &tenantkit.Tenant{ID: d.ID, Name: d.Name, Meta: d.Meta}
}

// Store is a MongoDB-backed tenantkit.Store implementation.
type Store struct {
	coll *mongo.Collection
}

// New creates a store on an existing database handle.
func New(db *mongo.Database) *Store {
	return &Store{coll: db.Collection(CollectionName)}
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
	return New(client.Database(cfg.Database)), nil
}

// GetByID retrieves a tenant by its unique identifier.
func (s *Store) GetByID(ctx context.Context, id string) (*tenantkit.Tenant, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetByName retrieves a tenant by its display name.
func (s *Store) GetByName(ctx context.Context, name string) (*tenantkit.Tenant, error) {
	return s.findOne(ctx, bson.M{"name": name})
}

// GetAll returns every tenant ordered by identifier.
func (s *Store) GetAll(ctx context.Context) ([]*tenantkit.Tenant, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("mongo store: find tenants: %w", err)
	}

	var docs []tenantDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo store: decode tenants: %w", err)
	}

	tenants := make([]*tenantkit.Tenant, len(docs))
	for i, d := range docs {
		tenants[i] = d.tenant()
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

	doc := tenantDoc{ID: record.ID, Name: record.Name, Meta: record.Meta}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": record.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("mongo store: upsert tenant: %w", err)
	}
	return record, nil
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (*tenantkit.Tenant, error) {
	var doc tenantDoc
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, tenantkit.ErrTenantNotFound
		}
		return nil, fmt.Errorf("mongo store: find tenant: %w", err)
	}
	return doc.tenant(), nil
}

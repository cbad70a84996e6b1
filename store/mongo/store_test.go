package mongo_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomongo "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/tenantkit"
	"github.com/dmitrymomot/tenantkit/store/mongo"
)

// newTestStore connects to the server named by TEST_MONGODB_URL, or skips
// the test when the variable is unset.
func newTestStore(t *testing.T) *mongo.Store {
	t.Helper()

	url := os.Getenv("TEST_MONGODB_URL")
	if url == "" {
		t.Skip("TEST_MONGODB_URL not set; skipping mongo store tests")
	}

	ctx := context.Background()
	client, err := gomongo.Connect(options.Client().ApplyURI(url))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	return mongo.New(client.Database("tenantkit_test"))
}

func TestStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("add and get by id", func(t *testing.T) {
		id := "acme-" + uuid.NewString()
		added, err := store.Add(ctx, &tenantkit.Tenant{
			ID:   id,
			Name: "Acme " + id,
			Meta: map[string]any{"plan": "pro"},
		})
		require.NoError(t, err)
		assert.Equal(t, id, added.ID)

		got, err := store.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, added.Name, got.Name)
		assert.Equal(t, "pro", got.Meta["plan"])
	})

	t.Run("missing id reports not found", func(t *testing.T) {
		_, err := store.GetByID(ctx, "ghost-"+uuid.NewString())
		assert.ErrorIs(t, err, tenantkit.ErrTenantNotFound)
	})

	t.Run("get by name", func(t *testing.T) {
		id := "acme-" + uuid.NewString()
		name := "Named " + id
		_, err := store.Add(ctx, &tenantkit.Tenant{ID: id, Name: name})
		require.NoError(t, err)

		got, err := store.GetByName(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
	})

	t.Run("add upserts by id", func(t *testing.T) {
		id := "acme-" + uuid.NewString()
		_, err := store.Add(ctx, &tenantkit.Tenant{ID: id, Name: "Before"})
		require.NoError(t, err)
		_, err = store.Add(ctx, &tenantkit.Tenant{ID: id, Name: "After"})
		require.NoError(t, err)

		got, err := store.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "After", got.Name)
	})

	t.Run("get all includes added tenants", func(t *testing.T) {
		id := "acme-" + uuid.NewString()
		_, err := store.Add(ctx, &tenantkit.Tenant{ID: id, Name: "Listed " + id})
		require.NoError(t, err)

		all, err := store.GetAll(ctx)
		require.NoError(t, err)

		found := false
		for _, tn := range all {
			if tn.ID == id {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("nil tenant rejected", func(t *testing.T) {
		_, err := store.Add(ctx, nil)
		assert.ErrorIs(t, err, tenantkit.ErrNilTenant)
	})
}

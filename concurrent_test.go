package tenantkit_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/tenantkit"
)

func TestMiddleware_ConcurrentRequestsDoNotLeakContext(t *testing.T) {
	t.Parallel()

	const numTenants = 20
	const requestsPerTenant = 50

	tenants := make([]*tenantkit.Tenant, numTenants)
	for i := range tenants {
		id := fmt.Sprintf("tenant-%d", i)
		tenants[i] = &tenantkit.Tenant{ID: id, Name: "Tenant " + id}
	}
	store := newMockStore(tenants...)

	mw := tenantkit.Middleware(store, []tenantkit.Strategy{
		tenantkit.NewHeaderStrategy(""),
	})

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		want := r.Header.Get("X-Tenant-ID")

		resolved, ok := tenantkit.FromContext(r.Context())
		if assert.True(t, ok) {
			assert.Equal(t, want, resolved.ID)
		}

		id, seeded := tenantkit.IdentifierFromContext(r.Context())
		assert.True(t, seeded)
		assert.Equal(t, want, id)

		// The context travels into work spawned off the request.
		done := make(chan string, 1)
		ctx := r.Context()
		go func() {
			spawned, _ := tenantkit.IdentifierFromContext(ctx)
			done <- spawned
		}()
		assert.Equal(t, want, <-done)
	}))

	var wg sync.WaitGroup
	wg.Add(numTenants)
	for i := 0; i < numTenants; i++ {
		go func(i int) {
			defer wg.Done()
			for r := 0; r < requestsPerTenant; r++ {
				req := httptest.NewRequest("GET", "/test", nil)
				req.Header.Set("X-Tenant-ID", fmt.Sprintf("tenant-%d", i))
				handler.ServeHTTP(httptest.NewRecorder(), req)
			}
		}(i)
	}
	wg.Wait()
}

func TestStrategies_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	const numGoroutines = 50
	const numOperations = 200

	t.Run("header strategy", func(t *testing.T) {
		t.Parallel()

		s := tenantkit.NewHeaderStrategy("")
		var wg sync.WaitGroup
		wg.Add(numGoroutines)
		for g := 0; g < numGoroutines; g++ {
			go func() {
				defer wg.Done()
				for op := 0; op < numOperations; op++ {
					req := httptest.NewRequest("GET", "/", nil)
					req.Header.Set("X-Tenant-ID", "tenant1")
					id, err := s.Resolve(req)
					assert.NoError(t, err)
					assert.Equal(t, "tenant1", id)
				}
			}()
		}
		wg.Wait()
	})

	t.Run("path strategy with rebase", func(t *testing.T) {
		t.Parallel()

		s := tenantkit.NewRebasingPathStrategy(1)
		var wg sync.WaitGroup
		wg.Add(numGoroutines)
		for g := 0; g < numGoroutines; g++ {
			go func() {
				defer wg.Done()
				for op := 0; op < numOperations; op++ {
					req := httptest.NewRequest("GET", "/tenant1/api", nil)
					id, err := s.Resolve(req)
					assert.NoError(t, err)
					assert.Equal(t, "tenant1", id)

					rebased := s.Rebase(req, id)
					assert.Equal(t, "/api", rebased.URL.Path)
				}
			}()
		}
		wg.Wait()
	})
}

package tenantkit_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit"
)

func TestPathStrategy(t *testing.T) {
	t.Parallel()

	t.Run("default position extracts first segment", func(t *testing.T) {
		t.Parallel()

		s := tenantkit.NewPathStrategy(0)
		id, err := s.Resolve(httptest.NewRequest("GET", "/tenant1/api/resources", nil))
		require.NoError(t, err)
		assert.Equal(t, "tenant1", id)
	})

	t.Run("root path yields no match", func(t *testing.T) {
		t.Parallel()

		s := tenantkit.NewPathStrategy(1)
		id, err := s.Resolve(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Empty(t, id)
	})

	t.Run("position two extracts second segment", func(t *testing.T) {
		t.Parallel()

		s := tenantkit.NewPathStrategy(2)
		id, err := s.Resolve(httptest.NewRequest("GET", "/api/tenant1/resources", nil))
		require.NoError(t, err)
		assert.Equal(t, "tenant1", id)
	})

	t.Run("position past the last segment yields no match", func(t *testing.T) {
		t.Parallel()

		s := tenantkit.NewPathStrategy(4)
		id, err := s.Resolve(httptest.NewRequest("GET", "/a/b/c", nil))
		require.NoError(t, err)
		assert.Empty(t, id)
	})

	t.Run("empty segments are discarded before counting", func(t *testing.T) {
		t.Parallel()

		s := tenantkit.NewPathStrategy(1)
		id, err := s.Resolve(httptest.NewRequest("GET", "//tenant1//api", nil))
		require.NoError(t, err)
		assert.Equal(t, "tenant1", id)
	})
}

func TestPathStrategyRebase(t *testing.T) {
	t.Parallel()

	t.Run("removes the matched segment exactly once", func(t *testing.T) {
		t.Parallel()

		s := tenantkit.NewRebasingPathStrategy(1)
		req := httptest.NewRequest("GET", "/tenant1/api/resources?page=2", nil)

		rebased := s.Rebase(req, "tenant1")
		require.NotSame(t, req, rebased)
		assert.Equal(t, "/api/resources", rebased.URL.Path)
		assert.Equal(t, "/api/resources?page=2", rebased.RequestURI)

		original, ok := tenantkit.OriginalPath(rebased.Context())
		require.True(t, ok)
		assert.Equal(t, "/tenant1/api/resources", original)

		// Source request stays untouched.
		assert.Equal(t, "/tenant1/api/resources", req.URL.Path)
		_, ok = tenantkit.OriginalPath(req.Context())
		assert.False(t, ok)
	})

	t.Run("second rebase on an already-rebased request is a no-op", func(t *testing.T) {
		t.Parallel()

		s := tenantkit.NewRebasingPathStrategy(1)
		req := httptest.NewRequest("GET", "/tenant1/tenant1/api", nil)

		once := s.Rebase(req, "tenant1")
		assert.Equal(t, "/tenant1/api", once.URL.Path)

		twice := s.Rebase(once, "tenant1")
		assert.Same(t, once, twice, "a rebased request must never be rewritten again")
		assert.Equal(t, "/tenant1/api", twice.URL.Path)
	})

	t.Run("resolution after rebase no longer finds the identifier", func(t *testing.T) {
		t.Parallel()

		s := tenantkit.NewRebasingPathStrategy(1)
		req := httptest.NewRequest("GET", "/tenant1/api/resources", nil)

		rebased := s.Rebase(req, "tenant1")
		id, err := s.Resolve(rebased)
		require.NoError(t, err)
		assert.Equal(t, "api", id)
		assert.NotEqual(t, "tenant1", id)
	})

	t.Run("no rewrite when the segment does not match", func(t *testing.T) {
		t.Parallel()

		s := tenantkit.NewRebasingPathStrategy(1)
		req := httptest.NewRequest("GET", "/other/api", nil)

		rebased := s.Rebase(req, "tenant1")
		assert.Same(t, req, rebased)
	})

	t.Run("no rewrite when rebasing is disabled", func(t *testing.T) {
		t.Parallel()

		s := tenantkit.NewPathStrategy(1)
		req := httptest.NewRequest("GET", "/tenant1/api", nil)

		rebased := s.Rebase(req, "tenant1")
		assert.Same(t, req, rebased)
	})

	t.Run("rebasing the only segment leaves the root path", func(t *testing.T) {
		t.Parallel()

		s := tenantkit.NewRebasingPathStrategy(1)
		req := httptest.NewRequest("GET", "/tenant1", nil)

		rebased := s.Rebase(req, "tenant1")
		assert.Equal(t, "/", rebased.URL.Path)
	})
}

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/config"
)

type testConfig struct {
	URL     string        `env:"LOADER_TEST_URL,required"`
	Timeout time.Duration `env:"LOADER_TEST_TIMEOUT" envDefault:"30s"`
	Retries int           `env:"LOADER_TEST_RETRIES" envDefault:"3"`
}

func TestLoad(t *testing.T) {
	t.Run("parses env with defaults", func(t *testing.T) {
		t.Setenv("LOADER_TEST_URL", "redis://localhost:6379/0")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "redis://localhost:6379/0", cfg.URL)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.Equal(t, 3, cfg.Retries)
	})

	t.Run("explicit values override defaults", func(t *testing.T) {
		t.Setenv("LOADER_TEST_URL", "redis://remote:6379/1")
		t.Setenv("LOADER_TEST_TIMEOUT", "5s")
		t.Setenv("LOADER_TEST_RETRIES", "7")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, 7, cfg.Retries)
	})

	t.Run("missing required variable fails", func(t *testing.T) {
		type strict struct {
			Token string `env:"LOADER_TEST_MISSING_TOKEN,required"`
		}

		var cfg strict
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParseFailed)
	})

	t.Run("nil pointer fails", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})
}

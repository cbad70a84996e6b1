package tenantkit

import (
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// ErrorHandler handles errors raised by guard middleware such as RequireTenant.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// TenantNotFoundHandler handles requests whose resolved identifier has no
// matching tenant in the store. The handler fully owns the response: the
// middleware does not call next unless the handler does so itself.
type TenantNotFoundHandler func(w http.ResponseWriter, r *http.Request, next http.Handler, identifier string)

// config holds middleware configuration.
type config struct {
	cache     Cache
	cacheTTL  time.Duration
	skipPaths []string
	notFound  TenantNotFoundHandler
	logger    *slog.Logger
	debug     bool
}

// Option configures the middleware.
type Option func(*config)

// WithCache sets a custom cache implementation in front of the store.
func WithCache(cache Cache) Option {
	return func(c *config) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// WithCacheTTL sets the TTL for cached tenants.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *config) {
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithSkipPaths sets path prefixes that bypass tenant resolution entirely.
func WithSkipPaths(paths []string) Option {
	return func(c *config) {
		c.skipPaths = paths
	}
}

// WithTenantNotFoundHandler overrides the default behavior of continuing
// with no tenant when an identifier was resolved but the store has no
// matching record.
func WithTenantNotFoundHandler(handler TenantNotFoundHandler) Option {
	return func(c *config) {
		c.notFound = handler
	}
}

// WithLogger sets the logger used for diagnostic output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDebug enables diagnostic logging of each strategy attempt, failure
// and the final resolution decision.
func WithDebug(debug bool) Option {
	return func(c *config) {
		c.debug = debug
	}
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNoTenantInContext):
		http.Error(w, "Tenant required", http.StatusUnauthorized)
	case errors.Is(err, ErrTenantNotFound):
		http.Error(w, "Tenant not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidIdentifier):
		http.Error(w, "Invalid tenant identifier", http.StatusBadRequest)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

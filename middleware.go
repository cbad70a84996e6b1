package tenantkit

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// PathRebaser is implemented by strategies that hand downstream handlers a
// rewritten view of the request once they have matched. The middleware
// applies the rebase right after adopting the identifier, before the store
// lookup.
type PathRebaser interface {
	Rebase(r *http.Request, identifier string) *http.Request
}

// Middleware creates HTTP middleware that resolves the request's tenant
// and adds it to the request context.
//
// Strategies are tried strictly in order; the first non-empty identifier
// wins and later strategies are never consulted, even if the store lookup
// for that identifier misses. A strategy error never aborts the chain. A
// request that resolves to no tenant continues anonymously unless a
// TenantNotFoundHandler is configured; nothing from resolution is ever
// surfaced to the client directly.
//
// With zero strategies the identifier channel is left entirely unset,
// which IdentifierFromContext reports as ("", false).
func Middleware(store Store, strategies []Strategy, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		cache:    NewNoOpCache(),
		cacheTTL: 5 * time.Minute,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			// Degenerate pipeline: resolution never ran, channel stays unset.
			if len(strategies) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			identifier, matched := resolve(r, strategies, cfg)
			if identifier == "" {
				if cfg.debug {
					cfg.logger.DebugContext(r.Context(), "tenant resolution: no strategy matched")
				}
				next.ServeHTTP(w, r.WithContext(withIdentifier(r.Context(), "")))
				return
			}

			// The matched strategy may rewrite the perceived path; this
			// happens whether or not the store lookup succeeds.
			if rebaser, ok := matched.(PathRebaser); ok {
				r = rebaser.Rebase(r, identifier)
			}

			if cached, ok := cfg.cache.Get(r.Context(), identifier); ok {
				serveWithTenant(w, r, next, cached, identifier)
				return
			}

			tenant, err := store.GetByID(r.Context(), identifier)
			switch {
			case errors.Is(err, ErrTenantNotFound):
				if cfg.debug {
					cfg.logger.DebugContext(r.Context(), "tenant resolution: identifier has no tenant",
						slog.String("identifier", identifier))
				}
				if cfg.notFound != nil {
					cfg.notFound(w, r, next, identifier)
					return
				}
				next.ServeHTTP(w, r.WithContext(withIdentifier(r.Context(), "")))

			case err != nil:
				// Transport failure downgrades to anonymous; the not-found
				// handler fires only for a confirmed miss.
				if cfg.debug {
					cfg.logger.DebugContext(r.Context(), "tenant resolution: store lookup failed",
						slog.String("identifier", identifier), slog.Any("error", err))
				}
				next.ServeHTTP(w, r.WithContext(withIdentifier(r.Context(), "")))

			default:
				cfg.cache.Set(r.Context(), identifier, tenant, cfg.cacheTTL)
				if cfg.debug {
					cfg.logger.DebugContext(r.Context(), "tenant resolution: resolved",
						slog.String("identifier", identifier), slog.String("tenant", tenant.Name))
				}
				serveWithTenant(w, r, next, tenant, identifier)
			}
		})
	}
}

// resolve iterates the strategy chain and returns the first non-empty
// identifier together with the strategy that produced it.
func resolve(r *http.Request, strategies []Strategy, cfg *config) (string, Strategy) {
	for i, s := range strategies {
		id, err := s.Resolve(r)
		if err != nil {
			if cfg.debug {
				cfg.logger.DebugContext(r.Context(), "tenant resolution: strategy failed",
					slog.Int("strategy", i), slog.Any("error", err))
			}
			continue
		}
		if id == "" {
			continue
		}
		if cfg.debug {
			cfg.logger.DebugContext(r.Context(), "tenant resolution: strategy matched",
				slog.Int("strategy", i), slog.String("identifier", id))
		}
		return id, s
	}
	return "", nil
}

// serveWithTenant runs the continuation inside a context carrying both the
// tenant record and the identifier channel, so everything the handler
// triggers, including spawned goroutines holding the context, observes the
// same tenant.
func serveWithTenant(w http.ResponseWriter, r *http.Request, next http.Handler, tenant *Tenant, identifier string) {
	ctx := withIdentifier(WithTenant(r.Context(), tenant), identifier)
	next.ServeHTTP(w, r.WithContext(ctx))
}

// RequireTenant creates middleware that rejects requests lacking a tenant
// in context. Place it after Middleware on routes that must not run
// anonymously.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

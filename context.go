package tenantkit

import (
	"context"
	"log/slog"
)

// Context keys are private types to prevent collisions with other packages.
type (
	tenantContextKey     struct{}
	identifierContextKey struct{}
)

// WithTenant adds a tenant to the context.
func WithTenant(ctx context.Context, tenant *Tenant) context.Context {
	return context.WithValue(ctx, tenantContextKey{}, tenant)
}

// FromContext retrieves the tenant from the context.
// Returns nil, false if no tenant is found.
func FromContext(ctx context.Context) (*Tenant, bool) {
	tenant, ok := ctx.Value(tenantContextKey{}).(*Tenant)
	if !ok || tenant == nil {
		return nil, false
	}
	return tenant, true
}

// MustFromContext retrieves the tenant from the context.
// Panics if no tenant is found. Use this only in handlers
// that absolutely require a tenant to function.
func MustFromContext(ctx context.Context) *Tenant {
	tenant, ok := FromContext(ctx)
	if !ok {
		panic("tenantkit: no tenant in context")
	}
	return tenant
}

// withIdentifier seeds the identifier channel for one request's call chain.
// An empty id records the explicit "resolved to nothing" state, which is
// distinguishable from a chain where resolution never ran at all.
// Write access is reserved to the middleware; downstream code only reads.
func withIdentifier(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, identifierContextKey{}, id)
}

// IdentifierFromContext returns the tenant identifier resolved for the
// current call chain. The boolean reports whether resolution ran at all:
// ("", false) means the middleware never seeded the channel (no strategies
// configured or middleware absent), ("", true) means resolution ran and
// found no tenant, (id, true) means a tenant identifier was resolved.
//
// The value is carried by context.Context, so it is visible to every
// function, goroutine and callback that receives the request context,
// without threading the identifier explicitly.
func IdentifierFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identifierContextKey{}).(string)
	return id, ok
}

// LoggerExtractor returns a ContextExtractor for slog-based loggers that
// annotates records with the resolved tenant identifier.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IdentifierFromContext(ctx); ok && id != "" {
			return slog.String("tenant_id", id), true
		}
		return slog.Attr{}, false
	}
}

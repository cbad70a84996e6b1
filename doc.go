// Package tenantkit resolves the tenant an incoming HTTP request belongs to
// and makes both the tenant record and its identifier available to
// downstream request handling, including goroutines spawned off the request
// context.
//
// # Architecture
//
// The package is built around three core concepts:
//
//  1. Strategies - extract a candidate tenant identifier from the request
//  2. Stores - load the full tenant record for an identifier
//  3. Middleware - orchestrates the strategy chain, the store lookup and
//     context propagation
//
// Strategies are tried in configured order and the first non-empty
// identifier wins; a failing strategy never aborts the chain. Resolution
// failures are invisible to the client: the request simply continues
// without a tenant, and it is up to the application (or RequireTenant) to
// reject anonymous requests where a tenant is mandatory.
//
// # Usage
//
//	import "github.com/dmitrymomot/tenantkit"
//
//	store := memory.New(
//		&tenantkit.Tenant{ID: "acme", Name: "Acme Inc."},
//	)
//
//	mw := tenantkit.Middleware(store, []tenantkit.Strategy{
//		tenantkit.NewHeaderStrategy("X-Tenant-ID"),
//		tenantkit.NewRebasingPathStrategy(1),
//	})
//
//	r := chi.NewRouter()
//	r.Use(mw)
//
//	// Access the tenant in handlers
//	func handler(w http.ResponseWriter, r *http.Request) {
//		t, ok := tenantkit.FromContext(r.Context())
//		if !ok {
//			// anonymous request
//			return
//		}
//		_ = t
//	}
//
// # Strategies
//
// Five strategies ship with the package:
//
//   - HeaderStrategy: reads a header, default "X-Tenant-ID"
//   - RouteParamStrategy: reads an already-matched route parameter (chi by
//     default, any router via ParamFunc)
//   - PathStrategy: reads a path segment by position, optionally rebasing
//     the path seen by downstream routes
//   - HostStrategy: applies a regular expression with one capture group to
//     the hostname
//   - ClaimStrategy: walks a dot-delimited claim path through a bearer
//     token payload
//
// Custom strategies implement the single-method Strategy interface or wrap
// a function with StrategyFunc.
//
// # Identifier channel
//
// Besides attaching the tenant record, the middleware seeds the request
// context with the resolved identifier. IdentifierFromContext distinguishes
// three states: never seeded (no strategies configured), seeded empty
// (resolution ran and found nothing) and seeded with an identifier. The
// value rides on context.Context, so any code holding the request context -
// including timers and goroutines it spawns - reads the same value, and
// concurrent requests can never observe each other's tenant.
//
// # Stores
//
// The store subpackages provide reference Store implementations: memory
// (map-backed), file (YAML-backed), postgres (pgx), redis (go-redis) and
// mongo (mongo-driver). The middleware only calls GetByID; the remaining
// operations serve provisioning and admin tooling.
//
// # Security considerations
//
// ClaimStrategy's default payload source decodes bearer tokens WITHOUT
// signature verification. It must only run behind an upstream authenticator
// that has already verified the token. This package performs no
// authentication or authorization of its own.
package tenantkit

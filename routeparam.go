package tenantkit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// DefaultRouteParam is the route parameter examined by RouteParamStrategy
// when no name is configured.
const DefaultRouteParam = "tenantId"

// ParamFunc returns the named route parameter already matched by the router,
// or empty string when the router matched no such parameter.
type ParamFunc func(r *http.Request, name string) string

// RouteParamStrategy extracts the tenant identifier from the request's
// already-matched route parameters. The default lookup uses chi; other
// routers plug in through a ParamFunc, e.g. for gorilla/mux:
//
//	tenantkit.NewRouteParamStrategyWithFunc("tenantId", func(r *http.Request, name string) string {
//		return mux.Vars(r)[name]
//	})
type RouteParamStrategy struct {
	// ParamName is the route parameter to read (e.g., "tenantId" for /{tenantId}/dashboard).
	ParamName string

	// Param looks the parameter up on the request.
	Param ParamFunc
}

// NewRouteParamStrategy creates a route parameter strategy backed by chi,
// defaulting to DefaultRouteParam.
func NewRouteParamStrategy(paramName string) *RouteParamStrategy {
	return NewRouteParamStrategyWithFunc(paramName, chi.URLParam)
}

// NewRouteParamStrategyWithFunc creates a route parameter strategy with a
// custom parameter lookup.
func NewRouteParamStrategyWithFunc(paramName string, param ParamFunc) *RouteParamStrategy {
	if paramName == "" {
		paramName = DefaultRouteParam
	}
	return &RouteParamStrategy{ParamName: paramName, Param: param}
}

// Resolve returns the matched route parameter value.
func (s *RouteParamStrategy) Resolve(req *http.Request) (string, error) {
	if s.Param == nil {
		return "", nil
	}
	return s.Param(req, s.ParamName), nil
}

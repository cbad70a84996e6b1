package tenantkit

import (
	"net"
	"net/http"
	"regexp"
	"strings"
)

// Strategy extracts a tenant identifier from an HTTP request.
//
// Strategies hold only configuration set at construction time and must be
// safe for concurrent use; the middleware shares one instance across all
// in-flight requests.
type Strategy interface {
	// Resolve extracts the tenant identifier from the request.
	// Returns empty string if no tenant identifier is found.
	// Returns error if the extraction fails; the middleware records the
	// failure and moves on to the next strategy in the chain.
	Resolve(r *http.Request) (string, error)
}

// StrategyFunc is an adapter to allow the use of ordinary functions as Strategies.
type StrategyFunc func(r *http.Request) (string, error)

// Resolve calls the function.
func (f StrategyFunc) Resolve(r *http.Request) (string, error) {
	return f(r)
}

// DefaultTenantHeader is the header examined by HeaderStrategy when no
// name is configured.
const DefaultTenantHeader = "X-Tenant-ID"

// HeaderStrategy extracts the tenant identifier from an HTTP header.
// Header lookup is case-insensitive per net/http canonicalization.
type HeaderStrategy struct {
	// HeaderName is the name of the header to read (e.g., "X-Tenant-ID").
	HeaderName string
}

// NewHeaderStrategy creates a header strategy, defaulting to DefaultTenantHeader.
func NewHeaderStrategy(headerName string) *HeaderStrategy {
	if headerName == "" {
		headerName = DefaultTenantHeader
	}
	return &HeaderStrategy{HeaderName: headerName}
}

// Resolve returns the configured header value verbatim.
func (s *HeaderStrategy) Resolve(req *http.Request) (string, error) {
	return req.Header.Get(s.HeaderName), nil
}

// HostStrategy extracts the tenant identifier from the request hostname
// using a regular expression with exactly one capture group, e.g.
// `^([^.]+)` captures "acme" from "acme.saas.com".
//
// A pattern without a capture group never matches; that is a permanent
// configuration condition, not an error.
type HostStrategy struct {
	// Pattern is matched against the hostname with the port stripped.
	Pattern *regexp.Regexp
}

// NewHostStrategy creates a host strategy for the given pattern.
func NewHostStrategy(pattern *regexp.Regexp) *HostStrategy {
	return &HostStrategy{Pattern: pattern}
}

// Resolve returns the first capture group of the pattern applied to the hostname.
func (s *HostStrategy) Resolve(req *http.Request) (string, error) {
	if s.Pattern == nil || s.Pattern.NumSubexp() < 1 {
		return "", nil
	}

	host := req.Host
	if host == "" {
		host = req.URL.Host
	}
	if host == "" {
		return "", nil
	}

	// Remove port if present. SplitHostPort also unbrackets IPv6
	// literals; a bracketed literal without a port is unbracketed by hand.
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	} else {
		host = strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
	}

	m := s.Pattern.FindStringSubmatch(host)
	if len(m) < 2 {
		return "", nil
	}
	return m[1], nil
}

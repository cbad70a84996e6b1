package tenantkit

import (
	"context"
	"net/http"
	"strings"
)

// DefaultPathPosition is the path segment examined by PathStrategy when no
// position is configured.
const DefaultPathPosition = 1

type originalPathContextKey struct{}

// OriginalPath returns the request path as it was before a PathStrategy
// rebase removed the tenant segment. Returns "", false when no rebase
// happened for this request.
func OriginalPath(ctx context.Context) (string, bool) {
	p, ok := ctx.Value(originalPathContextKey{}).(string)
	return p, ok
}

// PathStrategy extracts the tenant identifier from a URL path segment at a
// 1-based position. Position 1 extracts "acme" from /acme/api/resources.
//
// With RebasePath enabled the middleware hands downstream handlers a view
// of the request with the matched segment removed, so routes can be
// defined without the tenant prefix. The pre-rebase path stays available
// through OriginalPath.
type PathStrategy struct {
	// Position is the 1-based position of the tenant segment; empty
	// segments are discarded before counting. A position that never
	// exists in incoming paths simply never matches.
	Position int

	// RebasePath removes the matched segment from the path seen by
	// downstream handlers.
	RebasePath bool
}

// NewPathStrategy creates a path strategy, defaulting to DefaultPathPosition.
func NewPathStrategy(position int) *PathStrategy {
	if position <= 0 {
		position = DefaultPathPosition
	}
	return &PathStrategy{Position: position}
}

// NewRebasingPathStrategy creates a path strategy that rebases the request
// path after a match.
func NewRebasingPathStrategy(position int) *PathStrategy {
	s := NewPathStrategy(position)
	s.RebasePath = true
	return s
}

// Resolve returns the path segment at the configured position.
func (s *PathStrategy) Resolve(req *http.Request) (string, error) {
	if s.Position < 1 {
		return "", nil
	}
	segs := splitPath(req.URL.Path)
	if s.Position > len(segs) {
		return "", nil
	}
	return segs[s.Position-1], nil
}

// Rebase returns a shallow clone of the request whose path and request URI
// no longer contain the matched tenant segment. The original request is
// never mutated. A request that already carries an original-path marker is
// returned unchanged, so a strategy reused across nested mounts rewrites
// at most once.
func (s *PathStrategy) Rebase(r *http.Request, identifier string) *http.Request {
	if !s.RebasePath || identifier == "" {
		return r
	}
	if _, done := OriginalPath(r.Context()); done {
		return r
	}

	segs := splitPath(r.URL.Path)
	if s.Position < 1 || s.Position > len(segs) || segs[s.Position-1] != identifier {
		return r
	}

	rest := make([]string, 0, len(segs)-1)
	rest = append(rest, segs[:s.Position-1]...)
	rest = append(rest, segs[s.Position:]...)

	ctx := context.WithValue(r.Context(), originalPathContextKey{}, r.URL.Path)
	r2 := r.Clone(ctx)
	r2.URL.Path = "/" + strings.Join(rest, "/")
	r2.URL.RawPath = ""
	r2.RequestURI = r2.URL.RequestURI()
	return r2
}

// splitPath splits a URL path on "/" discarding empty segments.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	segs := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			segs = append(segs, p)
		}
	}
	return segs
}

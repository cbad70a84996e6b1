package tenantkit

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/lestrrat-go/jwx/v2/jwt"
)

// PayloadFunc obtains the decoded token payload for a request. Returning a
// nil map without an error means no payload was present; an error is
// treated as a strategy failure by the middleware.
type PayloadFunc func(r *http.Request) (map[string]any, error)

// ClaimStrategy extracts the tenant identifier from a claim inside an
// authentication token payload. ClaimPath is dot-delimited, so
// "app_metadata.tenant_id" walks payload["app_metadata"]["tenant_id"].
//
// The default payload source is BearerPayload, which decodes the token
// WITHOUT verifying its signature. Only use the default behind an upstream
// authenticator that has already verified the token; otherwise supply a
// PayloadFunc backed by a verifying parser.
type ClaimStrategy struct {
	// ClaimPath is the dot-delimited path of the claim holding the identifier.
	ClaimPath string

	// Payload obtains the decoded token payload.
	Payload PayloadFunc
}

// NewClaimStrategy creates a claim strategy reading the payload from the
// Authorization header via BearerPayload.
func NewClaimStrategy(claimPath string) *ClaimStrategy {
	return NewClaimStrategyWithPayload(claimPath, BearerPayload)
}

// NewClaimStrategyWithPayload creates a claim strategy with a custom
// payload source.
func NewClaimStrategyWithPayload(claimPath string, payload PayloadFunc) *ClaimStrategy {
	return &ClaimStrategy{ClaimPath: claimPath, Payload: payload}
}

// Resolve walks the claim path through the token payload. A missing claim,
// a non-object intermediate value or an absent payload yields no match.
func (s *ClaimStrategy) Resolve(req *http.Request) (string, error) {
	if s.ClaimPath == "" || s.Payload == nil {
		return "", nil
	}

	payload, err := s.Payload(req)
	if err != nil {
		return "", err
	}
	if payload == nil {
		return "", nil
	}

	var current any = payload
	for _, seg := range strings.Split(s.ClaimPath, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return "", nil
		}
		current, ok = obj[seg]
		if !ok || current == nil {
			return "", nil
		}
	}

	if str, ok := current.(string); ok {
		return str, nil
	}
	return fmt.Sprint(current), nil
}

// BearerPayload decodes the payload of a "Bearer <token>" Authorization
// header as a JWT claim set. The signature is NOT verified and temporal
// claims are NOT validated; malformed tokens yield a nil payload rather
// than an error, matching the silent-degrade behavior of the middleware.
func BearerPayload(r *http.Request) (map[string]any, error) {
	const scheme = "bearer "

	authz := r.Header.Get("Authorization")
	if len(authz) <= len(scheme) || !strings.EqualFold(authz[:len(scheme)], scheme) {
		return nil, nil
	}
	raw := strings.TrimSpace(authz[len(scheme):])

	tok, err := jwt.ParseInsecure([]byte(raw))
	if err != nil {
		return nil, nil
	}

	payload := make(map[string]any, len(tok.PrivateClaims())+4)
	for k, v := range tok.PrivateClaims() {
		payload[k] = v
	}
	for _, k := range []string{jwt.IssuerKey, jwt.SubjectKey, jwt.AudienceKey, jwt.JwtIDKey} {
		if v, ok := tok.Get(k); ok {
			payload[k] = v
		}
	}
	return payload, nil
}

package token

import (
	"encoding/json"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the structured content of a token. Timestamps are Unix seconds;
// a zero ExpiresAt means the token never expires, and an empty ID means the
// token carries no jti and cannot be individually revoked.
//
// A Claims value is never mutated after construction; derive a new value
// (via New) instead of editing one in place.
type Claims struct {
	// Subject identifies the principal the token represents.
	Subject string

	// Issuer and Audience are optional provenance strings.
	Issuer   string
	Audience string

	// IssuedAt, NotBefore, and ExpiresAt are Unix seconds.
	// ExpiresAt == 0 means the token never expires.
	IssuedAt  int64
	NotBefore int64
	ExpiresAt int64

	// ID is the jti claim, the key used for per-token revocation.
	ID string

	// Scopes are "<resource>/<action>" permission tags, treated as a set.
	Scopes []string

	// Meta carries application-defined data, opaque to this package.
	Meta map[string]any
}

// HasScope reports whether the claims grant the exact scope string.
func (c Claims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// Expires reports whether the token has an expiry at all.
func (c Claims) Expires() bool {
	return c.ExpiresAt != 0
}

// toMap flattens the claims into a JWT payload map. Absent fields are
// omitted entirely, never emitted as null or zero values.
func (c Claims) toMap() jwt.MapClaims {
	m := jwt.MapClaims{}
	if c.Subject != "" {
		m["sub"] = c.Subject
	}
	if c.Issuer != "" {
		m["iss"] = c.Issuer
	}
	if c.Audience != "" {
		m["aud"] = c.Audience
	}
	if c.IssuedAt != 0 {
		m["iat"] = c.IssuedAt
	}
	if c.NotBefore != 0 {
		m["nbf"] = c.NotBefore
	}
	if c.ExpiresAt != 0 {
		m["exp"] = c.ExpiresAt
	}
	if c.ID != "" {
		m["jti"] = c.ID
	}
	if len(c.Scopes) > 0 {
		m["scopes"] = c.Scopes
	}
	if len(c.Meta) > 0 {
		m["meta"] = c.Meta
	}
	return m
}

// claimsFromMap rehydrates Claims from a decoded JWT payload. Fields absent
// from the map stay absent (zero) in the result, so a sign/verify round trip
// preserves the original shape.
func claimsFromMap(m jwt.MapClaims) Claims {
	var c Claims
	c.Subject = stringClaim(m["sub"])
	c.Issuer = stringClaim(m["iss"])
	c.Audience = stringClaim(m["aud"])
	c.IssuedAt = intClaim(m["iat"])
	c.NotBefore = intClaim(m["nbf"])
	c.ExpiresAt = intClaim(m["exp"])
	c.ID = stringClaim(m["jti"])
	if raw, ok := m["scopes"].([]any); ok {
		scopes := make([]string, 0, len(raw))
		for _, s := range raw {
			if str, ok := s.(string); ok {
				scopes = append(scopes, str)
			}
		}
		c.Scopes = scopes
	}
	if meta, ok := m["meta"].(map[string]any); ok {
		c.Meta = meta
	}
	return c
}

// stringClaim coerces a claim value to string. Numeric subjects are
// accepted (some issuers emit integer sub claims).
func stringClaim(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatInt(int64(val), 10)
	case json.Number:
		return val.String()
	default:
		return ""
	}
}

// intClaim coerces a numeric claim to Unix seconds. Returns 0 for absent
// or non-numeric values.
func intClaim(v any) int64 {
	switch val := v.(type) {
	case float64:
		return int64(val)
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return 0
		}
		return n
	case int64:
		return val
	case int:
		return int64(val)
	default:
		return 0
	}
}

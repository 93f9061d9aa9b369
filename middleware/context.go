package middleware

import (
	"context"

	"github.com/nsweeting/authex/token"
)

// Context keys for request-scoped auth values.
type contextKey int

const (
	claimsKey contextKey = iota
	resourceKey
	matchedScopeKey
)

// WithClaims returns a context carrying the verified claims.
func WithClaims(ctx context.Context, c token.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// ClaimsFromContext retrieves the verified claims, if any.
func ClaimsFromContext(ctx context.Context) (token.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(token.Claims)
	return c, ok
}

// CurrentSubject returns the verified token's subject, or "" when the
// request is unauthenticated.
func CurrentSubject(ctx context.Context) string {
	c, _ := ClaimsFromContext(ctx)
	return c.Subject
}

// CurrentScopes returns the verified token's granted scopes.
func CurrentScopes(ctx context.Context) []string {
	c, _ := ClaimsFromContext(ctx)
	return c.Scopes
}

// WithResource returns a context carrying the deserialized resource.
func WithResource(ctx context.Context, resource any) context.Context {
	return context.WithValue(ctx, resourceKey, resource)
}

// ResourceFromContext retrieves the resource produced by the configured
// serializer. Returns nil if resource loading was not enabled.
func ResourceFromContext(ctx context.Context) any {
	return ctx.Value(resourceKey)
}

// withMatchedScope records which scope satisfied a permit check.
func withMatchedScope(ctx context.Context, scope string) context.Context {
	return context.WithValue(ctx, matchedScopeKey, scope)
}

// MatchedScopeFromContext returns the scope that satisfied the most recent
// permit check, for auditing. Returns "" if no check has passed.
func MatchedScopeFromContext(ctx context.Context) string {
	s, _ := ctx.Value(matchedScopeKey).(string)
	return s
}

package token

import (
	"time"

	"github.com/google/uuid"
)

// nbfGrace is subtracted from the issue time to produce not_before,
// tolerating same-second issuance-then-verification and small clock skew.
const nbfGrace = time.Second

// Defaults are the configured fallbacks merged under caller options during
// claim construction. An explicit option always wins over a default.
type Defaults struct {
	// Issuer and Audience are used when the caller supplies none.
	Issuer   string
	Audience string

	// Scopes are granted when the caller supplies none.
	Scopes []string

	// TTL is the default time-to-live. Zero means tokens built without an
	// explicit TTL never expire; an explicit WithTTL(0) still sets an
	// expiry equal to the issue time.
	TTL time.Duration

	// NewID generates the jti for tokens that don't name one explicitly.
	// Nil falls back to random UUIDs. Set DisableID to omit the jti
	// entirely.
	NewID     func() string
	DisableID bool

	// Clock supplies the issue time. Nil falls back to the system clock.
	Clock Clock
}

type options struct {
	subject  string
	issuer   *string
	audience *string
	scopes   []string
	meta     map[string]any
	tokenID  *string
	noID     bool
	ttl      *time.Duration
	infinite bool
	now      *time.Time
}

// Option customizes a single claim construction.
type Option func(*options)

// WithSubject sets the principal the token represents.
func WithSubject(sub string) Option {
	return func(o *options) { o.subject = sub }
}

// WithIssuer overrides the default issuer.
func WithIssuer(iss string) Option {
	return func(o *options) { s := iss; o.issuer = &s }
}

// WithAudience overrides the default audience.
func WithAudience(aud string) Option {
	return func(o *options) { s := aud; o.audience = &s }
}

// WithScopes overrides the default scope grant.
func WithScopes(scopes ...string) Option {
	return func(o *options) { o.scopes = append([]string{}, scopes...) }
}

// WithMeta attaches application-defined data to the token.
func WithMeta(meta map[string]any) Option {
	return func(o *options) { o.meta = meta }
}

// WithTokenID pins the jti to a literal value instead of generating one.
func WithTokenID(id string) Option {
	return func(o *options) { s := id; o.tokenID = &s }
}

// WithoutTokenID omits the jti entirely, opting the token out of
// per-token revocation tracking.
func WithoutTokenID() Option {
	return func(o *options) { o.noID = true }
}

// WithTTL sets the time-to-live explicitly. A negative TTL produces an
// already-expired token, which is intentional (used to exercise expiry
// handling); WithTTL(0) sets the expiry to the issue time.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) { d := ttl; o.ttl = &d }
}

// WithInfiniteTTL omits the expiry claim so the token never expires,
// regardless of any configured default TTL.
func WithInfiniteTTL() Option {
	return func(o *options) { o.infinite = true }
}

// WithTime overrides the issue time used for iat/nbf/exp computation.
func WithTime(t time.Time) Option {
	return func(o *options) { tt := t; o.now = &tt }
}

// New builds Claims with zero defaults. Construction cannot fail: every
// option combination yields a fully populated Claims value.
func New(opts ...Option) Claims {
	return NewWithDefaults(Defaults{}, opts...)
}

// NewWithDefaults builds Claims by merging the caller's options over the
// configured defaults. not_before is set one second before the issue time.
func NewWithDefaults(d Defaults, opts ...Option) Claims {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	now := resolveTime(d, o)
	c := Claims{
		Subject:   o.subject,
		Issuer:    d.Issuer,
		Audience:  d.Audience,
		Scopes:    d.Scopes,
		Meta:      o.meta,
		IssuedAt:  now.Unix(),
		NotBefore: now.Add(-nbfGrace).Unix(),
	}
	if o.issuer != nil {
		c.Issuer = *o.issuer
	}
	if o.audience != nil {
		c.Audience = *o.audience
	}
	if o.scopes != nil {
		c.Scopes = o.scopes
	}
	c.ExpiresAt = resolveExpiry(now, d, o)
	c.ID = resolveID(d, o)
	return c
}

func resolveTime(d Defaults, o options) time.Time {
	if o.now != nil {
		return *o.now
	}
	clock := d.Clock
	if clock == nil {
		clock = SystemClock()
	}
	return clock.Now()
}

func resolveExpiry(now time.Time, d Defaults, o options) int64 {
	switch {
	case o.infinite:
		return 0
	case o.ttl != nil:
		return now.Add(*o.ttl).Unix()
	case d.TTL != 0:
		return now.Add(d.TTL).Unix()
	default:
		return 0
	}
}

func resolveID(d Defaults, o options) string {
	switch {
	case o.noID:
		return ""
	case o.tokenID != nil:
		return *o.tokenID
	case d.DisableID:
		return ""
	case d.NewID != nil:
		return d.NewID()
	default:
		return uuid.NewString()
	}
}

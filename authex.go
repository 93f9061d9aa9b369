package authex

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/nsweeting/authex/revocation"
	"github.com/nsweeting/authex/token"
)

// Config describes a token-issuing identity: the signing material, claim
// defaults, and revocation stores. It is read once by New (or SetConfig)
// into an immutable snapshot; mutating a Config after passing it in has
// no effect.
type Config struct {
	// Secret is the HMAC key. Required; 32 bytes or more recommended.
	Secret []byte

	// Algorithm selects the HMAC variant. Empty defaults to HS256.
	Algorithm token.Algorithm

	// DefaultIssuer, DefaultAudience, and DefaultScopes are merged under
	// explicit token options; an explicit option always wins.
	DefaultIssuer   string
	DefaultAudience string
	DefaultScopes   []string

	// DefaultTTL is applied to tokens built without an explicit TTL.
	// Zero means such tokens never expire.
	DefaultTTL time.Duration

	// NewTokenID generates jti values; nil uses random UUIDs.
	// DisableTokenID omits the jti entirely.
	NewTokenID     func() string
	DisableTokenID bool

	// Blacklist (keyed by jti) and Banlist (keyed by subject) enable the
	// revocation stages of verification. Nil disables a stage.
	Blacklist revocation.Store
	Banlist   revocation.Store

	// Clock overrides the time source. Nil uses the system clock.
	Clock token.Clock

	// Serializer converts application resources to and from Claims for
	// ForToken/FromToken. Optional.
	Serializer Serializer
}

// snapshot is the compiled form of a Config. Swapped atomically so
// concurrent readers never observe a partially applied configuration.
type snapshot struct {
	config   Config
	defaults token.Defaults
	signer   *token.Signer
	verifier *token.Verifier
}

// Auth is a configured token-issuing identity. All methods are safe for
// concurrent use; SetConfig swaps the whole configuration atomically.
type Auth struct {
	current atomic.Pointer[snapshot]
}

// New validates cfg and returns an Auth. Configuration problems (empty
// secret, unsupported algorithm) fail here, never at sign or verify time.
func New(cfg Config) (*Auth, error) {
	snap, err := compile(cfg)
	if err != nil {
		return nil, err
	}
	a := &Auth{}
	a.current.Store(snap)
	return a, nil
}

// SetConfig atomically replaces the configuration, e.g. for secret
// rotation. In-flight calls finish against the snapshot they started with.
func (a *Auth) SetConfig(cfg Config) error {
	snap, err := compile(cfg)
	if err != nil {
		return err
	}
	a.current.Store(snap)
	return nil
}

// Config returns the active configuration.
func (a *Auth) Config() Config {
	return a.current.Load().config
}

func compile(cfg Config) (*snapshot, error) {
	if cfg.Algorithm == "" {
		cfg.Algorithm = token.HS256
	}
	signer, err := token.NewSigner(cfg.Secret, cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	opts := []token.VerifierOption{}
	if cfg.Clock != nil {
		opts = append(opts, token.WithClock(cfg.Clock))
	}
	if cfg.Blacklist != nil {
		opts = append(opts, token.WithBlacklist(cfg.Blacklist))
	}
	if cfg.Banlist != nil {
		opts = append(opts, token.WithBanlist(cfg.Banlist))
	}
	verifier, err := token.NewVerifier(cfg.Secret, cfg.Algorithm, opts...)
	if err != nil {
		return nil, err
	}
	return &snapshot{
		config: cfg,
		defaults: token.Defaults{
			Issuer:    cfg.DefaultIssuer,
			Audience:  cfg.DefaultAudience,
			Scopes:    cfg.DefaultScopes,
			TTL:       cfg.DefaultTTL,
			NewID:     cfg.NewTokenID,
			DisableID: cfg.DisableTokenID,
			Clock:     cfg.Clock,
		},
		signer:   signer,
		verifier: verifier,
	}, nil
}

// Token builds Claims from the configured defaults and the given options.
func (a *Auth) Token(opts ...token.Option) token.Claims {
	return token.NewWithDefaults(a.current.Load().defaults, opts...)
}

// Sign produces the compact signed token for the claims.
func (a *Auth) Sign(c token.Claims) (string, error) {
	return a.current.Load().signer.Sign(c)
}

// Verify runs the full verification pipeline on a compact token.
func (a *Auth) Verify(ctx context.Context, compact string) (token.Claims, error) {
	return a.current.Load().verifier.Verify(ctx, compact)
}

// ForToken converts a resource to Claims via the configured Serializer and
// signs them. Serializer errors pass through unwrapped.
func (a *Auth) ForToken(resource any) (string, error) {
	snap := a.current.Load()
	if snap.config.Serializer == nil {
		return "", ErrNoSerializer
	}
	c, err := snap.config.Serializer.ToClaims(resource)
	if err != nil {
		return "", err
	}
	return snap.signer.Sign(c)
}

// FromToken verifies a compact token and converts the claims back to a
// resource via the configured Serializer.
func (a *Auth) FromToken(ctx context.Context, compact string) (any, error) {
	snap := a.current.Load()
	if snap.config.Serializer == nil {
		return nil, ErrNoSerializer
	}
	c, err := snap.verifier.Verify(ctx, compact)
	if err != nil {
		return nil, err
	}
	return snap.config.Serializer.FromClaims(c)
}

// Revoke blacklists a single token by its jti.
func (a *Auth) Revoke(ctx context.Context, tokenID string) error {
	return storeInsert(ctx, a.Config().Blacklist, ErrNoBlacklist, tokenID)
}

// Unrevoke removes a jti from the blacklist.
func (a *Auth) Unrevoke(ctx context.Context, tokenID string) error {
	return storeDelete(ctx, a.Config().Blacklist, ErrNoBlacklist, tokenID)
}

// Revoked reports whether a jti is blacklisted.
func (a *Auth) Revoked(ctx context.Context, tokenID string) (bool, error) {
	return storeExists(ctx, a.Config().Blacklist, ErrNoBlacklist, tokenID)
}

// Ban banlists every token issued for a subject.
func (a *Auth) Ban(ctx context.Context, subject string) error {
	return storeInsert(ctx, a.Config().Banlist, ErrNoBanlist, subject)
}

// Unban removes a subject from the banlist.
func (a *Auth) Unban(ctx context.Context, subject string) error {
	return storeDelete(ctx, a.Config().Banlist, ErrNoBanlist, subject)
}

// Banned reports whether a subject is banlisted.
func (a *Auth) Banned(ctx context.Context, subject string) (bool, error) {
	return storeExists(ctx, a.Config().Banlist, ErrNoBanlist, subject)
}

func storeInsert(ctx context.Context, s revocation.Store, disabled error, key string) error {
	if s == nil {
		return disabled
	}
	return s.Insert(ctx, key)
}

func storeDelete(ctx context.Context, s revocation.Store, disabled error, key string) error {
	if s == nil {
		return disabled
	}
	return s.Delete(ctx, key)
}

func storeExists(ctx context.Context, s revocation.Store, disabled error, key string) (bool, error) {
	if s == nil {
		return false, disabled
	}
	return s.Exists(ctx, key)
}

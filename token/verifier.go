package token

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nsweeting/authex/revocation"
)

// Verifier checks compact tokens against tampering, the time window, and
// the configured revocation stores. It is immutable once built and safe
// for concurrent use; each Verify call is independent.
type Verifier struct {
	secret    []byte
	alg       Algorithm
	clock     Clock
	parser    *jwt.Parser
	blacklist revocation.Store
	banlist   revocation.Store
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier)

// WithClock overrides the clock used for the time-window stages.
func WithClock(c Clock) VerifierOption {
	return func(v *Verifier) { v.clock = c }
}

// WithBlacklist enables the per-token revocation stage, keyed by jti.
// A nil store leaves the stage disabled.
func WithBlacklist(s revocation.Store) VerifierOption {
	return func(v *Verifier) { v.blacklist = s }
}

// WithBanlist enables the per-subject revocation stage, keyed by sub.
// A nil store leaves the stage disabled.
func WithBanlist(s revocation.Store) VerifierOption {
	return func(v *Verifier) { v.banlist = s }
}

// NewVerifier creates a Verifier for the given secret and algorithm. Like
// NewSigner, it rejects an empty secret or unsupported algorithm at
// construction time.
func NewVerifier(secret []byte, alg Algorithm, opts ...VerifierOption) (*Verifier, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	if !alg.Valid() {
		return nil, ErrUnsupportedAlgorithm
	}
	v := &Verifier{
		secret: secret,
		alg:    alg,
		clock:  SystemClock(),
		// The allowed-method set is pinned to the single configured
		// algorithm so a token cannot force a downgrade. Claim
		// validation is disabled here; the pipeline applies its own
		// strict time-window semantics.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{string(alg)}),
			jwt.WithoutClaimsValidation(),
		),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Verify runs the ordered verification pipeline: signature, not-before,
// expiry, blacklist (by jti), banlist (by subject). Each stage either
// passes or fails immediately with one of the package's verification
// errors. On success it returns the Claims exactly as they were signed:
// fields absent before signing remain absent.
func (v *Verifier) Verify(ctx context.Context, compact string) (Claims, error) {
	tok, err := v.parser.Parse(compact, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	m, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrBadToken
	}
	c := claimsFromMap(m)

	now := v.clock.Now().Unix()
	if c.NotBefore != 0 && now <= c.NotBefore {
		return Claims{}, ErrNotReady
	}
	if c.ExpiresAt != 0 && now >= c.ExpiresAt {
		return Claims{}, ErrExpired
	}

	if v.blacklist != nil {
		if err := checkStore(ctx, v.blacklist, c.ID,
			ErrTokenIDMissing, ErrBlacklisted, ErrBlacklistCheck); err != nil {
			return Claims{}, err
		}
	}
	if v.banlist != nil {
		if err := checkStore(ctx, v.banlist, c.Subject,
			ErrSubjectMissing, ErrBanned, ErrBanlistCheck); err != nil {
			return Claims{}, err
		}
	}
	return c, nil
}

// checkStore runs one keyed revocation stage. A missing key is itself a
// failure: an unrevokable token cannot be meaningfully checked. Store
// faults fail closed.
func checkStore(ctx context.Context, store revocation.Store, key string, missing, revoked, fault error) error {
	if key == "" {
		return missing
	}
	found, err := store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: %v", fault, err)
	}
	if found {
		return revoked
	}
	return nil
}

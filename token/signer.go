package token

import (
	"github.com/golang-jwt/jwt/v5"
)

// Algorithm identifies the HMAC signing algorithm for a token.
type Algorithm string

// Supported signing algorithms.
const (
	HS256 Algorithm = "HS256"
	HS384 Algorithm = "HS384"
	HS512 Algorithm = "HS512"
)

// method returns the golang-jwt signing method, or nil for an algorithm
// outside the supported set.
func (a Algorithm) method() jwt.SigningMethod {
	switch a {
	case HS256:
		return jwt.SigningMethodHS256
	case HS384:
		return jwt.SigningMethodHS384
	case HS512:
		return jwt.SigningMethodHS512
	default:
		return nil
	}
}

// Valid reports whether the algorithm is in the supported set.
func (a Algorithm) Valid() bool {
	return a.method() != nil
}

// Signer binds a secret and algorithm into a capability that turns Claims
// into a compact token. A Signer is immutable once built and safe for
// concurrent use.
type Signer struct {
	secret []byte
	alg    Algorithm
	method jwt.SigningMethod
}

// NewSigner creates a Signer. It fails on an empty secret (a token must
// never be signable with an empty key) or an unsupported algorithm, so
// misconfiguration surfaces at construction time rather than at the first
// Sign call.
func NewSigner(secret []byte, alg Algorithm) (*Signer, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	method := alg.method()
	if method == nil {
		return nil, ErrUnsupportedAlgorithm
	}
	return &Signer{secret: secret, alg: alg, method: method}, nil
}

// Algorithm returns the configured signing algorithm.
func (s *Signer) Algorithm() Algorithm {
	return s.alg
}

// Sign serializes the claims (absent fields omitted, never emitted as
// null) and produces the compact header.payload.signature token.
// Deterministic for identical claims, secret, and algorithm.
func (s *Signer) Sign(c Claims) (string, error) {
	return jwt.NewWithClaims(s.method, c.toMap()).SignedString(s.secret)
}

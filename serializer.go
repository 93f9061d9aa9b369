package authex

import "github.com/nsweeting/authex/token"

// Serializer converts between application resources (a user record, an
// API client, ...) and Claims. Implementations decide which claims a
// resource maps to and how to reject claims that no longer correspond to
// a valid resource.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: domain rejections (e.g. "resource missing id") are returned
//   as-is; ForToken/FromToken never wrap or translate them.
type Serializer interface {
	// ToClaims builds the Claims a token should carry for the resource.
	ToClaims(resource any) (token.Claims, error)

	// FromClaims reconstructs the resource a verified token represents.
	FromClaims(c token.Claims) (any, error)
}

// Package revocation provides deny-list stores for token revocation.
//
// A Store holds opaque string keys (a token's jti for blacklists, its
// subject for banlists) and answers presence queries during verification.
// An in-memory implementation covers single-process use; the Redis
// implementation shares revocation state across processes.
package revocation

package revocation

import "context"

// Store is a deny-list keyed by opaque strings. The verifier treats a nil
// Store as "stage disabled": it never calls the store and never fails the
// stage.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: methods should honor cancellation/deadlines.
// - Errors: Exists must return an error on any ambiguity rather than
//   guessing; the verifier treats store faults as revoked (fail closed).
type Store interface {
	// Exists reports whether the key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// Insert adds the key. Idempotent.
	Insert(ctx context.Context, key string) error

	// Delete removes the key. Idempotent - no error on miss.
	Delete(ctx context.Context, key string) error
}

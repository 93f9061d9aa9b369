// Package authex is an embeddable JWT toolkit: it issues signed compact
// tokens carrying standard claims plus "<resource>/<action>" scopes,
// verifies them against tampering, time windows, and revocation lists,
// and decides scope-based authorization for HTTP requests.
//
// An Auth value binds a secret, algorithm, claim defaults, and optional
// revocation stores into a token-issuing identity:
//
//	auth, err := authex.New(authex.Config{
//		Secret:        []byte("at-least-thirty-two-bytes-long!!"),
//		DefaultScopes: []string{"user/read"},
//		DefaultTTL:    time.Hour,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	compact, err := auth.Sign(auth.Token(token.WithSubject("user-1")))
//	claims, err := auth.Verify(ctx, compact)
//
// The subpackages hold the moving parts: token (claims, signer, verifier),
// revocation (deny-list stores), scope (authorization decisions), and
// middleware (net/http integration).
package authex

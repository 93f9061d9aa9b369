package authex_test

import (
	"context"
	"fmt"
	"time"

	"github.com/nsweeting/authex"
	"github.com/nsweeting/authex/token"
)

func ExampleNew() {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	auth, err := authex.New(authex.Config{
		Secret:        []byte("at-least-thirty-two-bytes-long!!"),
		DefaultIssuer: "example-app",
		DefaultScopes: []string{"user/read"},
		DefaultTTL:    time.Hour,
		Clock:         token.FixedClock(issued),
	})
	if err != nil {
		fmt.Println("config error:", err)
		return
	}

	compact, _ := auth.Sign(auth.Token(token.WithSubject("user-1")))
	claims, err := auth.Verify(context.Background(), compact)
	if err != nil {
		fmt.Println("rejected:", token.Reason(err))
		return
	}

	fmt.Println("subject:", claims.Subject)
	fmt.Println("issuer:", claims.Issuer)
	// Output:
	// subject: user-1
	// issuer: example-app
}

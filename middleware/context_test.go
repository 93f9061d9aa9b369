package middleware

import (
	"context"
	"testing"

	"github.com/nsweeting/authex/token"
)

func TestClaimsFromContext(t *testing.T) {
	ctx := context.Background()

	if _, ok := ClaimsFromContext(ctx); ok {
		t.Error("empty context should carry no claims")
	}
	if CurrentSubject(ctx) != "" {
		t.Error("CurrentSubject on empty context should be empty")
	}
	if CurrentScopes(ctx) != nil {
		t.Error("CurrentScopes on empty context should be nil")
	}

	c := token.Claims{Subject: "user-1", Scopes: []string{"admin/read"}}
	ctx = WithClaims(ctx, c)

	got, ok := ClaimsFromContext(ctx)
	if !ok || got.Subject != "user-1" {
		t.Errorf("ClaimsFromContext() = (%+v, %v), want stored claims", got, ok)
	}
	if CurrentSubject(ctx) != "user-1" {
		t.Errorf("CurrentSubject() = %q, want user-1", CurrentSubject(ctx))
	}
	if len(CurrentScopes(ctx)) != 1 || CurrentScopes(ctx)[0] != "admin/read" {
		t.Errorf("CurrentScopes() = %v, want [admin/read]", CurrentScopes(ctx))
	}
}

func TestResourceFromContext(t *testing.T) {
	ctx := context.Background()
	if ResourceFromContext(ctx) != nil {
		t.Error("empty context should carry no resource")
	}
	ctx = WithResource(ctx, "user-record")
	if ResourceFromContext(ctx) != "user-record" {
		t.Errorf("ResourceFromContext() = %v, want user-record", ResourceFromContext(ctx))
	}
}

func TestMatchedScopeFromContext(t *testing.T) {
	ctx := context.Background()
	if MatchedScopeFromContext(ctx) != "" {
		t.Error("empty context should carry no matched scope")
	}
	ctx = withMatchedScope(ctx, "admin/read")
	if MatchedScopeFromContext(ctx) != "admin/read" {
		t.Errorf("MatchedScopeFromContext() = %q, want admin/read", MatchedScopeFromContext(ctx))
	}
}

package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, err := issuer.Generate(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.PlayerID != 42 || claims.Subject != "42" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestTokenRejections(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, _ := issuer.Generate(42)

	if _, err := NewTokenIssuer("other", time.Hour).Parse(token); err == nil {
		t.Fatal("expected a wrong secret to fail")
	}

	expired := NewTokenIssuer("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _ := expired.Generate(42)
	if _, err := issuer.Parse(old); err == nil {
		t.Fatal("expected an expired token to fail")
	}

	if _, err := issuer.Parse("not-a-token"); err == nil {
		t.Fatal("expected garbage to fail")
	}
}

func TestSafeSlice(t *testing.T) {
	s := []int{1, 2, 3}
	if got := SafeSlice(s, 2); len(got) != 2 {
		t.Fatalf("expected 2, got %v", got)
	}
	if got := SafeSlice(s, 10); len(got) != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
	if got := SafeSlice(s, 0); len(got) != 3 {
		t.Fatalf("expected all, got %v", got)
	}
}

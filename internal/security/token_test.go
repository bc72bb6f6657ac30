package security

import (
	"errors"
	"testing"
	"time"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("expected subject user-1, got %q", claims.Subject)
	}
	if claims.Email != "alice@example.com" {
		t.Fatalf("unexpected email claim: %q", claims.Email)
	}
}

func TestTokenService_DefaultTTL(t *testing.T) {
	svc := NewTokenService("secret", 0)
	if svc.TTL() != DefaultTokenTTL {
		t.Fatalf("expected 24h default TTL, got %v", svc.TTL())
	}

	// a negative ttl is preserved so expired tokens can be minted
	svc = NewTokenService("secret", -time.Hour)
	if svc.TTL() != -time.Hour {
		t.Fatalf("expected negative TTL to be kept, got %v", svc.TTL())
	}
}

func TestTokenService_ExpiredToken(t *testing.T) {
	svc := NewTokenService("secret", -time.Hour)

	token, err := svc.Issue("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := svc.Verify(token); err == nil {
		t.Fatalf("expected expired token to fail verification")
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret", time.Hour)
	verifier := NewTokenService("other", time.Hour)

	token, err := issuer.Issue("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := verifier.Verify(token); err == nil {
		t.Fatalf("expected wrong-key verification to fail")
	}
}

func TestTokenService_MalformedToken(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	if _, err := svc.Verify("not-a-token"); err == nil {
		t.Fatalf("expected malformed token to fail verification")
	}
}

func TestTokenService_MissingSecret(t *testing.T) {
	svc := NewTokenService("", time.Hour)
	if _, err := svc.Issue("user-1", "alice@example.com"); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

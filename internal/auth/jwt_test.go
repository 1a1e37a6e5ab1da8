package auth

import (
	"errors"
	"testing"
	"time"
)

func newTestService() *TokenService {
	return NewTokenService(Config{
		SigningKey: "test-signing-key",
		Issuer:     "https://api.tollgrid.test",
		Audience:   "tollgrid-api",
	})
}

func TestIssueAndValidateToken(t *testing.T) {
	svc := newTestService()

	token, expiresAt, err := svc.IssueToken("ops@tollgrid")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if remaining := time.Until(expiresAt); remaining < 55*time.Minute {
		t.Errorf("expected expiry about an hour out, got %v", remaining)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Operator != "ops@tollgrid" {
		t.Errorf("expected operator ops@tollgrid, got %q", claims.Operator)
	}
	if claims.Subject != "ops@tollgrid" {
		t.Errorf("expected subject ops@tollgrid, got %q", claims.Subject)
	}
}

func TestValidateTokenWrongKey(t *testing.T) {
	token, _, err := newTestService().IssueToken("ops@tollgrid")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	other := NewTokenService(Config{
		SigningKey: "a-different-key",
		Issuer:     "https://api.tollgrid.test",
		Audience:   "tollgrid-api",
	})
	if _, err := other.ValidateToken(token); !errors.Is(err, ErrInvalidAccessToken) {
		t.Errorf("expected ErrInvalidAccessToken, got %v", err)
	}
}

func TestValidateTokenWrongAudience(t *testing.T) {
	token, _, err := newTestService().IssueToken("ops@tollgrid")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	other := NewTokenService(Config{
		SigningKey: "test-signing-key",
		Issuer:     "https://api.tollgrid.test",
		Audience:   "some-other-api",
	})
	if _, err := other.ValidateToken(token); !errors.Is(err, ErrInvalidAccessToken) {
		t.Errorf("expected ErrInvalidAccessToken, got %v", err)
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := newTestService().ValidateToken("not.a.jwt"); !errors.Is(err, ErrInvalidAccessToken) {
		t.Errorf("expected ErrInvalidAccessToken, got %v", err)
	}
}

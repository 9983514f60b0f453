package auth

import (
	"testing"

	"spendly-api/internal/config"
)

func TestTokenRoundTrip(t *testing.T) {
	InitJWT(&config.Config{JWT: config.JWTConfig{Secret: "unit-test-secret"}})

	token, err := GenerateToken("user-123")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	userID, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("expected user-123, got %q", userID)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	InitJWT(&config.Config{JWT: config.JWTConfig{Secret: "secret-a"}})
	token, err := GenerateToken("user-123")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	InitJWT(&config.Config{JWT: config.JWTConfig{Secret: "secret-b"}})
	if _, err := ValidateToken(token); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	InitJWT(&config.Config{JWT: config.JWTConfig{Secret: "unit-test-secret"}})
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Error("expected validation to fail for malformed token")
	}
}

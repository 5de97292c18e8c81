package jwt

import (
	"testing"
	"time"

	"blood-bank-api/config"
	"blood-bank-api/internal/domain/entity"

	"github.com/google/uuid"
)

func newTestService(secret string) *JWTService {
	return NewJWTService(config.JWTConfig{Secret: secret, Expiry: 7 * 24 * time.Hour})
}

func TestGenerateAndValidateTokenCarriesIdentity(t *testing.T) {
	service := newTestService("test-secret")
	userID := uuid.New()

	token, tokenID, expiresAt, err := service.GenerateToken(userID, "donor@example.com", entity.RoleDonor)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if tokenID == "" {
		t.Fatal("expected non-empty token id")
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "donor@example.com" {
		t.Fatalf("expected email donor@example.com, got %s", claims.Email)
	}
	if claims.Role != entity.RoleDonor {
		t.Fatalf("expected role DONOR, got %s", claims.Role)
	}
	if claims.TokenID != tokenID {
		t.Fatalf("expected token id %s, got %s", tokenID, claims.TokenID)
	}

	lifetime := time.Until(expiresAt)
	if lifetime < 7*24*time.Hour-time.Minute || lifetime > 7*24*time.Hour {
		t.Fatalf("expected ~7 day lifetime, got %s", lifetime)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, _, _, err := newTestService("secret-a").GenerateToken(uuid.New(), "a@example.com", entity.RoleAdmin)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := newTestService("secret-b").ValidateToken(token); err == nil {
		t.Fatal("expected validation error for token signed with another secret")
	}
}

func TestValidateTokenRejectsExpiredToken(t *testing.T) {
	service := newTestService("test-secret")
	issued := time.Now().Add(-8 * 24 * time.Hour)
	service.now = func() time.Time { return issued }

	token, _, _, err := service.GenerateToken(uuid.New(), "h@example.com", entity.RoleHospital)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	service.now = time.Now
	if _, err := service.ValidateToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := newTestService("test-secret").ValidateToken("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

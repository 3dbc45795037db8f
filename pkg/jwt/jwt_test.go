package jwt

import (
	"testing"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.New()
	token, err := GenerateToken(userID, "staff@example.com", "Staff Member", "ADMIN", "v1")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("user_id = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "staff@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if claims.Role != "ADMIN" {
		t.Errorf("role = %q, want ADMIN", claims.Role)
	}
	if claims.TokenVersion != "v1" {
		t.Errorf("token_version = %q, want v1", claims.TokenVersion)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Error("garbage token must be rejected")
	}

	token, _ := GenerateToken(uuid.New(), "a@b.c", "A", "USER", "v1")
	if _, err := ValidateToken(token + "x"); err == nil {
		t.Error("tampered token must be rejected")
	}
}

package auth

import (
	"testing"
	"time"

	"github.com/carlosfox17/sgp-backend/internal/domain"
)

func TestGenerateAndValidateToken(t *testing.T) {
	tm := NewTokenManager("secret", "sgp")

	token, err := tm.GenerateToken("u1", "admin@sistema.com", domain.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := tm.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "admin@sistema.com" || claims.Role != domain.RoleAdmin {
		t.Fatalf("claims: %+v", claims)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret", "sgp")
	token, _ := tm.GenerateToken("u1", "a@x.com", domain.RoleEmployee, time.Hour)

	other := NewTokenManager("other-secret", "sgp")
	if _, err := other.ValidateToken(token); err == nil {
		t.Fatalf("token validated with the wrong secret")
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("secret", "sgp")
	token, _ := tm.GenerateToken("u1", "a@x.com", domain.RoleEmployee, -time.Minute)

	if _, err := tm.ValidateToken(token); err == nil {
		t.Fatalf("expired token validated")
	}
}

func TestGenerateRequiresUserID(t *testing.T) {
	tm := NewTokenManager("secret", "sgp")
	if _, err := tm.GenerateToken("", "a@x.com", domain.RoleEmployee, time.Hour); err == nil {
		t.Fatalf("expected error for empty user id")
	}
}

func TestExtractToken(t *testing.T) {
	if tok, err := ExtractToken("Bearer abc.def.ghi"); err != nil || tok != "abc.def.ghi" {
		t.Fatalf("got %q, %v", tok, err)
	}
	if _, err := ExtractToken("abc.def.ghi"); err == nil {
		t.Fatalf("expected error without Bearer prefix")
	}
	if _, err := ExtractToken(""); err == nil {
		t.Fatalf("expected error for empty header")
	}
}

package auth

import (
	"testing"
	"time"

	"github.com/spec-kit/hostel-complaints/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("round-trip-secret", 60)

	token, expiresAt, err := tm.GenerateToken("u42", domain.RoleStaff)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Errorf("expiry %v is not in the future", expiresAt)
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "u42" {
		t.Errorf("uid = %q, want u42", claims.UserID)
	}
	if claims.Role != domain.RoleStaff {
		t.Errorf("role = %q, want staff", claims.Role)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("issuer-secret", 60)
	verifier := NewTokenManager("other-secret", 60)

	token, _, err := issuer.GenerateToken("u1", domain.RoleStudent)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatal("token signed with a different secret was accepted")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	if _, err := tm.ParseToken("not-a-jwt"); err == nil {
		t.Fatal("malformed token was accepted")
	}
}

func TestPasswordHashAndCompare(t *testing.T) {
	hash, err := HashPassword("passw0rd!", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "passw0rd!" {
		t.Fatal("password stored in the clear")
	}
	if err := ComparePassword(hash, "passw0rd!"); err != nil {
		t.Errorf("ComparePassword with correct password: %v", err)
	}
	if err := ComparePassword(hash, "wrong-pass"); err == nil {
		t.Error("ComparePassword accepted a wrong password")
	}
}

package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret-key"

	token, err := GenerateToken(secret, 7)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("expected userId 7, got %d", claims.UserID)
	}
	if claims.ID == "" {
		t.Error("expected a token id")
	}
}

func TestTokensAreUnique(t *testing.T) {
	a, _ := GenerateToken("s", 1)
	b, _ := GenerateToken("s", 1)
	ca, _ := ValidateToken("s", a)
	cb, _ := ValidateToken("s", b)
	if ca.ID == cb.ID {
		t.Error("expected distinct JTIs")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _ := GenerateToken("secret1", 1)

	if _, err := ValidateToken("secret2", token); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	if _, err := ValidateToken("secret", "not-a-token"); err == nil {
		t.Error("expected error for invalid token")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	claims := Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s"))

	if _, err := ValidateToken("s", signed); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestValidateTokenWithoutUser(t *testing.T) {
	signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{}).SignedString([]byte("s"))

	if _, err := ValidateToken("s", signed); err == nil {
		t.Error("expected error for token without user id")
	}
}

func TestTokenExpiry(t *testing.T) {
	secret := "test"
	token, _ := GenerateToken(secret, 1)
	claims, _ := ValidateToken(secret, token)

	diff := time.Now().Add(TokenExpiry).Sub(claims.ExpiresAt.Time)
	if diff < -5*time.Second || diff > 5*time.Second {
		t.Errorf("token expiry too far from expected: diff=%v", diff)
	}
}

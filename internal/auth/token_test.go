package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestMintAndVerify_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := Mint(7, "admin", secret, time.Hour)
	if err != nil {
		t.Fatalf("Mint error: %v", err)
	}

	claims, err := Verify(tok, secret)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != 7 {
		t.Fatalf("user id mismatch: got %d want 7", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Fatalf("role mismatch: got %q want %q", claims.Role, "admin")
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected expiry in the future, got %v", claims.ExpiresAt)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := Mint(1, "admin", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("Mint error: %v", err)
	}

	_, err = Verify(tok, secret)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := Mint(1, "admin", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("Mint error: %v", err)
	}

	_, err = Verify(tok, []byte("wrong-secret"))
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	_, err := Verify("not.a.jwt", []byte("k"))
	if !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestVerify_RejectsNonHMACAlgorithm(t *testing.T) {
	t.Parallel()

	// alg=none tokens must never be accepted even with a valid shape.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: 1,
		Role:   "admin",
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := Verify(signed, []byte("secret")); err == nil {
		t.Fatalf("expected rejection of alg=none token, got nil")
	}
}

package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenVerifier(t *testing.T) {
	t.Run("empty secret disables auth", func(t *testing.T) {
		if NewTokenVerifier("  ", "") != nil {
			t.Fatalf("expected nil verifier")
		}
	})

	t.Run("sign and verify", func(t *testing.T) {
		v := NewTokenVerifier("secret", "companion")
		token, err := v.Sign("user-1", time.Minute)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		claims, err := v.Verify(token)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if claims.UserID != "user-1" {
			t.Fatalf("expected user-1, got %q", claims.UserID)
		}
	})

	t.Run("expired", func(t *testing.T) {
		v := NewTokenVerifier("secret", "")
		token, _ := v.Sign("user-1", -time.Minute)
		if _, err := v.Verify(token); !errors.Is(err, ErrJWTExpired) {
			t.Fatalf("expected ErrJWTExpired, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, _ := NewTokenVerifier("other", "").Sign("user-1", time.Minute)
		if _, err := NewTokenVerifier("secret", "").Verify(token); !errors.Is(err, ErrJWTInvalid) {
			t.Fatalf("expected ErrJWTInvalid, got %v", err)
		}
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, _ := NewTokenVerifier("secret", "someone-else").Sign("user-1", time.Minute)
		if _, err := NewTokenVerifier("secret", "companion").Verify(token); !errors.Is(err, ErrJWTInvalid) {
			t.Fatalf("expected ErrJWTInvalid, got %v", err)
		}
	})

	t.Run("subject used when uid missing", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "user-2",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		})
		token, err := raw.SignedString([]byte("secret"))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		claims, err := NewTokenVerifier("secret", "").Verify(token)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if claims.UserID != "user-2" {
			t.Fatalf("expected user-2, got %q", claims.UserID)
		}
	})

	t.Run("rejects other algorithms", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: "user-1"})
		token, _ := raw.SignedString([]byte("secret"))
		if _, err := NewTokenVerifier("secret", "").Verify(token); !errors.Is(err, ErrJWTInvalid) {
			t.Fatalf("expected ErrJWTInvalid, got %v", err)
		}
	})
}

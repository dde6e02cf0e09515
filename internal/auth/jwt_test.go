package auth

import (
	"errors"
	"testing"
	"time"
)

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test_secret", time.Hour)

	t.Run("round trip preserves claims", func(t *testing.T) {
		token, err := m.Generate("42", "a@x.com")
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		claims, err := m.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.UserID != "42" || claims.Email != "a@x.com" {
			t.Errorf("Claims mismatch: %+v", claims)
		}
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		token, err := m.Generate("42", "a@x.com")
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		other := NewJWTManager("other_secret", time.Hour)
		if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired token rejected", func(t *testing.T) {
		short := NewJWTManager("test_secret", time.Millisecond)
		token, err := short.Generate("42", "a@x.com")
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		time.Sleep(10 * time.Millisecond)
		if _, err := short.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		if _, err := m.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("zero ttl falls back to default", func(t *testing.T) {
		d := NewJWTManager("test_secret", 0)
		if d.tokenTTL != DefaultTokenTTL {
			t.Errorf("Expected default ttl, got %v", d.tokenTTL)
		}
	})
}

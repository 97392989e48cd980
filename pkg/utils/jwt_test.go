package utils

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/homemenu/backend/internal/models"
)

func withJWTSettings(t *testing.T, secret string, expirationHours int) {
	t.Helper()

	originalSecret := append([]byte(nil), jwtSecret...)
	originalExpiration := jwtExpirationHours
	t.Cleanup(func() {
		jwtSecret = originalSecret
		jwtExpirationHours = originalExpiration
	})

	ConfigureJWT(secret, expirationHours)
}

func signClaims(t *testing.T, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	if err != nil {
		t.Fatalf("failed signing claims: %v", err)
	}
	return token
}

func TestConfigureJWT(t *testing.T) {
	withJWTSettings(t, "kitchen-secret", 72)
	if string(jwtSecret) != "kitchen-secret" || jwtExpirationHours != 72 {
		t.Fatalf("expected settings to apply, got %q/%d", jwtSecret, jwtExpirationHours)
	}

	ConfigureJWT("", -1)
	if string(jwtSecret) != "kitchen-secret" || jwtExpirationHours != 72 {
		t.Fatalf("empty values must not reset settings, got %q/%d", jwtSecret, jwtExpirationHours)
	}
}

func TestGenerateToken(t *testing.T) {
	withJWTSettings(t, "roundtrip-secret", 2)

	user := &models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Username:  "Grandma Li",
		Email:     "li@example.com",
	}

	token, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}

	if claims.UserID != user.ID || claims.Subject != user.ID.String() {
		t.Errorf("unexpected identity claims: %+v", claims)
	}
	if claims.Username != "Grandma Li" {
		t.Errorf("expected username claim %q, got %q", "Grandma Li", claims.Username)
	}
	if claims.Issuer != TokenIssuer {
		t.Errorf("expected issuer %q, got %q", TokenIssuer, claims.Issuer)
	}
	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != 2*time.Hour {
		t.Errorf("expected a 2h token, got %v", lifetime)
	}

	if _, err := GenerateToken(&models.User{Username: "unsaved"}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for a user without id, got %v", err)
	}
}

func TestValidateTokenRejects(t *testing.T) {
	withJWTSettings(t, "reject-secret", 1)

	id := uuid.New()
	valid := func() Claims {
		return Claims{
			UserID:   id,
			Username: "chef",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    TokenIssuer,
				Subject:   id.String(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
	}

	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed generating rsa key: %v", err)
	}
	rsaToken, err := jwt.NewWithClaims(jwt.SigningMethodRS256, valid()).SignedString(rsaKey)
	if err != nil {
		t.Fatalf("failed signing rsa token: %v", err)
	}

	expired := valid()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	foreign := valid()
	foreign.Issuer = "someone-else"

	noExpiry := valid()
	noExpiry.ExpiresAt = nil

	mismatched := valid()
	mismatched.Subject = uuid.NewString()

	anonymous := valid()
	anonymous.UserID = uuid.Nil
	anonymous.Subject = uuid.Nil.String()

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"rsa signed", rsaToken},
		{"expired", signClaims(t, expired)},
		{"foreign issuer", signClaims(t, foreign)},
		{"no expiry", signClaims(t, noExpiry)},
		{"subject mismatch", signClaims(t, mismatched)},
		{"nil user", signClaims(t, anonymous)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateToken(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}

	t.Run("wrong secret", func(t *testing.T) {
		token := signClaims(t, valid())
		ConfigureJWT("rotated-secret", 1)
		if _, err := ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken after rotation, got %v", err)
		}
	})
}

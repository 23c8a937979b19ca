package auth_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"go-cpq/internal/auth"
	autherrors "go-cpq/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const (
	testIssuer   = "https://idp.example.com/"
	testAudience = "cpq-api"
)

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return key
}

func sign(t *testing.T, key *rsa.PrivateKey, claims auth.Claims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = "k1"
	s, err := tok.SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func validClaims() auth.Claims {
	return auth.Claims{
		Email: "jane@acme.test",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "idp|123",
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestVerifier_Verify(t *testing.T) {
	key := newKey(t)
	kf := func(*jwt.Token) (any, error) { return &key.PublicKey, nil }
	v := auth.NewVerifier(kf, testIssuer, testAudience, "RS256")

	t.Run("valid token", func(t *testing.T) {
		claims, err := v.Verify(sign(t, key, validClaims()))
		assert.NoError(t, err)
		assert.Equal(t, "idp|123", claims.Subject)
		assert.Equal(t, "jane@acme.test", claims.Email)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := v.Verify("")
		assert.ErrorIs(t, err, autherrors.ErrTokenNotFound)
	})

	t.Run("expired", func(t *testing.T) {
		c := validClaims()
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		_, err := v.Verify(sign(t, key, c))
		assert.ErrorIs(t, err, autherrors.ErrTokenExpired)
	})

	t.Run("wrong audience", func(t *testing.T) {
		c := validClaims()
		c.Audience = jwt.ClaimStrings{"other-api"}
		_, err := v.Verify(sign(t, key, c))
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		c := validClaims()
		c.Issuer = "https://evil.example.com/"
		_, err := v.Verify(sign(t, key, c))
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		c := validClaims()
		c.Subject = ""
		_, err := v.Verify(sign(t, key, c))
		assert.ErrorIs(t, err, autherrors.ErrMissingSubject)
	})

	t.Run("hmac token rejected", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims())
		s, err := tok.SignedString([]byte("secret"))
		assert.NoError(t, err)
		_, err = v.Verify(s)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("signed by another key", func(t *testing.T) {
		other := newKey(t)
		_, err := v.Verify(sign(t, other, validClaims()))
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})
}

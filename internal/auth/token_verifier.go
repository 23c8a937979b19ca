package auth

import (
	"context"
	"errors"
	"time"

	autherrors "go-cpq/internal/auth/errors"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the access token fields the API reads. Subject is the
// application user id.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

//go:generate mockgen -source=token_verifier.go -destination=mock/token_verifier_mock.go -package=mock
type Verifier interface {
	Verify(token string) (*Claims, error)
}

type tokenVerifier struct {
	keyfunc jwt.Keyfunc
	parser  *jwt.Parser
}

// NewVerifier accepts only tokens signed with algorithm, issued by issuer
// for audience, and carrying an expiry.
func NewVerifier(kf jwt.Keyfunc, issuer, audience, algorithm string) Verifier {
	return &tokenVerifier{
		keyfunc: kf,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{algorithm}),
			jwt.WithIssuer(issuer),
			jwt.WithAudience(audience),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(30*time.Second),
		),
	}
}

// NewJWKSKeyfunc resolves signing keys from the identity provider's JWKS
// endpoint. Keys are cached and refreshed in the background until ctx ends.
func NewJWKSKeyfunc(ctx context.Context, jwksURL string) (jwt.Keyfunc, error) {
	k, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, err
	}
	return k.Keyfunc, nil
}

func (v *tokenVerifier) Verify(token string) (*Claims, error) {
	if token == "" {
		return nil, autherrors.ErrTokenNotFound
	}

	claims := &Claims{}
	parsed, err := v.parser.ParseWithClaims(token, claims, v.keyfunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherrors.ErrTokenExpired.WithCause(err)
		}
		return nil, autherrors.ErrInvalidToken.WithCause(err)
	}
	if !parsed.Valid {
		return nil, autherrors.ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, autherrors.ErrMissingSubject
	}

	return claims, nil
}

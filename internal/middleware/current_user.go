package middleware

import (
	"context"
	"errors"

	"go-cpq/internal/auth"
	autherrors "go-cpq/internal/auth/errors"
	"go-cpq/internal/domain"
	"go-cpq/internal/shared/apperror"
	"go-cpq/internal/shared/contextutil"
	"go-cpq/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// IdentityLoader resolves the application profile for a token subject.
type IdentityLoader interface {
	LoadIdentity(ctx context.Context, userID string) (domain.Identity, error)
}

// CurrentUser loads the caller's profile and sets company_name and role.
// Callers without a profile get 404 so the client can send them to registration.
func CurrentUser(loader IdentityLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			response.Error(c, autherrors.ErrInvalidToken.HTTPStatus, autherrors.ErrInvalidToken.Code, autherrors.ErrInvalidToken.Message, nil)
			c.Abort()
			return
		}

		identity, err := loader.LoadIdentity(c.Request.Context(), userID)
		if err != nil {
			if !errors.Is(err, autherrors.ErrProfileNotFound) {
				contextutil.GetLogger(c.Request.Context(), zap.L()).Error("load identity failed", zap.Error(err))
			}
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}
		if !identity.IsActive {
			response.Error(c, autherrors.ErrUserInactive.HTTPStatus, autherrors.ErrUserInactive.Code, autherrors.ErrUserInactive.Message, nil)
			c.Abort()
			return
		}

		c.Set("company_name", identity.CompanyName)
		c.Set("role", identity.Role)
		c.Set("email", identity.Email)

		ctx := contextutil.WithCompanyName(c.Request.Context(), identity.CompanyName)
		ctx = contextutil.WithRole(ctx, identity.Role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// Authenticator bundles the chains every protected route group uses.
type Authenticator struct {
	Verifier auth.Verifier
	Users    IdentityLoader
	Redis    *redis.Client
	Logger   *zap.Logger
}

// Authenticated requires a valid token only.
func (a *Authenticator) Authenticated() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		AuthMiddleware(a.Verifier),
		ContextLogger(a.Logger),
	}
}

// Member requires a valid token and an active application profile. POSTs
// carrying an Idempotency-Key are replayed from redis.
func (a *Authenticator) Member() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		AuthMiddleware(a.Verifier),
		ContextLogger(a.Logger),
		CurrentUser(a.Users),
		Idempotency(a.Redis),
	}
}

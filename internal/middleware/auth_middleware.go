package middleware

import (
	"strings"

	"go-cpq/internal/auth"
	autherrors "go-cpq/internal/auth/errors"
	"go-cpq/internal/shared/apperror"
	"go-cpq/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer token and exposes its subject as user_id.
func AuthMiddleware(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		tokenString = strings.TrimSpace(tokenString)

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			if httpErr.Code == apperror.CodeInternalError {
				httpErr = apperror.ToHTTP(autherrors.ErrInvalidToken)
			}
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("token_email", claims.Email)

		c.Next()
	}
}

// RoleMiddleware admits only the listed roles.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString("role")

		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		response.Error(c, autherrors.ErrForbidden.HTTPStatus, autherrors.ErrForbidden.Code, autherrors.ErrForbidden.Message, nil)
		c.Abort()
	}
}

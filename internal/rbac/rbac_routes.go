package rbac

import (
	"go-cpq/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts permission introspection under /users/me.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authn *middleware.Authenticator) {
	me := r.Group("/users/me")
	me.Use(authn.Member()...)
	{
		me.GET("/permissions", handler.MyPermissions)
		me.POST("/permissions/check", middleware.RateLimitByUser(5, 20), handler.Check)
	}
}

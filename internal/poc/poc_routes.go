package poc

import (
	"go-cpq/internal/middleware"
	"go-cpq/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authn *middleware.Authenticator,
	rbacService middleware.RBACService,
) {
	pocs := r.Group("/poc")
	pocs.Use(authn.Member()...)
	{
		pocs.GET("", middleware.RateLimitByUser(3, 10), middleware.RBACAuthorize(rbacService, rbac.ResourcePoc, rbac.ActionRead), handler.GetAll)
		pocs.GET("/:id", middleware.RateLimitByUser(3, 10), middleware.RBACAuthorize(rbacService, rbac.ResourcePoc, rbac.ActionRead), handler.GetByID)
		pocs.POST("", middleware.RateLimitByUser(0.5, 3), middleware.RBACAuthorize(rbacService, rbac.ResourcePoc, rbac.ActionCreate), handler.Create)
		pocs.PUT("/:id", middleware.RateLimitByUser(0.5, 3), middleware.RBACAuthorize(rbacService, rbac.ResourcePoc, rbac.ActionUpdate), handler.Update)
		pocs.DELETE("/:id", middleware.RateLimitByUser(0.1, 2), middleware.RBACAuthorize(rbacService, rbac.ResourcePoc, rbac.ActionDelete), handler.Delete)
	}
}

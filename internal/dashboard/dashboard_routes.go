package dashboard

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
	dashboard := r.Group("/dashboard")
	dashboard.Use(authn.Member()...)
	{
		dashboard.GET("/summary",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceDashboard, rbac.ActionRead),
			handler.Summary,
		)
	}
}

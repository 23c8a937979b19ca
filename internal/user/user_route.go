package user

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
	public := r.Group("/users")
	{
		public.GET("/exists", middleware.RateLimitByIP(2, 10), handler.EmailExists)
		public.GET("/:id/exists", middleware.RateLimitByIP(2, 10), handler.IDExists)
	}

	// Token only: the caller has no profile yet.
	onboarding := r.Group("/users")
	onboarding.Use(authn.Authenticated()...)
	{
		onboarding.POST("", middleware.RateLimitByUser(0.1, 2), handler.Register)
	}

	users := r.Group("/users")
	users.Use(authn.Member()...)
	{
		users.GET("/me", middleware.RateLimitByUser(3, 10), handler.GetMe)
		users.PUT("/me", middleware.RateLimitByUser(0.5, 2), handler.UpdateMe)
		users.PUT("/me/columns", middleware.RateLimitByUser(1, 5), handler.UpdateColumns)

		users.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceUser, rbac.ActionRead),
			handler.GetCompanyUsers,
		)

		users.PUT("/:id/role",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceUser, rbac.ActionManage),
			handler.AssignRole,
		)

		users.PATCH("/:id/status",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceUser, rbac.ActionManage),
			handler.ToggleStatus,
		)
	}
}

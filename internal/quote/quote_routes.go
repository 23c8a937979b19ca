package quote

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
	quotes := r.Group("/quotes")
	quotes.Use(authn.Member()...)
	{
		quotes.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceQuote, rbac.ActionRead),
			handler.GetAll,
		)

		quotes.GET("/ref/:refNo",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceQuote, rbac.ActionRead),
			handler.GetByRefNo,
		)

		quotes.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceQuote, rbac.ActionRead),
			handler.GetByID,
		)

		quotes.GET("/:id/pdf",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceQuote, rbac.ActionRead),
			handler.DownloadPDF,
		)

		quotes.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceQuote, rbac.ActionCreate),
			handler.Create,
		)

		quotes.POST("/:id/pdf",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceQuote, rbac.ActionRead),
			handler.RequestPDF,
		)

		quotes.PUT("/:id",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceQuote, rbac.ActionUpdate),
			handler.Update,
		)

		quotes.PATCH("/:id/status",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceQuote, rbac.ActionUpdate),
			handler.UpdateStatus,
		)

		quotes.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceQuote, rbac.ActionDelete),
			handler.Delete,
		)
	}
}

package customer

import (
	"go-cpq/internal/middleware"
	"go-cpq/internal/rbac"
	"go-cpq/internal/shared/upload"

	"github.com/gin-gonic/gin"
)

var documentRules = []upload.Rule{
	{Field: DocumentsField, MaxCount: 10, Allowed: upload.DocumentTypes},
}

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authn *middleware.Authenticator,
	rbacService middleware.RBACService,
) {
	customers := r.Group("/customers")
	customers.Use(authn.Member()...)
	{
		customers.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceCustomer, rbac.ActionRead),
			handler.GetAll,
		)

		customers.GET("/options",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, rbac.ResourceCustomer, rbac.ActionRead),
			handler.GetOptions,
		)

		customers.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceCustomer, rbac.ActionRead),
			handler.GetByID,
		)

		customers.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceCustomer, rbac.ActionCreate),
			middleware.UploadFilter(documentRules...),
			handler.Create,
		)

		customers.PUT("/:id",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceCustomer, rbac.ActionUpdate),
			middleware.UploadFilter(documentRules...),
			handler.Update,
		)

		customers.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceCustomer, rbac.ActionDelete),
			handler.Delete,
		)
	}
}

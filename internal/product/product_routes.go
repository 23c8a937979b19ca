package product

import (
	"go-cpq/internal/middleware"
	"go-cpq/internal/rbac"
	"go-cpq/internal/shared/upload"

	"github.com/gin-gonic/gin"
)

var imageRules = []upload.Rule{
	{Field: ImagesField, MaxCount: MaxImages, Allowed: []string{"image/jpeg", "image/png", "image/webp"}},
}

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authn *middleware.Authenticator,
	rbacService middleware.RBACService,
) {
	products := r.Group("/products")
	products.Use(authn.Member()...)
	{
		products.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceProduct, rbac.ActionRead),
			handler.GetAll,
		)

		products.GET("/options",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, rbac.ResourceProduct, rbac.ActionRead),
			handler.GetOptions,
		)

		products.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceProduct, rbac.ActionRead),
			handler.GetByID,
		)

		products.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceProduct, rbac.ActionCreate),
			middleware.UploadFilter(imageRules...),
			handler.Create,
		)

		products.PUT("/:id",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceProduct, rbac.ActionUpdate),
			middleware.UploadFilter(imageRules...),
			handler.Update,
		)

		products.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceProduct, rbac.ActionDelete),
			handler.Delete,
		)
	}
}

package order

import (
	"go-cpq/internal/middleware"
	"go-cpq/internal/rbac"
	"go-cpq/internal/shared/upload"

	"github.com/gin-gonic/gin"
)

var fileRules = []upload.Rule{
	{Field: PerformanceBankGuaranteeField, MaxCount: 1, Allowed: upload.DocumentTypes},
	{Field: OtherDocumentsField, MaxCount: MaxOtherDocuments, Allowed: upload.DocumentTypes},
	{Field: AttachmentsField, MaxCount: MaxAttachments, Allowed: upload.DocumentTypes},
}

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authn *middleware.Authenticator,
	rbacService middleware.RBACService,
) {
	orders := r.Group("/orders")
	orders.Use(authn.Member()...)
	{
		orders.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceOrder, rbac.ActionRead),
			handler.GetAll,
		)

		orders.GET("/number/:orderNumber",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceOrder, rbac.ActionRead),
			handler.GetByNumber,
		)

		orders.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceOrder, rbac.ActionRead),
			handler.GetByID,
		)

		orders.GET("/:id/pdf",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceOrder, rbac.ActionRead),
			handler.DownloadPDF,
		)

		orders.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceOrder, rbac.ActionCreate),
			middleware.UploadFilter(fileRules...),
			handler.Create,
		)

		orders.PUT("/:id",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceOrder, rbac.ActionUpdate),
			middleware.UploadFilter(fileRules...),
			handler.Update,
		)

		orders.PATCH("/:id/status",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceOrder, rbac.ActionUpdate),
			handler.UpdateStatus,
		)

		orders.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceOrder, rbac.ActionDelete),
			handler.Delete,
		)
	}
}

package license

import (
	"go-cpq/internal/middleware"
	"go-cpq/internal/rbac"
	"go-cpq/internal/shared/upload"

	"github.com/gin-gonic/gin"
)

var certificateRules = []upload.Rule{
	{Field: LicenseDocumentField, MaxCount: 1, Allowed: upload.CertificateTypes},
	{Field: ETACertificateField, MaxCount: 1, Allowed: upload.CertificateTypes},
	{Field: ImportLicenseField, MaxCount: 1, Allowed: upload.CertificateTypes},
}

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authn *middleware.Authenticator,
	rbacService middleware.RBACService,
) {
	licenses := r.Group("/licenses")
	licenses.Use(authn.Member()...)
	{
		licenses.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLicense, rbac.ActionRead),
			handler.GetAll,
		)

		licenses.GET("/expiring",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLicense, rbac.ActionRead),
			handler.GetExpiring,
		)

		licenses.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLicense, rbac.ActionRead),
			handler.GetByID,
		)

		licenses.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLicense, rbac.ActionCreate),
			middleware.UploadFilter(certificateRules...),
			handler.Create,
		)

		licenses.PUT("/:id",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLicense, rbac.ActionUpdate),
			middleware.UploadFilter(certificateRules...),
			handler.Update,
		)

		licenses.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLicense, rbac.ActionDelete),
			handler.Delete,
		)
	}
}

package rbac

import "go-cpq/internal/domain"

const (
	ResourceCustomer  = "customer"
	ResourcePoc       = "poc"
	ResourceProduct   = "product"
	ResourceQuote     = "quote"
	ResourceOrder     = "order"
	ResourceLicense   = "license"
	ResourceDashboard = "dashboard"
	ResourceUser      = "user"

	ActionRead    = "read"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionApprove = "approve"
	ActionManage  = "manage"
)

// DefaultPolicies: viewer < sales < manager < admin.
func DefaultPolicies() ([][]string, [][]string) {
	var p [][]string
	for _, res := range []string{ResourceCustomer, ResourcePoc, ResourceProduct, ResourceQuote, ResourceOrder, ResourceLicense, ResourceDashboard, ResourceUser} {
		p = append(p, []string{domain.RoleViewer, res, ActionRead})
	}
	for _, res := range []string{ResourceCustomer, ResourcePoc, ResourceQuote, ResourceOrder, ResourceLicense} {
		p = append(p,
			[]string{domain.RoleSales, res, ActionCreate},
			[]string{domain.RoleSales, res, ActionUpdate},
		)
	}
	for _, res := range []string{ResourceCustomer, ResourcePoc, ResourceQuote, ResourceOrder, ResourceLicense, ResourceProduct} {
		p = append(p, []string{domain.RoleManager, res, ActionDelete})
	}
	p = append(p,
		[]string{domain.RoleManager, ResourceProduct, ActionCreate},
		[]string{domain.RoleManager, ResourceProduct, ActionUpdate},
		[]string{domain.RoleManager, ResourceQuote, ActionApprove},
		[]string{domain.RoleAdmin, ResourceUser, ActionManage},
	)

	g := [][]string{
		{domain.RoleSales, domain.RoleViewer},
		{domain.RoleManager, domain.RoleSales},
		{domain.RoleAdmin, domain.RoleManager},
	}
	return p, g
}

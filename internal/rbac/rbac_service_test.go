package rbac_test

import (
	"testing"

	"go-cpq/internal/domain"
	"go-cpq/internal/rbac"
	"go-cpq/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func newService(t *testing.T) rbac.Service {
	t.Helper()
	p, g := rbac.DefaultPolicies()
	e, err := infra.NewEnforcer(p, g)
	if err != nil {
		t.Fatalf("enforcer: %v", err)
	}
	return rbac.NewService(e)
}

func TestService_Enforce(t *testing.T) {
	svc := newService(t)

	cases := []struct {
		role, resource, action string
		allowed                bool
	}{
		{domain.RoleViewer, rbac.ResourceQuote, rbac.ActionRead, true},
		{domain.RoleViewer, rbac.ResourceQuote, rbac.ActionCreate, false},
		{domain.RoleSales, rbac.ResourceOrder, rbac.ActionCreate, true},
		{domain.RoleSales, rbac.ResourceOrder, rbac.ActionDelete, false},
		{domain.RoleSales, rbac.ResourceProduct, rbac.ActionCreate, false},
		{domain.RoleManager, rbac.ResourceProduct, rbac.ActionCreate, true},
		{domain.RoleManager, rbac.ResourceQuote, rbac.ActionApprove, true},
		{domain.RoleManager, rbac.ResourceUser, rbac.ActionManage, false},
		{domain.RoleAdmin, rbac.ResourceUser, rbac.ActionManage, true},
		{domain.RoleAdmin, rbac.ResourceLicense, rbac.ActionDelete, true},
		{"", rbac.ResourceCustomer, rbac.ActionRead, false},
	}

	for _, tc := range cases {
		t.Run(tc.role+"/"+tc.resource+"/"+tc.action, func(t *testing.T) {
			allowed, err := svc.Enforce(domain.EnforceRequest{Role: tc.role, Resource: tc.resource, Action: tc.action})
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}

func TestService_Permissions(t *testing.T) {
	svc := newService(t)

	viewer, err := svc.Permissions(domain.RoleViewer)
	assert.NoError(t, err)
	assert.Contains(t, viewer, "quote:read")
	assert.NotContains(t, viewer, "quote:create")

	admin, err := svc.Permissions(domain.RoleAdmin)
	assert.NoError(t, err)
	assert.Contains(t, admin, "user:manage")
	assert.Contains(t, admin, "quote:read")
	assert.Greater(t, len(admin), len(viewer))
}

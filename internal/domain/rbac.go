package domain

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleSales   = "sales"
	RoleViewer  = "viewer"
)

var Roles = []string{RoleAdmin, RoleManager, RoleSales, RoleViewer}

func IsValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

type EnforceRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

// Identity is the caller profile resolved from the token subject.
type Identity struct {
	UserID      string
	Email       string
	CompanyName string
	Role        string
	IsActive    bool
}

type PermissionResponse struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

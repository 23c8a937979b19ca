package user

type RegisterRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Email       string `json:"email" binding:"omitempty,email"`
	CompanyName string `json:"companyName" binding:"required,max=255"`
	Designation string `json:"designation" binding:"omitempty,max=255"`
	Phone       string `json:"phone" binding:"omitempty,max=50"`
}

type UpdateProfileRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Designation string `json:"designation" binding:"omitempty,max=255"`
	Phone       string `json:"phone" binding:"omitempty,max=50"`
}

// UpdateColumnsRequest replaces the caller's visible-column preferences.
// An empty list resets to the client default.
type UpdateColumnsRequest struct {
	VisibleColumns []string `json:"visibleColumns" binding:"omitempty,max=100,dive,required,max=100"`
}

type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin manager sales viewer"`
}

type UpdateStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type UserResponse struct {
	ID             string   `json:"id"`
	Email          string   `json:"email"`
	Name           string   `json:"name"`
	CompanyName    string   `json:"companyName"`
	Role           string   `json:"role"`
	Designation    string   `json:"designation"`
	Phone          string   `json:"phone"`
	VisibleColumns []string `json:"visibleColumns"`
	IsActive       bool     `json:"isActive"`
	CreatedAt      string   `json:"createdAt"`
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}

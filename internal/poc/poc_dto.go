package poc

type CreatePocRequest struct {
	CustomerID  uint   `json:"customerId" binding:"required,gt=0"`
	Name        string `json:"name" binding:"required,max=255"`
	Designation string `json:"designation" binding:"omitempty,max=255"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone" binding:"omitempty,max=50"`
	IsPrimary   bool   `json:"isPrimary"`
}

type UpdatePocRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Designation string `json:"designation" binding:"omitempty,max=255"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone" binding:"omitempty,max=50"`
	IsPrimary   bool   `json:"isPrimary"`
}

type PocResponse struct {
	ID          uint   `json:"id"`
	CustomerID  uint   `json:"customerId"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	IsPrimary   bool   `json:"isPrimary"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

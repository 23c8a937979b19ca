package customer

type CreateCustomerRequest struct {
	Name          string `json:"name" binding:"required,max=255"`
	AncillaryName string `json:"ancillaryName" binding:"omitempty,max=255"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone" binding:"omitempty,max=50"`
	Address       string `json:"address" binding:"omitempty,max=500"`
	City          string `json:"city" binding:"omitempty,max=100"`
	State         string `json:"state" binding:"omitempty,max=100"`
	Country       string `json:"country" binding:"omitempty,max=100"`
	PostalCode    string `json:"postalCode" binding:"omitempty,max=20"`
	TaxNumber     string `json:"taxNumber" binding:"omitempty,max=50"`
	Industry      string `json:"industry" binding:"omitempty,max=100"`
}

type UpdateCustomerRequest struct {
	CreateCustomerRequest
	// RemoveDocuments lists document URLs to drop from the customer.
	RemoveDocuments []string `json:"removeDocuments" binding:"omitempty,dive,url"`
}

type CustomerResponse struct {
	ID            uint     `json:"id"`
	CompanyName   string   `json:"companyName"`
	Name          string   `json:"name"`
	AncillaryName string   `json:"ancillaryName"`
	DisplayName   string   `json:"displayName"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	Country       string   `json:"country"`
	PostalCode    string   `json:"postalCode"`
	TaxNumber     string   `json:"taxNumber"`
	Industry      string   `json:"industry"`
	DocumentURLs  []string `json:"documentUrls"`
	CreatedBy     string   `json:"createdBy"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
}

type CustomerOption struct {
	ID          uint   `json:"id"`
	DisplayName string `json:"displayName"`
}

package product

import "github.com/shopspring/decimal"

const MaxImages = 5

type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,max=255"`
	SKU         string          `json:"sku" binding:"omitempty,max=100"`
	Description string          `json:"description" binding:"omitempty,max=2000"`
	Category    string          `json:"category" binding:"omitempty,max=100"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	IsActive    *bool           `json:"isActive"`
}

type UpdateProductRequest struct {
	CreateProductRequest
	RemoveImages []string `json:"removeImages" binding:"omitempty,dive,url"`
}

type ProductResponse struct {
	ID          uint            `json:"id"`
	CompanyName string          `json:"companyName"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	ImageURLs   []string        `json:"imageUrls"`
	IsActive    bool            `json:"isActive"`
	CreatedBy   string          `json:"createdBy"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

type ProductOption struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	TaxRate   decimal.Decimal `json:"taxRate"`
}

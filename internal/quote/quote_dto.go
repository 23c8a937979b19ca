package quote

import "github.com/shopspring/decimal"

type QuoteItemRequest struct {
	ProductID   *uint           `json:"productId"`
	ProductName string          `json:"productName" binding:"required,max=255"`
	Description string          `json:"description" binding:"omitempty,max=2000"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    decimal.Decimal `json:"quantity"`
	Tax         decimal.Decimal `json:"tax"`
	Discount    decimal.Decimal `json:"discount"`
	Amount      decimal.Decimal `json:"amount"`
}

type CreateQuoteRequest struct {
	CustomerID uint               `json:"customerId" binding:"required"`
	PocID      *uint              `json:"pocId"`
	Title      string             `json:"title" binding:"omitempty,max=255"`
	ValidUntil string             `json:"validUntil" binding:"omitempty,datetime=2006-01-02"`
	Currency   string             `json:"currency" binding:"omitempty,len=3"`
	Notes      string             `json:"notes" binding:"omitempty,max=5000"`
	Terms      string             `json:"terms" binding:"omitempty,max=5000"`
	Approvers  []string           `json:"approvers" binding:"omitempty,dive,required"`
	Items      []QuoteItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdateQuoteRequest = CreateQuoteRequest

type UpdateQuoteStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Drafted Pending Approved Rejected Sent"`
}

type QuoteItemResponse struct {
	ID          uint            `json:"id"`
	ProductID   *uint           `json:"productId"`
	ProductName string          `json:"productName"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    decimal.Decimal `json:"quantity"`
	Tax         decimal.Decimal `json:"tax"`
	Discount    decimal.Decimal `json:"discount"`
	Amount      decimal.Decimal `json:"amount"`
}

type QuoteResponse struct {
	ID          uint                `json:"id"`
	RefNo       string              `json:"refNo"`
	CompanyName string              `json:"companyName"`
	CustomerID  uint                `json:"customerId"`
	PocID       *uint               `json:"pocId"`
	Status      string              `json:"status"`
	Title       string              `json:"title"`
	ValidUntil  *string             `json:"validUntil"`
	Currency    string              `json:"currency"`
	Notes       string              `json:"notes"`
	Terms       string              `json:"terms"`
	Approvers   []string            `json:"approvers"`
	ApprovedBy  *string             `json:"approvedBy"`
	ApprovedAt  *string             `json:"approvedAt"`
	TotalAmount decimal.Decimal     `json:"totalAmount"`
	PDFURL      *string             `json:"pdfUrl"`
	CreatedBy   string              `json:"createdBy"`
	CreatedAt   string              `json:"createdAt"`
	UpdatedAt   string              `json:"updatedAt"`
	Items       []QuoteItemResponse `json:"items"`
}

type PDFFile struct {
	FileName string
	Data     []byte
}

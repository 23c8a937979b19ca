package order

import (
	"go-cpq/internal/shared/upload"

	"github.com/shopspring/decimal"
)

const (
	PerformanceBankGuaranteeField = "performanceBankGuarantee"
	OtherDocumentsField           = "otherDocuments"
	AttachmentsField              = "attachments"

	MaxOtherDocuments = 10
	MaxAttachments    = 10
)

type OrderItemRequest struct {
	ProductID    *uint           `json:"productId"`
	ProductName  string          `json:"productName" binding:"required,max=255"`
	Description  string          `json:"description" binding:"omitempty,max=2000"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Quantity     decimal.Decimal `json:"quantity"`
	TaxRate      decimal.Decimal `json:"taxRate"`
	DiscountRate decimal.Decimal `json:"discountRate"`
}

type CreateOrderRequest struct {
	OrderNumber  string             `json:"orderNumber" binding:"omitempty,max=100"`
	CustomerID   uint               `json:"customerId" binding:"required"`
	QuoteID      *uint              `json:"quoteId"`
	PocID        *uint              `json:"pocId"`
	OrderDate    string             `json:"orderDate" binding:"omitempty,datetime=2006-01-02"`
	DeliveryDate string             `json:"deliveryDate" binding:"omitempty,datetime=2006-01-02"`
	Status       string             `json:"status" binding:"omitempty,oneof=Pending Confirmed Processing Shipped Delivered Cancelled"`
	PaymentTerms string             `json:"paymentTerms" binding:"omitempty,max=255"`
	Notes        string             `json:"notes" binding:"omitempty,max=5000"`
	Currency     string             `json:"currency" binding:"omitempty,len=3"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdateOrderRequest struct {
	CreateOrderRequest
	RemoveOtherDocuments           []string `json:"removeOtherDocuments" binding:"omitempty,dive,url"`
	RemoveAttachments              []string `json:"removeAttachments" binding:"omitempty,dive,url"`
	RemovePerformanceBankGuarantee bool     `json:"removePerformanceBankGuarantee"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Confirmed Processing Shipped Delivered Cancelled"`
}

// OrderFiles carries the accepted multipart uploads of one request.
type OrderFiles struct {
	PerformanceBankGuarantee *upload.File
	OtherDocuments           []upload.File
	Attachments              []upload.File
}

func FilesFrom(files upload.Files) OrderFiles {
	return OrderFiles{
		PerformanceBankGuarantee: files.First(PerformanceBankGuaranteeField),
		OtherDocuments:           files.Get(OtherDocumentsField),
		Attachments:              files.Get(AttachmentsField),
	}
}

type OrderItemResponse struct {
	ID             uint            `json:"id"`
	ProductID      *uint           `json:"productId"`
	ProductName    string          `json:"productName"`
	Description    string          `json:"description"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	Quantity       decimal.Decimal `json:"quantity"`
	TaxRate        decimal.Decimal `json:"taxRate"`
	DiscountRate   decimal.Decimal `json:"discountRate"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
}

type OrderResponse struct {
	ID                          uint                `json:"id"`
	OrderNumber                 string              `json:"orderNumber"`
	CompanyName                 string              `json:"companyName"`
	CustomerID                  uint                `json:"customerId"`
	QuoteID                     *uint               `json:"quoteId"`
	PocID                       *uint               `json:"pocId"`
	OrderDate                   string              `json:"orderDate"`
	DeliveryDate                *string             `json:"deliveryDate"`
	Status                      string              `json:"status"`
	PaymentTerms                string              `json:"paymentTerms"`
	Notes                       string              `json:"notes"`
	Currency                    string              `json:"currency"`
	PerformanceBankGuaranteeURL *string             `json:"performanceBankGuaranteeUrl"`
	OtherDocumentURLs           []string            `json:"otherDocumentUrls"`
	AttachmentURLs              []string            `json:"attachmentUrls"`
	Subtotal                    decimal.Decimal     `json:"subtotal"`
	TaxAmount                   decimal.Decimal     `json:"taxAmount"`
	DiscountAmount              decimal.Decimal     `json:"discountAmount"`
	TotalAmount                 decimal.Decimal     `json:"totalAmount"`
	CreatedBy                   string              `json:"createdBy"`
	CreatedAt                   string              `json:"createdAt"`
	UpdatedAt                   string              `json:"updatedAt"`
	Items                       []OrderItemResponse `json:"items"`
}

type PDFFile struct {
	FileName string
	Data     []byte
}

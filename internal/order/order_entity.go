package order

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	StatusPending    = "Pending"
	StatusConfirmed  = "Confirmed"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCancelled  = "Cancelled"
)

type Order struct {
	ID                          uint            `gorm:"column:id;primaryKey"`
	OrderNumber                 string          `gorm:"column:order_number;uniqueIndex:uq_orders_order_number;not null"`
	CompanyName                 string          `gorm:"column:company_name;not null;index"`
	CustomerID                  uint            `gorm:"column:customer_id;not null"`
	QuoteID                     *uint           `gorm:"column:quote_id"`
	PocID                       *uint           `gorm:"column:poc_id"`
	OrderDate                   time.Time       `gorm:"column:order_date;type:date;not null"`
	DeliveryDate                *time.Time      `gorm:"column:delivery_date;type:date"`
	Status                      string          `gorm:"column:status;not null"`
	PaymentTerms                string          `gorm:"column:payment_terms"`
	Notes                       string          `gorm:"column:notes"`
	Currency                    string          `gorm:"column:currency"`
	PerformanceBankGuaranteeURL *string         `gorm:"column:performance_bank_guarantee_url"`
	OtherDocumentURLs           pq.StringArray  `gorm:"column:other_document_urls;type:text[]"`
	AttachmentURLs              pq.StringArray  `gorm:"column:attachment_urls;type:text[]"`
	Subtotal                    decimal.Decimal `gorm:"column:subtotal;type:numeric(14,2)"`
	TaxAmount                   decimal.Decimal `gorm:"column:tax_amount;type:numeric(14,2)"`
	DiscountAmount              decimal.Decimal `gorm:"column:discount_amount;type:numeric(14,2)"`
	TotalAmount                 decimal.Decimal `gorm:"column:total_amount;type:numeric(14,2)"`
	CreatedBy                   string          `gorm:"column:created_by"`
	CreatedAt                   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt                   time.Time       `gorm:"column:updated_at;autoUpdateTime"`

	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "orders"
}

// FileURLs lists every blob the order references.
func (o Order) FileURLs() []string {
	urls := make([]string, 0, 1+len(o.OtherDocumentURLs)+len(o.AttachmentURLs))
	if o.PerformanceBankGuaranteeURL != nil {
		urls = append(urls, *o.PerformanceBankGuaranteeURL)
	}
	urls = append(urls, o.OtherDocumentURLs...)
	return append(urls, o.AttachmentURLs...)
}

type OrderItem struct {
	ID             uint            `gorm:"column:id;primaryKey"`
	OrderID        uint            `gorm:"column:order_id;not null;index"`
	ProductID      *uint           `gorm:"column:product_id"`
	ProductName    string          `gorm:"column:product_name;not null"`
	Description    string          `gorm:"column:description"`
	UnitPrice      decimal.Decimal `gorm:"column:unit_price;type:numeric(14,2)"`
	Quantity       decimal.Decimal `gorm:"column:quantity;type:numeric(12,2)"`
	TaxRate        decimal.Decimal `gorm:"column:tax_rate;type:numeric(5,2)"`
	DiscountRate   decimal.Decimal `gorm:"column:discount_rate;type:numeric(5,2)"`
	Subtotal       decimal.Decimal `gorm:"column:subtotal;type:numeric(14,2)"`
	TaxAmount      decimal.Decimal `gorm:"column:tax_amount;type:numeric(14,2)"`
	DiscountAmount decimal.Decimal `gorm:"column:discount_amount;type:numeric(14,2)"`
	TotalAmount    decimal.Decimal `gorm:"column:total_amount;type:numeric(14,2)"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

package quote

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	StatusDrafted  = "Drafted"
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
	StatusSent     = "Sent"
)

// transitions lists the statuses reachable from each status.
var transitions = map[string][]string{
	StatusDrafted:  {StatusPending},
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusSent},
	StatusRejected: {StatusDrafted},
}

func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsEditable reports whether content and items may still change.
func IsEditable(status string) bool {
	return status == StatusDrafted || status == StatusRejected
}

type Quote struct {
	ID          uint            `gorm:"column:id;primaryKey"`
	RefNo       string          `gorm:"column:ref_no;uniqueIndex:uq_quotes_ref_no;not null"`
	CompanyName string          `gorm:"column:company_name;not null;index"`
	CustomerID  uint            `gorm:"column:customer_id;not null"`
	PocID       *uint           `gorm:"column:poc_id"`
	Status      string          `gorm:"column:status;not null"`
	Title       string          `gorm:"column:title"`
	ValidUntil  *time.Time      `gorm:"column:valid_until;type:date"`
	Currency    string          `gorm:"column:currency"`
	Notes       string          `gorm:"column:notes"`
	Terms       string          `gorm:"column:terms"`
	Approvers   pq.StringArray  `gorm:"column:approvers;type:text[]"`
	ApprovedBy  *string         `gorm:"column:approved_by"`
	ApprovedAt  *time.Time      `gorm:"column:approved_at"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:numeric(14,2)"`
	PDFURL      *string         `gorm:"column:pdf_url"`
	CreatedBy   string          `gorm:"column:created_by"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`

	Items []QuoteItem `gorm:"foreignKey:QuoteID"`
}

func (Quote) TableName() string {
	return "quotes"
}

// IsApprover reports whether userID is listed as an approver.
func (q Quote) IsApprover(userID string) bool {
	for _, a := range q.Approvers {
		if a == userID {
			return true
		}
	}
	return false
}

type QuoteItem struct {
	ID          uint            `gorm:"column:id;primaryKey"`
	QuoteID     uint            `gorm:"column:quote_id;not null;index"`
	ProductID   *uint           `gorm:"column:product_id"`
	ProductName string          `gorm:"column:product_name;not null"`
	Description string          `gorm:"column:description"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(14,2)"`
	Quantity    decimal.Decimal `gorm:"column:quantity;type:numeric(12,2)"`
	Tax         decimal.Decimal `gorm:"column:tax;type:numeric(8,2)"`
	Discount    decimal.Decimal `gorm:"column:discount;type:numeric(8,2)"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric(14,2)"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (QuoteItem) TableName() string {
	return "quote_items"
}

package product

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"column:id;primaryKey"`
	CompanyName string          `gorm:"column:company_name;not null;index"`
	Name        string          `gorm:"column:name;not null"`
	SKU         string          `gorm:"column:sku"`
	Description string          `gorm:"column:description"`
	Category    string          `gorm:"column:category"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(14,2)"`
	TaxRate     decimal.Decimal `gorm:"column:tax_rate;type:numeric(5,2)"`
	ImageURLs   pq.StringArray  `gorm:"column:image_urls;type:text[]"`
	IsActive    bool            `gorm:"column:is_active"`
	CreatedBy   string          `gorm:"column:created_by"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}

package customer

import (
	"time"

	"github.com/lib/pq"
)

type Customer struct {
	ID            uint           `gorm:"column:id;primaryKey"`
	CompanyName   string         `gorm:"column:company_name;not null;index"`
	Name          string         `gorm:"column:name;not null"`
	AncillaryName string         `gorm:"column:ancillary_name"`
	Email         string         `gorm:"column:email"`
	Phone         string         `gorm:"column:phone"`
	Address       string         `gorm:"column:address"`
	City          string         `gorm:"column:city"`
	State         string         `gorm:"column:state"`
	Country       string         `gorm:"column:country"`
	PostalCode    string         `gorm:"column:postal_code"`
	TaxNumber     string         `gorm:"column:tax_number"`
	Industry      string         `gorm:"column:industry"`
	DocumentURLs  pq.StringArray `gorm:"column:document_urls;type:text[]"`
	CreatedBy     string         `gorm:"column:created_by"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Customer) TableName() string {
	return "customers"
}

// DisplayName is Name, or Name-AncillaryName when an ancillary name is set.
func (c Customer) DisplayName() string {
	return DisplayName(c.Name, c.AncillaryName)
}

func DisplayName(name, ancillary string) string {
	if ancillary == "" {
		return name
	}
	return name + "-" + ancillary
}

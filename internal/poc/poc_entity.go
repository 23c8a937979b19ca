package poc

import "time"

// Poc is a point of contact at a customer. Tenancy follows the customer.
type Poc struct {
	ID          uint      `gorm:"column:id;primaryKey"`
	CustomerID  uint      `gorm:"column:customer_id;not null;index"`
	Name        string    `gorm:"column:name;not null"`
	Designation string    `gorm:"column:designation"`
	Email       string    `gorm:"column:email"`
	Phone       string    `gorm:"column:phone"`
	IsPrimary   bool      `gorm:"column:is_primary"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Poc) TableName() string {
	return "pocs"
}

package user

import (
	"time"

	"github.com/lib/pq"
)

// User is the application profile of an identity-provider subject.
type User struct {
	ID             string         `gorm:"column:id;primaryKey"`
	Email          string         `gorm:"column:email;not null;uniqueIndex:uq_users_email"`
	Name           string         `gorm:"column:name"`
	CompanyName    string         `gorm:"column:company_name;not null;index"`
	Role           string         `gorm:"column:role;default:sales"`
	Designation    string         `gorm:"column:designation"`
	Phone          string         `gorm:"column:phone"`
	VisibleColumns pq.StringArray `gorm:"column:visible_columns;type:text[]"`
	IsActive       bool           `gorm:"column:is_active;default:true"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

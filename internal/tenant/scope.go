package tenant

import (
	"go-cpq/internal/shared/apperror"

	"gorm.io/gorm"
)

// Scope restricts a query to rows owned by companyName.
func Scope(companyName string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_name = ?", companyName)
	}
}

// Authorize returns a 403 when a row exists but belongs to another company.
func Authorize(callerCompany, ownerCompany string) error {
	if callerCompany == "" || callerCompany != ownerCompany {
		return apperror.ErrForbidden
	}
	return nil
}

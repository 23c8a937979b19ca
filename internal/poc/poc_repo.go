package poc

import (
	"context"

	"go-cpq/internal/shared/database"

	"gorm.io/gorm"
)

//go:generate mockgen -source=poc_repo.go -destination=mock/poc_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, p *Poc) error
	FindByID(ctx context.Context, id uint) (*Poc, error)
	FindByCustomer(ctx context.Context, customerID uint) ([]Poc, error)
	FindAllByCompany(ctx context.Context, companyName string) ([]Poc, error)
	Update(ctx context.Context, p *Poc) error
	Delete(ctx context.Context, id uint) error
	ClearPrimary(ctx context.Context, customerID, exceptID uint) error
	GetCustomerCompany(ctx context.Context, customerID uint) (string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Poc) error {
	return database.Conn(ctx, r.db).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Poc, error) {
	var p Poc
	if err := database.Conn(ctx, r.db).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByCustomer(ctx context.Context, customerID uint) ([]Poc, error) {
	var pocs []Poc
	err := database.Conn(ctx, r.db).
		Where("customer_id = ?", customerID).
		Order("is_primary DESC, name ASC").
		Find(&pocs).Error
	return pocs, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyName string) ([]Poc, error) {
	var pocs []Poc
	err := database.Conn(ctx, r.db).
		Joins("JOIN customers ON customers.id = pocs.customer_id").
		Where("customers.company_name = ?", companyName).
		Order("pocs.customer_id ASC, pocs.is_primary DESC, pocs.name ASC").
		Find(&pocs).Error
	return pocs, err
}

func (r *repository) Update(ctx context.Context, p *Poc) error {
	return database.Conn(ctx, r.db).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := database.Conn(ctx, r.db).Delete(&Poc{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClearPrimary unsets is_primary on every contact of the customer except exceptID.
func (r *repository) ClearPrimary(ctx context.Context, customerID, exceptID uint) error {
	return database.Conn(ctx, r.db).
		Model(&Poc{}).
		Where("customer_id = ? AND id <> ? AND is_primary", customerID, exceptID).
		Update("is_primary", false).Error
}

// GetCustomerCompany returns the owning company of a customer. A missing
// customer yields an empty string.
func (r *repository) GetCustomerCompany(ctx context.Context, customerID uint) (string, error) {
	var companyName string
	err := database.Conn(ctx, r.db).
		Table("customers").
		Select("company_name").
		Where("id = ?", customerID).
		Scan(&companyName).Error
	return companyName, err
}

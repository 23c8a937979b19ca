package customer

import (
	"context"

	"go-cpq/internal/shared/database"
	"go-cpq/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=customer_repo.go -destination=mock/customer_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	FindByID(ctx context.Context, id uint) (*Customer, error)
	FindAllByCompany(ctx context.Context, companyName string) ([]Customer, error)
	FindOptionsByCompany(ctx context.Context, companyName string) ([]Customer, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Customer) error {
	return database.Conn(ctx, r.db).Create(c).Error
}

// FindByID is unscoped; callers check ownership so a foreign row answers 403.
func (r *repository) FindByID(ctx context.Context, id uint) (*Customer, error) {
	var c Customer
	if err := database.Conn(ctx, r.db).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindAllByCompany(ctx context.Context, companyName string) ([]Customer, error) {
	var customers []Customer
	err := database.Conn(ctx, r.db).
		Scopes(tenant.Scope(companyName)).
		Order("id DESC").
		Find(&customers).Error
	return customers, err
}

func (r *repository) FindOptionsByCompany(ctx context.Context, companyName string) ([]Customer, error) {
	var customers []Customer
	err := database.Conn(ctx, r.db).
		Select("id", "name", "ancillary_name").
		Scopes(tenant.Scope(companyName)).
		Order("name ASC").
		Find(&customers).Error
	return customers, err
}

func (r *repository) Update(ctx context.Context, c *Customer) error {
	return database.Conn(ctx, r.db).Save(c).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := database.Conn(ctx, r.db).Delete(&Customer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

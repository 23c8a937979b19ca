package product

import (
	"context"

	"go-cpq/internal/shared/database"
	"go-cpq/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=product_repo.go -destination=mock/product_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindAllByCompany(ctx context.Context, companyName string) ([]Product, error)
	FindOptionsByCompany(ctx context.Context, companyName string) ([]Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	return database.Conn(ctx, r.db).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Product, error) {
	var p Product
	if err := database.Conn(ctx, r.db).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindAllByCompany(ctx context.Context, companyName string) ([]Product, error) {
	var products []Product
	err := database.Conn(ctx, r.db).
		Scopes(tenant.Scope(companyName)).
		Order("id DESC").
		Find(&products).Error
	return products, err
}

func (r *repository) FindOptionsByCompany(ctx context.Context, companyName string) ([]Product, error) {
	var products []Product
	err := database.Conn(ctx, r.db).
		Select("id", "name", "sku", "unit_price", "tax_rate").
		Scopes(tenant.Scope(companyName)).
		Where("is_active").
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	return database.Conn(ctx, r.db).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := database.Conn(ctx, r.db).Delete(&Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package quote

import (
	"context"

	"go-cpq/internal/customer"
	"go-cpq/internal/shared/database"
	"go-cpq/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Filter struct {
	Status     string
	CustomerID uint
}

//go:generate mockgen -source=quote_repo.go -destination=mock/quote_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, q *Quote) error
	FindByID(ctx context.Context, id uint) (*Quote, error)
	FindByRefNo(ctx context.Context, refNo string) (*Quote, error)
	FindAllByCompany(ctx context.Context, companyName string, filter Filter) ([]Quote, error)
	Update(ctx context.Context, q *Quote) error
	ReplaceItems(ctx context.Context, quoteID uint, items []QuoteItem) error
	UpdatePDFURL(ctx context.Context, id uint, url string) error
	Delete(ctx context.Context, id uint) error
	FindCustomer(ctx context.Context, id uint) (*customer.Customer, error)
	PocBelongsToCustomer(ctx context.Context, pocID, customerID uint) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("quote_items.id ASC")
	})
}

// Create inserts the quote together with its items.
func (r *repository) Create(ctx context.Context, q *Quote) error {
	return database.Conn(ctx, r.db).Create(q).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Quote, error) {
	var q Quote
	if err := database.Conn(ctx, r.db).Scopes(preloadItems).First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *repository) FindByRefNo(ctx context.Context, refNo string) (*Quote, error) {
	var q Quote
	err := database.Conn(ctx, r.db).
		Scopes(preloadItems).
		Where("ref_no = ?", refNo).
		First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *repository) FindAllByCompany(ctx context.Context, companyName string, filter Filter) ([]Quote, error) {
	var quotes []Quote
	db := database.Conn(ctx, r.db).Scopes(tenant.Scope(companyName), preloadItems)
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.CustomerID > 0 {
		db = db.Where("customer_id = ?", filter.CustomerID)
	}
	err := db.Order("id DESC").Find(&quotes).Error
	return quotes, err
}

// Update saves quote columns only. Items are written through ReplaceItems.
func (r *repository) Update(ctx context.Context, q *Quote) error {
	return database.Conn(ctx, r.db).Omit(clause.Associations).Save(q).Error
}

func (r *repository) ReplaceItems(ctx context.Context, quoteID uint, items []QuoteItem) error {
	db := database.Conn(ctx, r.db)
	if err := db.Where("quote_id = ?", quoteID).Delete(&QuoteItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ID = 0
		items[i].QuoteID = quoteID
	}
	return db.Create(&items).Error
}

func (r *repository) UpdatePDFURL(ctx context.Context, id uint, url string) error {
	res := database.Conn(ctx, r.db).Model(&Quote{}).Where("id = ?", id).Update("pdf_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := database.Conn(ctx, r.db).Delete(&Quote{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindCustomer(ctx context.Context, id uint) (*customer.Customer, error) {
	var c customer.Customer
	if err := database.Conn(ctx, r.db).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) PocBelongsToCustomer(ctx context.Context, pocID, customerID uint) (bool, error) {
	var count int64
	err := database.Conn(ctx, r.db).
		Table("pocs").
		Where("id = ? AND customer_id = ?", pocID, customerID).
		Count(&count).Error
	return count > 0, err
}

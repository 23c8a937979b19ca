package order

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
	QuoteID    uint
}

//go:generate mockgen -source=order_repo.go -destination=mock/order_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uint) (*Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindAllByCompany(ctx context.Context, companyName string, filter Filter) ([]Order, error)
	Update(ctx context.Context, o *Order) error
	ReplaceItems(ctx context.Context, orderID uint, items []OrderItem) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
	FindCustomer(ctx context.Context, id uint) (*customer.Customer, error)
	QuoteCustomer(ctx context.Context, quoteID uint) (uint, error)
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
		return db.Order("order_items.id ASC")
	})
}

func (r *repository) Create(ctx context.Context, o *Order) error {
	return database.Conn(ctx, r.db).Create(o).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Order, error) {
	var o Order
	if err := database.Conn(ctx, r.db).Scopes(preloadItems).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) FindByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	var o Order
	err := database.Conn(ctx, r.db).
		Scopes(preloadItems).
		Where("order_number = ?", orderNumber).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) FindAllByCompany(ctx context.Context, companyName string, filter Filter) ([]Order, error) {
	var orders []Order
	db := database.Conn(ctx, r.db).Scopes(tenant.Scope(companyName), preloadItems)
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.CustomerID > 0 {
		db = db.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.QuoteID > 0 {
		db = db.Where("quote_id = ?", filter.QuoteID)
	}
	err := db.Order("id DESC").Find(&orders).Error
	return orders, err
}

func (r *repository) Update(ctx context.Context, o *Order) error {
	return database.Conn(ctx, r.db).Omit(clause.Associations).Save(o).Error
}

// ReplaceItems deletes every item of the order and inserts items in their place.
func (r *repository) ReplaceItems(ctx context.Context, orderID uint, items []OrderItem) error {
	db := database.Conn(ctx, r.db)
	if err := db.Where("order_id = ?", orderID).Delete(&OrderItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ID = 0
		items[i].OrderID = orderID
	}
	return db.Create(&items).Error
}

func (r *repository) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := database.Conn(ctx, r.db).Model(&Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := database.Conn(ctx, r.db).Delete(&Order{}, id)
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

// QuoteCustomer returns the customer of a quote, or 0 when the quote does not exist.
func (r *repository) QuoteCustomer(ctx context.Context, quoteID uint) (uint, error) {
	var customerIDs []uint
	err := database.Conn(ctx, r.db).
		Table("quotes").
		Where("id = ?", quoteID).
		Limit(1).
		Pluck("customer_id", &customerIDs).Error
	if err != nil || len(customerIDs) == 0 {
		return 0, err
	}
	return customerIDs[0], nil
}

func (r *repository) PocBelongsToCustomer(ctx context.Context, pocID, customerID uint) (bool, error) {
	var count int64
	err := database.Conn(ctx, r.db).
		Table("pocs").
		Where("id = ? AND customer_id = ?", pocID, customerID).
		Count(&count).Error
	return count > 0, err
}

package license

import (
	"context"
	"time"

	"go-cpq/internal/customer"
	"go-cpq/internal/shared/database"
	"go-cpq/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Filter struct {
	Status     string
	CustomerID uint
	OrderID    uint
}

//go:generate mockgen -source=license_repo.go -destination=mock/license_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, l *License) error
	FindByID(ctx context.Context, id uint) (*License, error)
	FindAllByCompany(ctx context.Context, companyName string, filter Filter) ([]License, error)
	FindExpiring(ctx context.Context, companyName string, from, to time.Time) ([]License, error)
	Update(ctx context.Context, l *License) error
	ReplaceDevices(ctx context.Context, licenseID uint, devices []LicenseDevice) error
	Delete(ctx context.Context, id uint) error
	FindCustomer(ctx context.Context, id uint) (*customer.Customer, error)
	OrderCustomer(ctx context.Context, orderID uint) (uint, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func preloadDevices(db *gorm.DB) *gorm.DB {
	return db.Preload("Devices", func(db *gorm.DB) *gorm.DB {
		return db.Order("license_devices.id ASC")
	})
}

func (r *repository) Create(ctx context.Context, l *License) error {
	return database.Conn(ctx, r.db).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*License, error) {
	var l License
	if err := database.Conn(ctx, r.db).Scopes(preloadDevices).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindAllByCompany(ctx context.Context, companyName string, filter Filter) ([]License, error) {
	var licenses []License
	db := database.Conn(ctx, r.db).Scopes(tenant.Scope(companyName), preloadDevices)
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.CustomerID > 0 {
		db = db.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.OrderID > 0 {
		db = db.Where("order_id = ?", filter.OrderID)
	}
	err := db.Order("id DESC").Find(&licenses).Error
	return licenses, err
}

// FindExpiring returns licenses whose expiry date lies in [from, to], soonest first.
func (r *repository) FindExpiring(ctx context.Context, companyName string, from, to time.Time) ([]License, error) {
	var licenses []License
	err := database.Conn(ctx, r.db).
		Scopes(tenant.Scope(companyName), preloadDevices).
		Where("expiry_date IS NOT NULL AND expiry_date BETWEEN ? AND ?", from, to).
		Order("expiry_date ASC").
		Find(&licenses).Error
	return licenses, err
}

func (r *repository) Update(ctx context.Context, l *License) error {
	return database.Conn(ctx, r.db).Omit(clause.Associations).Save(l).Error
}

// ReplaceDevices deletes every device of the license and inserts devices in their place.
func (r *repository) ReplaceDevices(ctx context.Context, licenseID uint, devices []LicenseDevice) error {
	db := database.Conn(ctx, r.db)
	if err := db.Where("license_id = ?", licenseID).Delete(&LicenseDevice{}).Error; err != nil {
		return err
	}
	if len(devices) == 0 {
		return nil
	}
	for i := range devices {
		devices[i].ID = 0
		devices[i].LicenseID = licenseID
	}
	return db.Create(&devices).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := database.Conn(ctx, r.db).Delete(&License{}, id)
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

// OrderCustomer returns the customer of an order, or 0 when the order does not exist.
func (r *repository) OrderCustomer(ctx context.Context, orderID uint) (uint, error) {
	var customerIDs []uint
	err := database.Conn(ctx, r.db).
		Table("orders").
		Where("id = ?", orderID).
		Limit(1).
		Pluck("customer_id", &customerIDs).Error
	if err != nil || len(customerIDs) == 0 {
		return 0, err
	}
	return customerIDs[0], nil
}

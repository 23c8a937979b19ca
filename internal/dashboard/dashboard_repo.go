package dashboard

import (
	"context"
	"time"

	"go-cpq/internal/order"
	"go-cpq/internal/shared/database"
	"go-cpq/internal/tenant"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=dashboard_repo.go -destination=mock/dashboard_repo_mock.go -package=mock
type Repository interface {
	CountCustomers(ctx context.Context, companyName string) (int64, error)
	CountProducts(ctx context.Context, companyName string) (int64, error)
	CountQuotesByStatus(ctx context.Context, companyName string) (map[string]int64, error)
	CountOrdersByStatus(ctx context.Context, companyName string) (map[string]int64, error)
	OrderRevenue(ctx context.Context, companyName string) (decimal.Decimal, error)
	CountExpiringLicenses(ctx context.Context, companyName string, from, to time.Time) (int64, error)
	MonthlyOrderTotals(ctx context.Context, companyName string, since time.Time) ([]MonthTotal, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) count(ctx context.Context, table, companyName string) (int64, error) {
	var n int64
	err := database.Conn(ctx, r.db).Table(table).Scopes(tenant.Scope(companyName)).Count(&n).Error
	return n, err
}

func (r *repository) CountCustomers(ctx context.Context, companyName string) (int64, error) {
	return r.count(ctx, "customers", companyName)
}

func (r *repository) CountProducts(ctx context.Context, companyName string) (int64, error) {
	return r.count(ctx, "products", companyName)
}

type statusCount struct {
	Status string
	Count  int64
}

func (r *repository) byStatus(ctx context.Context, table, companyName string) (map[string]int64, error) {
	var rows []statusCount
	err := database.Conn(ctx, r.db).
		Table(table).
		Select("status, COUNT(*) AS count").
		Scopes(tenant.Scope(companyName)).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *repository) CountQuotesByStatus(ctx context.Context, companyName string) (map[string]int64, error) {
	return r.byStatus(ctx, "quotes", companyName)
}

func (r *repository) CountOrdersByStatus(ctx context.Context, companyName string) (map[string]int64, error) {
	return r.byStatus(ctx, "orders", companyName)
}

// OrderRevenue sums every order that is not cancelled.
func (r *repository) OrderRevenue(ctx context.Context, companyName string) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := database.Conn(ctx, r.db).
		Table("orders").
		Select("COALESCE(SUM(total_amount), 0) AS total").
		Scopes(tenant.Scope(companyName)).
		Where("status <> ?", order.StatusCancelled).
		Scan(&row).Error
	return row.Total, err
}

func (r *repository) CountExpiringLicenses(ctx context.Context, companyName string, from, to time.Time) (int64, error) {
	var n int64
	err := database.Conn(ctx, r.db).
		Table("licenses").
		Scopes(tenant.Scope(companyName)).
		Where("expiry_date BETWEEN ? AND ?", from, to).
		Count(&n).Error
	return n, err
}

// MonthlyOrderTotals groups non-cancelled orders by YYYY-MM of their order date.
// Months without orders are absent.
func (r *repository) MonthlyOrderTotals(ctx context.Context, companyName string, since time.Time) ([]MonthTotal, error) {
	var rows []MonthTotal
	err := database.Conn(ctx, r.db).
		Table("orders").
		Select("to_char(order_date, 'YYYY-MM') AS month, COALESCE(SUM(total_amount), 0) AS total").
		Scopes(tenant.Scope(companyName)).
		Where("order_date >= ? AND status <> ?", since, order.StatusCancelled).
		Group("month").
		Order("month ASC").
		Scan(&rows).Error
	return rows, err
}

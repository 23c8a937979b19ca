package dashboard_test

import (
	"context"
	"testing"

	"go-cpq/internal/dashboard"
	"go-cpq/internal/shared/database/dbtest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDashboardRepository_CountQuotesByStatus(t *testing.T) {
	db, mock := dbtest.New(t)
	repo := dashboard.NewRepository(db)

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS count FROM "quotes" WHERE company_name = \$1 GROUP BY`).
		WithArgs("Acme").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("Drafted", 4).
			AddRow("Sent", 1))

	counts, err := repo.CountQuotesByStatus(context.Background(), "Acme")

	assert.NoError(t, err)
	assert.Equal(t, map[string]int64{"Drafted": 4, "Sent": 1}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepository_OrderRevenue(t *testing.T) {
	db, mock := dbtest.New(t)
	repo := dashboard.NewRepository(db)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_amount\), 0\) AS total FROM "orders" WHERE company_name = \$1 AND status <> \$2`).
		WithArgs("Acme", "Cancelled").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("2045.10"))

	total, err := repo.OrderRevenue(context.Background(), "Acme")

	assert.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("2045.10")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepository_CountCustomers(t *testing.T) {
	db, mock := dbtest.New(t)
	repo := dashboard.NewRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "customers" WHERE company_name = \$1`).
		WithArgs("Acme").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(9))

	n, err := repo.CountCustomers(context.Background(), "Acme")

	assert.NoError(t, err)
	assert.Equal(t, int64(9), n)
}

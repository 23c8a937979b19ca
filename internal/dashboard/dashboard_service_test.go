package dashboard_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-cpq/internal/dashboard"
	mock_dashboard "go-cpq/internal/dashboard/mock"

	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func expectBuild(repo *mock_dashboard.MockRepository, months []dashboard.MonthTotal) {
	repo.EXPECT().CountCustomers(gomock.Any(), "Acme").Return(int64(12), nil)
	repo.EXPECT().CountProducts(gomock.Any(), "Acme").Return(int64(40), nil)
	repo.EXPECT().CountQuotesByStatus(gomock.Any(), "Acme").Return(map[string]int64{"Drafted": 3, "Approved": 2}, nil)
	repo.EXPECT().CountOrdersByStatus(gomock.Any(), "Acme").Return(map[string]int64{"Pending": 1}, nil)
	repo.EXPECT().OrderRevenue(gomock.Any(), "Acme").Return(decimal.RequireFromString("1520.40"), nil)
	repo.EXPECT().CountExpiringLicenses(gomock.Any(), "Acme", gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, from, to time.Time) (int64, error) {
			if to.Sub(from) != 30*24*time.Hour {
				return 0, errors.New("unexpected window")
			}
			return 2, nil
		})
	repo.EXPECT().MonthlyOrderTotals(gomock.Any(), "Acme", gomock.Any()).Return(months, nil)
}

func TestDashboardService_Summary(t *testing.T) {
	ctx := context.Background()
	key := dashboard.GetSummaryKey("Acme")

	t.Run("cache hit", func(t *testing.T) {
		repo := mock_dashboard.NewMockRepository(gomock.NewController(t))
		rdb, redisMock := redismock.NewClientMock()
		svc := dashboard.NewService(repo, rdb, zap.NewNop())

		cached, _ := json.Marshal(dashboard.SummaryResponse{Customers: 7})
		redisMock.ExpectGet(key).SetVal(string(cached))

		res, err := svc.Summary(ctx, "Acme")

		assert.NoError(t, err)
		assert.Equal(t, int64(7), res.Customers)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache miss builds and stores", func(t *testing.T) {
		repo := mock_dashboard.NewMockRepository(gomock.NewController(t))
		rdb, redisMock := redismock.NewClientMock()
		svc := dashboard.NewService(repo, rdb, zap.NewNop())

		redisMock.ExpectGet(key).RedisNil()
		expectBuild(repo, nil)
		redisMock.Regexp().ExpectSet(key, `.*`, dashboard.SummaryTTL).SetVal("OK")

		res, err := svc.Summary(ctx, "Acme")

		assert.NoError(t, err)
		assert.Equal(t, int64(12), res.Customers)
		assert.Equal(t, int64(3), res.QuotesByStatus["Drafted"])
		assert.Equal(t, int64(2), res.ExpiringLicenses)
		assert.True(t, res.TotalRevenue.Equal(decimal.RequireFromString("1520.40")))
		assert.Len(t, res.MonthlyOrderTotals, 6)
		for _, m := range res.MonthlyOrderTotals {
			assert.True(t, m.Total.IsZero())
		}
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("without redis", func(t *testing.T) {
		repo := mock_dashboard.NewMockRepository(gomock.NewController(t))
		svc := dashboard.NewService(repo, nil, zap.NewNop())

		current := time.Now().UTC().Format("2006-01")
		expectBuild(repo, []dashboard.MonthTotal{{Month: current, Total: decimal.NewFromInt(900)}})

		res, err := svc.Summary(ctx, "Acme")

		assert.NoError(t, err)
		last := res.MonthlyOrderTotals[len(res.MonthlyOrderTotals)-1]
		assert.Equal(t, current, last.Month)
		assert.True(t, last.Total.Equal(decimal.NewFromInt(900)))
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := mock_dashboard.NewMockRepository(gomock.NewController(t))
		svc := dashboard.NewService(repo, nil, zap.NewNop())

		repo.EXPECT().CountCustomers(gomock.Any(), "Acme").Return(int64(0), errors.New("db down"))

		_, err := svc.Summary(ctx, "Acme")
		assert.Error(t, err)
	})
}

func TestDashboardService_Invalidate(t *testing.T) {
	repo := mock_dashboard.NewMockRepository(gomock.NewController(t))
	rdb, redisMock := redismock.NewClientMock()
	svc := dashboard.NewService(repo, rdb, zap.NewNop())

	redisMock.ExpectDel(dashboard.GetSummaryKey("ACME")).SetVal(1)

	assert.NoError(t, svc.Invalidate(context.Background(), "ACME"))
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

package dashboard

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go-cpq/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	SummaryKeyPrefix = "dashboard:summary:"
	SummaryTTL       = 5 * time.Minute

	expiringWindowDays = 30
	trendMonths        = 6
)

func GetSummaryKey(companyName string) string {
	return SummaryKeyPrefix + strings.ToLower(companyName)
}

//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	Summary(ctx context.Context, companyName string) (SummaryResponse, error)
	Invalidate(ctx context.Context, companyName string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		now:    time.Now,
		logger: l,
	}
}

func (s *service) Summary(ctx context.Context, companyName string) (SummaryResponse, error) {
	cacheKey := GetSummaryKey(companyName)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp SummaryResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		resp, err := s.build(ctx, companyName)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, data, SummaryTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("build dashboard summary failed",
			zap.String("company_name", companyName),
			zap.Error(err),
		)
		return SummaryResponse{}, err
	}
	return v.(SummaryResponse), nil
}

func (s *service) Invalidate(ctx context.Context, companyName string) error {
	if s.rdb == nil {
		return nil
	}
	cacheKey := GetSummaryKey(companyName)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate dashboard cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
		return err
	}
	return nil
}

func (s *service) build(ctx context.Context, companyName string) (SummaryResponse, error) {
	now := s.now().UTC()
	today := now.Truncate(24 * time.Hour)
	firstMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(trendMonths - 1), 0)

	var (
		resp SummaryResponse
		err  error
	)
	if resp.Customers, err = s.repo.CountCustomers(ctx, companyName); err != nil {
		return resp, err
	}
	if resp.Products, err = s.repo.CountProducts(ctx, companyName); err != nil {
		return resp, err
	}
	if resp.QuotesByStatus, err = s.repo.CountQuotesByStatus(ctx, companyName); err != nil {
		return resp, err
	}
	if resp.OrdersByStatus, err = s.repo.CountOrdersByStatus(ctx, companyName); err != nil {
		return resp, err
	}
	if resp.TotalRevenue, err = s.repo.OrderRevenue(ctx, companyName); err != nil {
		return resp, err
	}
	if resp.ExpiringLicenses, err = s.repo.CountExpiringLicenses(ctx, companyName, today, today.AddDate(0, 0, expiringWindowDays)); err != nil {
		return resp, err
	}

	totals, err := s.repo.MonthlyOrderTotals(ctx, companyName, firstMonth)
	if err != nil {
		return resp, err
	}
	resp.MonthlyOrderTotals = fillMonths(firstMonth, trendMonths, totals)
	resp.GeneratedAt = now.Format(time.RFC3339)
	return resp, nil
}

// fillMonths returns one entry per month starting at first, zero when absent from totals.
func fillMonths(first time.Time, months int, totals []MonthTotal) []MonthTotal {
	byMonth := make(map[string]decimal.Decimal, len(totals))
	for _, t := range totals {
		byMonth[t.Month] = t.Total
	}

	out := make([]MonthTotal, months)
	for i := range out {
		month := first.AddDate(0, i, 0).Format("2006-01")
		total, ok := byMonth[month]
		if !ok {
			total = decimal.Zero
		}
		out[i] = MonthTotal{Month: month, Total: total}
	}
	return out
}

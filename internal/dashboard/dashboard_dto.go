package dashboard

import "github.com/shopspring/decimal"

type MonthTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

type SummaryResponse struct {
	Customers          int64            `json:"customers"`
	Products           int64            `json:"products"`
	QuotesByStatus     map[string]int64 `json:"quotesByStatus"`
	OrdersByStatus     map[string]int64 `json:"ordersByStatus"`
	TotalRevenue       decimal.Decimal  `json:"totalRevenue"`
	ExpiringLicenses   int64            `json:"expiringLicenses"`
	MonthlyOrderTotals []MonthTotal     `json:"monthlyOrderTotals"`
	GeneratedAt        string           `json:"generatedAt"`
}

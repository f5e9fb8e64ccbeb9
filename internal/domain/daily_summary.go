package domain

import "time"

// DailyCategorySummary is one row of the daily_sales_summary table:
// fact rows aggregated by (order date, category).
type DailyCategorySummary struct {
	OrderDate time.Time
	Category  string // empty string groups rows with an unmatched product

	TotalRevenue         float64
	RevenueAfterDiscount float64
	NetProfit            float64
	GrossProfit          float64
	TotalDiscount        float64
	TotalQuantity        int
	UniqueOrders         int
	UniqueCustomers      int

	// ProfitMargin is nil when TotalRevenue is zero;
	// AverageOrderValue is nil when UniqueOrders is zero.
	ProfitMargin      *float64
	AverageOrderValue *float64
}

package domain

// BusinessTotals are warehouse-level rollups over completed orders,
// consumed by the report generator.
type BusinessTotals struct {
	TotalRevenue    float64 // sum of revenue_after_discount
	TotalProfit     float64 // sum of net_profit
	AvgProfitMargin *float64 // mean of per-row profit_margin, nil when no rows carry one
	UniqueCustomers int
	UniqueProducts  int
	UniqueOrders    int
}

// CategoryRevenue is one row of the top-categories rollup.
type CategoryRevenue struct {
	Category string
	Revenue  float64 // sum of revenue_after_discount, completed orders
	Orders   int     // line item count
}

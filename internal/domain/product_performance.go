package domain

// ProductPerformance is one row of the product_performance table: fact
// rows aggregated by (product, category, brand), joined with the
// product master record and ranked by revenue and profit.
type ProductPerformance struct {
	ProductID string
	Category  string
	Brand     string

	TotalRevenue      float64
	TotalProfit       float64
	TotalQuantitySold int
	UniqueOrders      int
	UniqueCustomers   int

	// Product master attributes (nil on unmatched product)
	ProductName   *string
	Price         *float64
	Cost          *float64
	StockQuantity *int

	// ProfitMargin is nil when TotalRevenue is zero. AvgSellingPrice
	// is nil when TotalQuantitySold is zero. InventoryTurnover is nil
	// when the stock quantity is zero or unknown.
	ProfitMargin      *float64
	AvgSellingPrice   *float64
	InventoryTurnover *float64

	// Dense ranks, descending: tied values (after rounding to currency
	// precision) share a rank and the next distinct value follows with
	// no gap.
	RevenueRank int
	ProfitRank  int
}

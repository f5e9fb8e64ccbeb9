package storage

import (
	"context"
	"time"

	"ecommerce-pipeline/internal/domain"
)

// StagingStore holds the raw datasets between the extract and
// transform stages. Replace methods carry full-overwrite semantics:
// each run truncates and rewrites the dataset.
type StagingStore interface {
	// ReplaceProducts overwrites the products dataset.
	ReplaceProducts(ctx context.Context, products []*domain.Product) error

	// ReplaceCustomers overwrites the customers dataset.
	ReplaceCustomers(ctx context.Context, customers []*domain.Customer) error

	// ReplaceOrders overwrites the orders dataset.
	ReplaceOrders(ctx context.Context, orders []*domain.Order) error

	// Products retrieves the products dataset. Returns ErrUnavailable
	// when the dataset cannot be read.
	Products(ctx context.Context) ([]*domain.Product, error)

	// Customers retrieves the customers dataset.
	Customers(ctx context.Context) ([]*domain.Customer, error)

	// Orders retrieves the orders dataset.
	Orders(ctx context.Context) ([]*domain.Order, error)
}

// FactStore provides access to the fact_orders warehouse table.
type FactStore interface {
	// Replace truncates the table and writes the given rows.
	Replace(ctx context.Context, rows []*domain.FactRow) error

	// Count returns the number of rows.
	Count(ctx context.Context) (int, error)

	// RevenueTotal returns the sum of item_total over all rows.
	RevenueTotal(ctx context.Context) (float64, error)

	// LatestOrderDate returns the most recent order date.
	// Returns ErrNotFound when the table is empty.
	LatestOrderDate(ctx context.Context) (time.Time, error)

	// BusinessTotals computes completed-order rollups for reporting.
	BusinessTotals(ctx context.Context) (*domain.BusinessTotals, error)

	// TopCategories returns up to limit categories by completed-order
	// revenue, descending.
	TopCategories(ctx context.Context, limit int) ([]*domain.CategoryRevenue, error)
}

// DailySummaryStore provides access to the daily_sales_summary table.
type DailySummaryStore interface {
	// Replace truncates the table and writes the given rows.
	Replace(ctx context.Context, rows []*domain.DailyCategorySummary) error

	// Count returns the number of rows.
	Count(ctx context.Context) (int, error)

	// RevenueTotal returns the sum of total_revenue over all rows.
	RevenueTotal(ctx context.Context) (float64, error)
}

// CustomerAnalyticsStore provides access to the customer_analytics table.
type CustomerAnalyticsStore interface {
	// Replace truncates the table and writes the given rows.
	Replace(ctx context.Context, rows []*domain.CustomerAnalytics) error

	// Count returns the number of rows.
	Count(ctx context.Context) (int, error)
}

// ProductPerformanceStore provides access to the product_performance table.
type ProductPerformanceStore interface {
	// Replace truncates the table and writes the given rows.
	Replace(ctx context.Context, rows []*domain.ProductPerformance) error

	// Count returns the number of rows.
	Count(ctx context.Context) (int, error)
}

// DimensionStore provides access to the dim_products and dim_customers
// tables, persisted verbatim from the raw datasets.
type DimensionStore interface {
	// ReplaceProducts truncates dim_products and writes the given rows.
	ReplaceProducts(ctx context.Context, products []*domain.Product) error

	// ReplaceCustomers truncates dim_customers and writes the given rows.
	ReplaceCustomers(ctx context.Context, customers []*domain.Customer) error

	// ProductCount returns the number of dim_products rows.
	ProductCount(ctx context.Context) (int, error)

	// CustomerCount returns the number of dim_customers rows.
	CustomerCount(ctx context.Context) (int, error)
}

package reporting

import (
	"time"

	"ecommerce-pipeline/internal/domain"
)

// Report is the pipeline execution report rendered for operators after
// a warehouse load.
type Report struct {
	GeneratedAt time.Time

	// Data summary
	LatestOrderDate *time.Time // nil when the fact table is empty
	TotalOrderLines int

	// Business metrics over completed orders
	Totals domain.BusinessTotals

	// Top categories by completed-order revenue, descending
	TopCategories []*domain.CategoryRevenue

	// Per-table row counts
	TableCounts []TableCount
}

// TableCount is one row of the per-table count section.
type TableCount struct {
	Table   string
	Records int
}

// Package reporting builds the pipeline execution report from the
// loaded warehouse and renders it as text.
package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecommerce-pipeline/internal/observability"
	"ecommerce-pipeline/internal/storage"
)

// TopCategoryLimit is how many categories the report shows.
const TopCategoryLimit = 3

// Generator produces reports from the warehouse stores.
type Generator struct {
	facts     storage.FactStore
	summaries storage.DailySummaryStore
	analytics storage.CustomerAnalyticsStore
	products  storage.ProductPerformanceStore
	now       func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(
	facts storage.FactStore,
	summaries storage.DailySummaryStore,
	analytics storage.CustomerAnalyticsStore,
	products storage.ProductPerformanceStore,
) *Generator {
	return &Generator{
		facts:     facts,
		summaries: summaries,
		analytics: analytics,
		products:  products,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate assembles a complete report from the warehouse.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	report := &Report{GeneratedAt: g.now()}

	factCount, err := g.facts.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count fact_orders: %w", err)
	}
	report.TotalOrderLines = factCount

	latest, err := g.facts.LatestOrderDate(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		// Empty warehouse; the report renders without a latest date.
	case err != nil:
		return nil, fmt.Errorf("latest order date: %w", err)
	default:
		report.LatestOrderDate = &latest
	}

	totals, err := g.facts.BusinessTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("business totals: %w", err)
	}
	report.Totals = *totals

	top, err := g.facts.TopCategories(ctx, TopCategoryLimit)
	if err != nil {
		return nil, fmt.Errorf("top categories: %w", err)
	}
	report.TopCategories = top

	counts, err := g.tableCounts(ctx, factCount)
	if err != nil {
		return nil, err
	}
	report.TableCounts = counts

	observability.RecordReportGenerated()
	return report, nil
}

func (g *Generator) tableCounts(ctx context.Context, factCount int) ([]TableCount, error) {
	summaryCount, err := g.summaries.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count daily_sales_summary: %w", err)
	}
	analyticsCount, err := g.analytics.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count customer_analytics: %w", err)
	}
	productCount, err := g.products.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count product_performance: %w", err)
	}

	return []TableCount{
		{Table: "fact_orders", Records: factCount},
		{Table: "daily_sales_summary", Records: summaryCount},
		{Table: "customer_analytics", Records: analyticsCount},
		{Table: "product_performance", Records: productCount},
	}, nil
}

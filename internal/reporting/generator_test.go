package reporting

import (
	"context"
	"strings"
	"testing"
	"time"

	"ecommerce-pipeline/internal/domain"
	"ecommerce-pipeline/internal/storage/memory"
)

func fixedClock() time.Time {
	return time.Date(2025, time.April, 1, 9, 0, 0, 0, time.UTC)
}

func seededGenerator(t *testing.T) *Generator {
	t.Helper()
	ctx := context.Background()

	facts := memory.NewFactStore()
	summaries := memory.NewDailySummaryStore()
	analytics := memory.NewCustomerAnalyticsStore()
	products := memory.NewProductPerformanceStore()

	electronics := "Electronics"
	books := "Books"
	margin := 40.0
	net1 := 40.0
	net2 := 20.0

	rows := []*domain.FactRow{
		{
			OrderID: "O1", CustomerID: "C1", ProductID: "P1",
			OrderDate: time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC),
			Quantity:  1, UnitPrice: 100, ItemTotal: 100,
			Status: domain.StatusCompleted, Category: &electronics,
			RevenueAfterDiscount: 100, NetProfit: &net1, ProfitMargin: &margin,
		},
		{
			OrderID: "O2", CustomerID: "C2", ProductID: "P2",
			OrderDate: time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
			Quantity:  1, UnitPrice: 50, ItemTotal: 50,
			Status: domain.StatusCompleted, Category: &books,
			RevenueAfterDiscount: 50, NetProfit: &net2, ProfitMargin: &margin,
		},
		{
			OrderID: "O3", CustomerID: "C3", ProductID: "P3",
			OrderDate: time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
			Quantity:  1, UnitPrice: 999, ItemTotal: 999,
			Status: domain.StatusCancelled, Category: &electronics,
			RevenueAfterDiscount: 999,
		},
	}
	if err := facts.Replace(ctx, rows); err != nil {
		t.Fatalf("Replace facts failed: %v", err)
	}
	if err := summaries.Replace(ctx, []*domain.DailyCategorySummary{
		{OrderDate: rows[0].OrderDate, Category: electronics, TotalRevenue: 100},
		{OrderDate: rows[1].OrderDate, Category: books, TotalRevenue: 50},
	}); err != nil {
		t.Fatalf("Replace summaries failed: %v", err)
	}
	if err := analytics.Replace(ctx, []*domain.CustomerAnalytics{
		{CustomerID: "C1"}, {CustomerID: "C2"},
	}); err != nil {
		t.Fatalf("Replace analytics failed: %v", err)
	}
	if err := products.Replace(ctx, []*domain.ProductPerformance{
		{ProductID: "P1", Category: electronics, Brand: "TechCorp"},
	}); err != nil {
		t.Fatalf("Replace products failed: %v", err)
	}

	return NewGenerator(facts, summaries, analytics, products).WithClock(fixedClock)
}

func TestGenerate_BusinessMetrics(t *testing.T) {
	gen := seededGenerator(t)

	report, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if report.GeneratedAt != fixedClock() {
		t.Errorf("GeneratedAt mismatch: %v", report.GeneratedAt)
	}
	if report.TotalOrderLines != 3 {
		t.Errorf("Expected 3 order lines, got %d", report.TotalOrderLines)
	}
	if report.LatestOrderDate == nil || report.LatestOrderDate.Day() != 31 {
		t.Errorf("LatestOrderDate mismatch: %v", report.LatestOrderDate)
	}

	// Cancelled order must not leak into completed-order totals.
	if report.Totals.TotalRevenue != 150 {
		t.Errorf("TotalRevenue mismatch: got %f, want 150", report.Totals.TotalRevenue)
	}
	if report.Totals.TotalProfit != 60 {
		t.Errorf("TotalProfit mismatch: got %f, want 60", report.Totals.TotalProfit)
	}
	if report.Totals.UniqueOrders != 2 || report.Totals.UniqueCustomers != 2 {
		t.Errorf("Distinct counts mismatch: %+v", report.Totals)
	}
}

func TestGenerate_TopCategoriesOrdering(t *testing.T) {
	gen := seededGenerator(t)

	report, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(report.TopCategories) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(report.TopCategories))
	}
	if report.TopCategories[0].Category != "Electronics" || report.TopCategories[0].Revenue != 100 {
		t.Errorf("First category mismatch: %+v", report.TopCategories[0])
	}
	if report.TopCategories[1].Category != "Books" {
		t.Errorf("Second category mismatch: %+v", report.TopCategories[1])
	}
}

func TestGenerate_EmptyWarehouse(t *testing.T) {
	gen := NewGenerator(
		memory.NewFactStore(),
		memory.NewDailySummaryStore(),
		memory.NewCustomerAnalyticsStore(),
		memory.NewProductPerformanceStore(),
	).WithClock(fixedClock)

	report, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate on empty warehouse failed: %v", err)
	}
	if report.LatestOrderDate != nil {
		t.Errorf("Expected nil latest date, got %v", report.LatestOrderDate)
	}
	if report.Totals.AvgProfitMargin != nil {
		t.Errorf("Expected nil margin on empty warehouse, got %v", report.Totals.AvgProfitMargin)
	}
}

func TestRenderText_Sections(t *testing.T) {
	gen := seededGenerator(t)

	report, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	text := RenderText(report)

	for _, want := range []string{
		"PIPELINE EXECUTION REPORT",
		"Generated: 2025-04-01 09:00:00 UTC",
		"Latest order date: 2025-03-31",
		"Total Revenue: $150.00",
		"Electronics: $100.00 (1 orders)",
		"fact_orders: 3 records",
		"customer_analytics: 2 records",
		"PIPELINE STATUS: SUCCESS",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Rendered report missing %q:\n%s", want, text)
		}
	}
}

func TestRenderText_EmptyWarehouse(t *testing.T) {
	report := &Report{GeneratedAt: fixedClock()}
	text := RenderText(report)

	if !strings.Contains(text, "Latest order date: n/a") {
		t.Errorf("Expected n/a latest date:\n%s", text)
	}
	if !strings.Contains(text, "Avg Profit Margin: n/a") {
		t.Errorf("Expected n/a margin:\n%s", text)
	}
	if !strings.Contains(text, "TOP CATEGORIES:\n  none") {
		t.Errorf("Expected empty categories marker:\n%s", text)
	}
}

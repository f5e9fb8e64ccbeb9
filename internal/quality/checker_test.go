package quality

import (
	"context"
	"strings"
	"testing"
	"time"

	"ecommerce-pipeline/internal/domain"
	"ecommerce-pipeline/internal/storage/memory"
)

type testStores struct {
	facts     *memory.FactStore
	summaries *memory.DailySummaryStore
	analytics *memory.CustomerAnalyticsStore
	products  *memory.ProductPerformanceStore
}

func newTestStores() *testStores {
	return &testStores{
		facts:     memory.NewFactStore(),
		summaries: memory.NewDailySummaryStore(),
		analytics: memory.NewCustomerAnalyticsStore(),
		products:  memory.NewProductPerformanceStore(),
	}
}

func (s *testStores) checker(clock func() time.Time) *Checker {
	return NewChecker(s.facts, s.summaries, s.analytics, s.products, WithClock(clock))
}

// populate loads a consistent warehouse: one fact row of revenue 100
// matched by one summary row, plus one analytics and performance row.
func (s *testStores) populate(t *testing.T, orderDate time.Time) {
	t.Helper()
	ctx := context.Background()

	cat := "Electronics"
	if err := s.facts.Replace(ctx, []*domain.FactRow{{
		OrderID: "O1", CustomerID: "C1", ProductID: "P1",
		OrderDate: orderDate, Quantity: 1, UnitPrice: 100, ItemTotal: 100,
		Status: domain.StatusCompleted, Category: &cat, RevenueAfterDiscount: 100,
	}}); err != nil {
		t.Fatalf("Replace facts failed: %v", err)
	}
	if err := s.summaries.Replace(ctx, []*domain.DailyCategorySummary{{
		OrderDate: orderDate, Category: cat, TotalRevenue: 100, UniqueOrders: 1,
	}}); err != nil {
		t.Fatalf("Replace summaries failed: %v", err)
	}
	if err := s.analytics.Replace(ctx, []*domain.CustomerAnalytics{{
		CustomerID: "C1", TotalSpent: 100, TotalOrders: 1,
	}}); err != nil {
		t.Fatalf("Replace analytics failed: %v", err)
	}
	if err := s.products.Replace(ctx, []*domain.ProductPerformance{{
		ProductID: "P1", Category: cat, Brand: "TechCorp", TotalRevenue: 100,
	}}); err != nil {
		t.Fatalf("Replace products failed: %v", err)
	}
}

func clockAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestChecker_AllPass(t *testing.T) {
	stores := newTestStores()
	orderDate := time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC)
	stores.populate(t, orderDate)

	checker := stores.checker(clockAt(orderDate.Add(24 * time.Hour)))
	result, err := checker.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !result.Passed() {
		t.Errorf("Expected all checks to pass, issues: %v", result.Issues())
	}
	if len(result.Checks) != 6 {
		t.Errorf("Expected 6 checks, got %d", len(result.Checks))
	}
}

func TestChecker_EmptyTableFlagged(t *testing.T) {
	stores := newTestStores()
	orderDate := time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC)
	stores.populate(t, orderDate)

	// Wipe one aggregate table.
	if err := stores.analytics.Replace(context.Background(), nil); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	checker := stores.checker(clockAt(orderDate))
	result, err := checker.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Passed() {
		t.Fatal("Expected empty customer_analytics to fail a check")
	}
	issues := result.Issues()
	if len(issues) != 1 || !strings.Contains(issues[0], "customer_analytics") {
		t.Errorf("Expected one customer_analytics issue, got %v", issues)
	}
}

func TestChecker_RevenueMismatchFlagged(t *testing.T) {
	stores := newTestStores()
	orderDate := time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC)
	stores.populate(t, orderDate)

	// Summary revenue drifts past the tolerance.
	if err := stores.summaries.Replace(context.Background(), []*domain.DailyCategorySummary{{
		OrderDate: orderDate, Category: "Electronics", TotalRevenue: 102.5, UniqueOrders: 1,
	}}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	checker := stores.checker(clockAt(orderDate))
	result, err := checker.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	issues := result.Issues()
	if len(issues) != 1 || !strings.Contains(issues[0], "revenue mismatch") {
		t.Errorf("Expected revenue mismatch issue, got %v", issues)
	}
}

func TestChecker_RevenueWithinTolerancePasses(t *testing.T) {
	stores := newTestStores()
	orderDate := time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC)
	stores.populate(t, orderDate)

	// 0.8 off is inside the rounding allowance.
	if err := stores.summaries.Replace(context.Background(), []*domain.DailyCategorySummary{{
		OrderDate: orderDate, Category: "Electronics", TotalRevenue: 100.8, UniqueOrders: 1,
	}}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	checker := stores.checker(clockAt(orderDate))
	result, err := checker.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !result.Passed() {
		t.Errorf("Expected pass within tolerance, issues: %v", result.Issues())
	}
}

func TestChecker_StaleDataFlagged(t *testing.T) {
	stores := newTestStores()
	orderDate := time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC)
	stores.populate(t, orderDate)

	checker := stores.checker(clockAt(orderDate.AddDate(0, 0, 5)))
	result, err := checker.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	issues := result.Issues()
	if len(issues) != 1 || !strings.Contains(issues[0], "days old") {
		t.Errorf("Expected staleness issue, got %v", issues)
	}
}

func TestChecker_FreshnessIgnoresWallClockZone(t *testing.T) {
	stores := newTestStores()

	// Saturday 2025-03-29 00:00 UTC, carried in a UTC-8 wall clock where
	// it reads as Friday. Checked on Sunday the data is one day old and
	// must still pass; counting from the western wall clock would call
	// it two days old and fail.
	instant := time.Date(2025, time.March, 29, 0, 0, 0, 0, time.UTC)
	stores.populate(t, instant.In(time.FixedZone("UTC-8", -8*60*60)))

	checker := stores.checker(clockAt(time.Date(2025, time.March, 30, 12, 0, 0, 0, time.UTC)))
	result, err := checker.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !result.Passed() {
		t.Errorf("Expected freshness to pass on UTC day arithmetic, issues: %v", result.Issues())
	}
}

func TestChecker_EmptyWarehouseSkipsFreshness(t *testing.T) {
	stores := newTestStores()

	checker := stores.checker(clockAt(time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC)))
	result, err := checker.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Four empty-table failures, one revenue check (0 == 0), no freshness.
	if len(result.Checks) != 5 {
		t.Errorf("Expected 5 checks on empty warehouse, got %d", len(result.Checks))
	}
	if len(result.Issues()) != 4 {
		t.Errorf("Expected 4 empty-table issues, got %v", result.Issues())
	}
}

package transform

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"ecommerce-pipeline/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testProducts() []*domain.Product {
	return []*domain.Product{
		{ProductID: "P1", Name: "Widget", Category: "Electronics", Brand: "TechCorp", Price: 10.00, Cost: 4.00, StockQuantity: 100},
		{ProductID: "P2", Name: "Gadget", Category: "Electronics", Brand: "TechCorp", Price: 50.00, Cost: 20.00, StockQuantity: 10},
	}
}

func testCustomers() []*domain.Customer {
	return []*domain.Customer{
		{CustomerID: "C1", City: "Mumbai", AgeGroup: "26-35", Segment: "Regular", SignupDate: date(2025, time.January, 1)},
	}
}

// testOrders returns the two-order worked scenario: C1 buys P1 (qty 2,
// unit 10.00, discount 1.00) and P2 (qty 1, unit 50.00, no discount).
func testOrders() []*domain.Order {
	return []*domain.Order{
		{
			OrderID: "O1", CustomerID: "C1", ProductID: "P1",
			OrderDate: date(2025, time.March, 10), Quantity: 2, UnitPrice: 10.00,
			ItemTotal: 20.00, Status: domain.StatusCompleted, PaymentMethod: "UPI",
			DiscountAmount: 1.00,
		},
		{
			OrderID: "O2", CustomerID: "C1", ProductID: "P2",
			OrderDate: date(2025, time.March, 15), Quantity: 1, UnitPrice: 50.00,
			ItemTotal: 50.00, Status: domain.StatusCompleted, PaymentMethod: "Credit Card",
			DiscountAmount: 0.00,
		},
	}
}

func TestBuildFactTable_WorkedScenario(t *testing.T) {
	facts, err := BuildFactTable(testOrders(), testProducts(), testCustomers())
	if err != nil {
		t.Fatalf("BuildFactTable failed: %v", err)
	}
	if len(facts) != 2 {
		t.Fatalf("Expected 2 fact rows, got %d", len(facts))
	}

	// Order A: item_total 20.00, net_profit (2*(10-4))-1 = 11.00
	a := facts[0]
	if a.ItemTotal != 20.00 {
		t.Errorf("ItemTotal mismatch: got %f, want 20.00", a.ItemTotal)
	}
	if a.NetProfit == nil || *a.NetProfit != 11.00 {
		t.Errorf("NetProfit mismatch: got %v, want 11.00", a.NetProfit)
	}
	if a.GrossProfit == nil || *a.GrossProfit != 12.00 {
		t.Errorf("GrossProfit mismatch: got %v, want 12.00", a.GrossProfit)
	}
	if a.RevenueAfterDiscount != 19.00 {
		t.Errorf("RevenueAfterDiscount mismatch: got %f, want 19.00", a.RevenueAfterDiscount)
	}
	if a.ProfitMargin == nil || *a.ProfitMargin != 55.00 {
		t.Errorf("ProfitMargin mismatch: got %v, want 55.00", a.ProfitMargin)
	}

	// Order B: item_total 50.00, net_profit (50-20) = 30.00
	b := facts[1]
	if b.ItemTotal != 50.00 {
		t.Errorf("ItemTotal mismatch: got %f, want 50.00", b.ItemTotal)
	}
	if b.NetProfit == nil || *b.NetProfit != 30.00 {
		t.Errorf("NetProfit mismatch: got %v, want 30.00", b.NetProfit)
	}
}

func TestBuildFactTable_RevenueIdentity(t *testing.T) {
	facts, err := BuildFactTable(testOrders(), testProducts(), testCustomers())
	if err != nil {
		t.Fatalf("BuildFactTable failed: %v", err)
	}

	for _, f := range facts {
		got := f.RevenueAfterDiscount + f.DiscountAmount
		if math.Abs(got-f.ItemTotal) > 0.01 {
			t.Errorf("revenue_after_discount + discount = %f, want %f", got, f.ItemTotal)
		}
	}
}

func TestBuildFactTable_PreservesRowCount(t *testing.T) {
	// Orders referencing unknown products/customers must still produce rows.
	orders := testOrders()
	orders = append(orders, &domain.Order{
		OrderID: "O3", CustomerID: "GHOST", ProductID: "MISSING",
		OrderDate: date(2025, time.March, 16), Quantity: 1, UnitPrice: 5.00,
		ItemTotal: 5.00, Status: domain.StatusPending, PaymentMethod: "COD",
	})

	facts, err := BuildFactTable(orders, testProducts(), testCustomers())
	if err != nil {
		t.Fatalf("BuildFactTable failed: %v", err)
	}
	if len(facts) != len(orders) {
		t.Fatalf("Expected %d fact rows, got %d", len(orders), len(facts))
	}

	orphan := facts[2]
	if orphan.Category != nil || orphan.Cost != nil {
		t.Errorf("Unmatched product should leave dimensions nil, got category=%v cost=%v", orphan.Category, orphan.Cost)
	}
	if orphan.City != nil {
		t.Errorf("Unmatched customer should leave city nil, got %v", orphan.City)
	}
	if orphan.GrossProfit != nil || orphan.NetProfit != nil {
		t.Errorf("Profit metrics should be nil without product cost")
	}
	if orphan.RevenueAfterDiscount != 5.00 {
		t.Errorf("RevenueAfterDiscount should still be derived, got %f", orphan.RevenueAfterDiscount)
	}
}

func TestBuildFactTable_CalendarAttributes(t *testing.T) {
	// 2025-03-15 is a Saturday in ISO week 11.
	facts, err := BuildFactTable(testOrders(), testProducts(), testCustomers())
	if err != nil {
		t.Fatalf("BuildFactTable failed: %v", err)
	}

	b := facts[1]
	if b.Year != 2025 || b.Month != 3 || b.Quarter != 1 {
		t.Errorf("Calendar mismatch: year=%d month=%d quarter=%d", b.Year, b.Month, b.Quarter)
	}
	if b.WeekNumber != 11 {
		t.Errorf("WeekNumber mismatch: got %d, want 11", b.WeekNumber)
	}
	if b.DayOfWeek != "Saturday" || !b.IsWeekend {
		t.Errorf("Weekend detection failed: day=%s weekend=%v", b.DayOfWeek, b.IsWeekend)
	}

	// 2025-03-10 is a Monday.
	a := facts[0]
	if a.DayOfWeek != "Monday" || a.IsWeekend {
		t.Errorf("Weekday detection failed: day=%s weekend=%v", a.DayOfWeek, a.IsWeekend)
	}
}

func TestBuildFactTable_CalendarIgnoresWallClockZone(t *testing.T) {
	// Saturday 2025-03-22 00:00 UTC reads as Friday in any zone west of
	// UTC; calendar attributes must follow the UTC instant regardless.
	instant := time.Date(2025, time.March, 22, 0, 0, 0, 0, time.UTC)
	west := instant.In(time.FixedZone("UTC-8", -8*60*60))

	orders := []*domain.Order{{
		OrderID: "O1", CustomerID: "C1", ProductID: "P1",
		OrderDate: west, Quantity: 1, UnitPrice: 10.00,
		ItemTotal: 10.00, Status: domain.StatusCompleted, PaymentMethod: "UPI",
	}}

	facts, err := BuildFactTable(orders, testProducts(), testCustomers())
	if err != nil {
		t.Fatalf("BuildFactTable failed: %v", err)
	}

	f := facts[0]
	if f.DayOfWeek != "Saturday" || !f.IsWeekend {
		t.Errorf("Weekend detection shifted with zone: day=%s weekend=%v", f.DayOfWeek, f.IsWeekend)
	}
	if f.Year != 2025 || f.Month != 3 || f.WeekNumber != 12 {
		t.Errorf("Calendar mismatch: year=%d month=%d week=%d", f.Year, f.Month, f.WeekNumber)
	}
}

func TestBuildFactTable_ZeroItemTotalMargin(t *testing.T) {
	orders := []*domain.Order{{
		OrderID: "O1", CustomerID: "C1", ProductID: "P1",
		OrderDate: date(2025, time.March, 10), Quantity: 1, UnitPrice: 0,
		ItemTotal: 0, Status: domain.StatusCompleted, PaymentMethod: "UPI",
	}}

	facts, err := BuildFactTable(orders, testProducts(), testCustomers())
	if err != nil {
		t.Fatalf("BuildFactTable failed: %v", err)
	}
	if facts[0].ProfitMargin != nil {
		t.Errorf("ProfitMargin should be nil for zero item total, got %v", *facts[0].ProfitMargin)
	}
}

func TestBuildFactTable_SchemaError(t *testing.T) {
	cases := []struct {
		name  string
		order *domain.Order
	}{
		{"missing order_id", &domain.Order{CustomerID: "C1", ProductID: "P1", OrderDate: date(2025, time.March, 1)}},
		{"missing customer_id", &domain.Order{OrderID: "O1", ProductID: "P1", OrderDate: date(2025, time.March, 1)}},
		{"missing product_id", &domain.Order{OrderID: "O1", CustomerID: "C1", OrderDate: date(2025, time.March, 1)}},
		{"missing order_date", &domain.Order{OrderID: "O1", CustomerID: "C1", ProductID: "P1"}},
		{"nil order", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildFactTable([]*domain.Order{tc.order}, nil, nil)
			if !errors.Is(err, ErrSchema) {
				t.Errorf("Expected ErrSchema, got %v", err)
			}
		})
	}
}

func TestBuildFactTable_EmptyInput(t *testing.T) {
	facts, err := BuildFactTable(nil, testProducts(), testCustomers())
	if err != nil {
		t.Fatalf("BuildFactTable failed on empty input: %v", err)
	}
	if len(facts) != 0 {
		t.Errorf("Expected empty fact table, got %d rows", len(facts))
	}
}

func TestBuildFactTable_Idempotent(t *testing.T) {
	first, err := BuildFactTable(testOrders(), testProducts(), testCustomers())
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := BuildFactTable(testOrders(), testProducts(), testCustomers())
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Fact builder is not idempotent")
	}
}

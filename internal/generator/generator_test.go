package generator

import (
	"testing"
	"time"

	"ecommerce-pipeline/internal/domain"
)

func testNow() time.Time {
	return time.Date(2025, time.April, 1, 12, 30, 0, 0, time.UTC)
}

func testConfig() Config {
	return Config{
		Days:          7,
		ProductCount:  50,
		CustomerCount: 100,
		Seed:          42,
		Now:           testNow,
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	p1, c1, o1 := New(testConfig()).Generate()
	p2, c2, o2 := New(testConfig()).Generate()

	if len(p1) != len(p2) || len(c1) != len(c2) || len(o1) != len(o2) {
		t.Fatalf("Same seed must yield same sizes: %d/%d, %d/%d, %d/%d",
			len(p1), len(p2), len(c1), len(c2), len(o1), len(o2))
	}
	for i := range o1 {
		if *o1[i] != *o2[i] {
			t.Fatalf("Order %d differs between runs: %+v vs %+v", i, o1[i], o2[i])
		}
	}

	// A different seed must change the data.
	cfg := testConfig()
	cfg.Seed = 7
	_, _, o3 := New(cfg).Generate()
	if len(o3) == len(o1) {
		same := true
		for i := range o3 {
			if *o3[i] != *o1[i] {
				same = false
				break
			}
		}
		if same {
			t.Error("Different seeds must yield different orders")
		}
	}
}

func TestGenerate_ProductInvariants(t *testing.T) {
	products, _, _ := New(testConfig()).Generate()

	if len(products) != 50 {
		t.Fatalf("Expected 50 products, got %d", len(products))
	}
	for _, p := range products {
		if p.Price < 10 || p.Price > 500 {
			t.Errorf("Product %s price out of range: %f", p.ProductID, p.Price)
		}
		if p.Cost < p.Price*0.3-0.01 || p.Cost > p.Price*0.7+0.01 {
			t.Errorf("Product %s cost outside 30-70%% of price: price=%f cost=%f", p.ProductID, p.Price, p.Cost)
		}
		if p.StockQuantity < 0 || p.StockQuantity >= 1000 {
			t.Errorf("Product %s stock out of range: %d", p.ProductID, p.StockQuantity)
		}
	}
	if products[0].ProductID != "PROD000000" {
		t.Errorf("Unexpected product ID format: %s", products[0].ProductID)
	}
}

func TestGenerate_CustomerInvariants(t *testing.T) {
	_, customers, _ := New(testConfig()).Generate()

	if len(customers) != 100 {
		t.Fatalf("Expected 100 customers, got %d", len(customers))
	}
	now := testNow()
	for _, c := range customers {
		if c.SignupDate.After(now) {
			t.Errorf("Customer %s signup date in the future: %v", c.CustomerID, c.SignupDate)
		}
		switch c.Segment {
		case domain.SegmentPremium, domain.SegmentRegular, domain.SegmentBudget:
		default:
			t.Errorf("Customer %s has unknown segment %q", c.CustomerID, c.Segment)
		}
	}
	if customers[42].CustomerID != "CUST000042" {
		t.Errorf("Unexpected customer ID format: %s", customers[42].CustomerID)
	}
}

func TestGenerate_OrderInvariants(t *testing.T) {
	products, customers, orders := New(testConfig()).Generate()

	if len(orders) == 0 {
		t.Fatal("Expected orders to be generated")
	}

	productIDs := make(map[string]bool, len(products))
	for _, p := range products {
		productIDs[p.ProductID] = true
	}
	customerIDs := make(map[string]bool, len(customers))
	for _, c := range customers {
		customerIDs[c.CustomerID] = true
	}

	now := testNow()
	earliest := time.Date(2025, time.March, 25, 0, 0, 0, 0, time.UTC)
	lineItems := make(map[string]int)

	for _, o := range orders {
		if !productIDs[o.ProductID] {
			t.Fatalf("Order %s references unknown product %s", o.OrderID, o.ProductID)
		}
		if !customerIDs[o.CustomerID] {
			t.Fatalf("Order %s references unknown customer %s", o.OrderID, o.CustomerID)
		}
		if o.OrderDate.Before(earliest) || !o.OrderDate.Before(now) {
			t.Errorf("Order %s date out of range: %v", o.OrderID, o.OrderDate)
		}
		if o.Quantity < 1 || o.Quantity > 3 {
			t.Errorf("Order %s quantity out of range: %d", o.OrderID, o.Quantity)
		}
		if o.DiscountAmount < 0 || o.DiscountAmount > o.ItemTotal*0.2+0.01 {
			t.Errorf("Order %s discount out of bounds: total=%f discount=%f", o.OrderID, o.ItemTotal, o.DiscountAmount)
		}
		switch o.Status {
		case domain.StatusCompleted, domain.StatusPending, domain.StatusCancelled:
		default:
			t.Errorf("Order %s has unknown status %q", o.OrderID, o.Status)
		}
		lineItems[o.OrderID]++
	}

	for id, n := range lineItems {
		if n < 1 || n > 4 {
			t.Errorf("Order %s has %d line items, want 1-4", id, n)
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	g := New(Config{})
	if g.cfg.Days != DefaultDays || g.cfg.ProductCount != DefaultProductCount ||
		g.cfg.CustomerCount != DefaultCustomerCount || g.cfg.Seed != DefaultSeed {
		t.Errorf("Zero config must fall back to defaults: %+v", g.cfg)
	}
	if g.cfg.Now == nil {
		t.Error("Now must default to time.Now")
	}
}

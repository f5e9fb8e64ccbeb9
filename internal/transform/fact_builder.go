// Package transform implements the dimensional-modeling core of the
// pipeline: the fact table builder and the three aggregate builders
// deriving from it. All builders are pure functions over immutable
// input slices; each run is stateless and idempotent.
package transform

import (
	"fmt"
	"time"

	"ecommerce-pipeline/internal/domain"
)

// BuildFactTable joins order line items with product and customer
// reference data and derives per-line-item business metrics and
// calendar attributes.
//
// Join policy: left join on product_id and customer_id. Unmatched keys
// propagate as nil dimension fields; the output always has exactly one
// row per input order line.
//
// Returns ErrSchema if a row is missing a required field.
func BuildFactTable(orders []*domain.Order, products []*domain.Product, customers []*domain.Customer) ([]*domain.FactRow, error) {
	productsByID := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		productsByID[p.ProductID] = p
	}
	customersByID := make(map[string]*domain.Customer, len(customers))
	for _, c := range customers {
		customersByID[c.CustomerID] = c
	}

	facts := make([]*domain.FactRow, 0, len(orders))
	for i, o := range orders {
		if err := validateOrder(o); err != nil {
			return nil, fmt.Errorf("order row %d: %w", i, err)
		}

		row := &domain.FactRow{
			OrderID:        o.OrderID,
			CustomerID:     o.CustomerID,
			ProductID:      o.ProductID,
			OrderDate:      o.OrderDate,
			Quantity:       o.Quantity,
			UnitPrice:      o.UnitPrice,
			ItemTotal:      o.ItemTotal,
			Status:         o.Status,
			PaymentMethod:  o.PaymentMethod,
			DiscountAmount: o.DiscountAmount,
		}

		if p, ok := productsByID[o.ProductID]; ok {
			row.ProductName = ptr(p.Name)
			row.Category = ptr(p.Category)
			row.Brand = ptr(p.Brand)
			row.Cost = ptr(p.Cost)
		}
		if c, ok := customersByID[o.CustomerID]; ok {
			row.City = ptr(c.City)
			row.AgeGroup = ptr(c.AgeGroup)
			row.Segment = ptr(c.Segment)
		}

		deriveMetrics(row)
		deriveCalendar(row)

		facts = append(facts, row)
	}

	return facts, nil
}

// validateOrder checks the fields every downstream metric depends on.
func validateOrder(o *domain.Order) error {
	if o == nil {
		return fmt.Errorf("%w: nil order", ErrSchema)
	}
	if o.OrderID == "" {
		return fmt.Errorf("%w: missing order_id", ErrSchema)
	}
	if o.CustomerID == "" {
		return fmt.Errorf("%w: missing customer_id", ErrSchema)
	}
	if o.ProductID == "" {
		return fmt.Errorf("%w: missing product_id", ErrSchema)
	}
	if o.OrderDate.IsZero() {
		return fmt.Errorf("%w: missing order_date", ErrSchema)
	}
	return nil
}

// deriveMetrics computes row-wise business metrics. Profit metrics need
// the product cost and stay nil when the product join missed. The
// margin is nil when ItemTotal is zero (division undefined).
func deriveMetrics(row *domain.FactRow) {
	row.RevenueAfterDiscount = round2(row.ItemTotal - row.DiscountAmount)

	if row.Cost == nil {
		return
	}

	gross := (row.UnitPrice - *row.Cost) * float64(row.Quantity)
	net := gross - row.DiscountAmount
	row.GrossProfit = ptr(round2(gross))
	row.NetProfit = ptr(round2(net))

	if row.ItemTotal != 0 {
		row.ProfitMargin = ptr(round2(net / row.ItemTotal * 100))
	}
}

// deriveCalendar fills the calendar attributes from OrderDate. Dates
// are UTC-midnight grain, but scanned timestamps can carry a local
// wall clock, so normalize before reading calendar fields.
func deriveCalendar(row *domain.FactRow) {
	d := row.OrderDate.UTC()
	row.Year = d.Year()
	row.Month = int(d.Month())
	row.Quarter = (int(d.Month())-1)/3 + 1
	_, row.WeekNumber = d.ISOWeek()
	row.DayOfWeek = d.Weekday().String()
	row.IsWeekend = d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
}

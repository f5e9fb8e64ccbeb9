package domain

import "time"

// FactRow is one line item of the fact_orders table: the order line
// joined with product and customer reference data plus derived business
// metrics and calendar attributes. Joined attributes are nil when the
// foreign key had no match (left-join semantics preserve the row).
type FactRow struct {
	// Order line
	OrderID        string
	CustomerID     string
	ProductID      string
	OrderDate      time.Time
	Quantity       int
	UnitPrice      float64
	ItemTotal      float64
	Status         string
	PaymentMethod  string
	DiscountAmount float64

	// Product dimensions (nil on unmatched product)
	ProductName *string
	Category    *string
	Brand       *string
	Cost        *float64

	// Customer dimensions (nil on unmatched customer)
	City     *string
	AgeGroup *string
	Segment  *string

	// Derived metrics. GrossProfit and NetProfit require the product
	// cost and are nil when the product join missed. ProfitMargin is
	// nil when ItemTotal is zero (division undefined).
	GrossProfit          *float64 // (UnitPrice - Cost) * Quantity
	NetProfit            *float64 // GrossProfit - DiscountAmount
	RevenueAfterDiscount float64  // ItemTotal - DiscountAmount
	ProfitMargin         *float64 // NetProfit / ItemTotal * 100

	// Calendar attributes derived from OrderDate
	Year       int
	Month      int
	Quarter    int
	WeekNumber int    // ISO week
	DayOfWeek  string // English weekday name
	IsWeekend  bool   // Saturday or Sunday
}

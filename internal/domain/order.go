package domain

import "time"

// Order represents one line item of an order: one product within one
// order. Multiple rows may share an OrderID.
type Order struct {
	OrderID        string
	CustomerID     string
	ProductID      string
	OrderDate      time.Time // date-grained, UTC midnight
	Quantity       int       // positive
	UnitPrice      float64   // >= 0
	ItemTotal      float64   // Quantity * UnitPrice
	Status         string    // completed | pending | cancelled
	PaymentMethod  string
	DiscountAmount float64 // 0 <= d <= ItemTotal
}

// Order status values.
const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
	StatusCancelled = "cancelled"
)

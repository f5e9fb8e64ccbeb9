package domain

import "time"

// Customer represents a row of the customers master dataset.
// Corresponds to the dim_customers table in the warehouse.
type Customer struct {
	CustomerID string // PRIMARY KEY, e.g. CUST000042
	Name       string
	Email      string
	City       string
	AgeGroup   string // 18-25 | 26-35 | 36-45 | 46-55 | 55+
	SignupDate time.Time
	Segment    string // Premium | Regular | Budget
}

// Customer master segments (assigned at signup, distinct from LTV segments).
const (
	SegmentPremium = "Premium"
	SegmentRegular = "Regular"
	SegmentBudget  = "Budget"
)

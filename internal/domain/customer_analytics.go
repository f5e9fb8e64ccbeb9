package domain

import "time"

// CustomerAnalytics is one row of the customer_analytics table: fact
// rows aggregated by customer, joined with the customer master record.
type CustomerAnalytics struct {
	CustomerID string

	TotalSpent           float64
	AvgOrderValue        float64 // mean line-item total
	TotalOrders          int     // line item count
	TotalProfitGenerated float64
	FirstOrderDate       time.Time
	LastOrderDate        time.Time
	UniqueOrders         int // distinct order IDs
	TotalItemsBought     int

	// Customer master attributes (nil on unmatched customer)
	City       *string
	AgeGroup   *string
	Segment    *string
	SignupDate *time.Time

	// DaysToFirstOrder is nil when the customer join missed (signup
	// date unknown). CustomerLifetimeDays is always defined.
	DaysToFirstOrder     *int
	CustomerLifetimeDays int

	LTVSegment string // Low | Medium | High | Premium
}

// Lifetime-value segments assigned by quartile of total spend.
const (
	LTVSegmentLow     = "Low"
	LTVSegmentMedium  = "Medium"
	LTVSegmentHigh    = "High"
	LTVSegmentPremium = "Premium"
)

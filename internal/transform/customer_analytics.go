package transform

import (
	"sort"
	"time"

	"ecommerce-pipeline/internal/domain"
)

// BuildCustomerAnalytics groups the fact table by customer, computes
// per-customer aggregates, left-joins customer master attributes, and
// assigns a quartile-based lifetime-value segment.
//
// Quartile boundaries are the 25th/50th/75th percentiles of total spend
// across the customers in the grouped result, computed with linear
// interpolation over the sorted values. A spend at or below a boundary
// falls into the lower bucket.
//
// An empty fact table yields an empty result. With 1-3 distinct
// customers the result is undefined and ErrInsufficientData is
// returned; no fallback labels are produced.
func BuildCustomerAnalytics(facts []*domain.FactRow, customers []*domain.Customer) ([]*domain.CustomerAnalytics, error) {
	if len(facts) == 0 {
		return nil, nil
	}

	customersByID := make(map[string]*domain.Customer, len(customers))
	for _, c := range customers {
		customersByID[c.CustomerID] = c
	}

	type groupAcc struct {
		row    *domain.CustomerAnalytics
		orders map[string]struct{}
	}

	groups := make(map[string]*groupAcc)
	var ids []string

	for _, f := range facts {
		acc, ok := groups[f.CustomerID]
		if !ok {
			acc = &groupAcc{
				row: &domain.CustomerAnalytics{
					CustomerID:     f.CustomerID,
					FirstOrderDate: f.OrderDate,
					LastOrderDate:  f.OrderDate,
				},
				orders: make(map[string]struct{}),
			}
			groups[f.CustomerID] = acc
			ids = append(ids, f.CustomerID)
		}

		row := acc.row
		row.TotalSpent += f.ItemTotal
		row.TotalOrders++
		if f.NetProfit != nil {
			row.TotalProfitGenerated += *f.NetProfit
		}
		if f.OrderDate.Before(row.FirstOrderDate) {
			row.FirstOrderDate = f.OrderDate
		}
		if f.OrderDate.After(row.LastOrderDate) {
			row.LastOrderDate = f.OrderDate
		}
		row.TotalItemsBought += f.Quantity
		acc.orders[f.OrderID] = struct{}{}
	}

	if len(ids) < 4 {
		return nil, ErrInsufficientData
	}

	sort.Strings(ids)

	rows := make([]*domain.CustomerAnalytics, 0, len(ids))
	totals := make([]float64, 0, len(ids))
	for _, id := range ids {
		acc := groups[id]
		row := acc.row
		row.TotalSpent = round2(row.TotalSpent)
		row.AvgOrderValue = round2(row.TotalSpent / float64(row.TotalOrders))
		row.TotalProfitGenerated = round2(row.TotalProfitGenerated)
		row.UniqueOrders = len(acc.orders)
		row.CustomerLifetimeDays = daysBetween(row.FirstOrderDate, row.LastOrderDate)

		if c, ok := customersByID[id]; ok {
			row.City = ptr(c.City)
			row.AgeGroup = ptr(c.AgeGroup)
			row.Segment = ptr(c.Segment)
			signup := c.SignupDate
			row.SignupDate = &signup
			row.DaysToFirstOrder = ptr(daysBetween(c.SignupDate, row.FirstOrderDate))
		}

		rows = append(rows, row)
		totals = append(totals, row.TotalSpent)
	}

	assignLTVSegments(rows, totals)

	return rows, nil
}

// assignLTVSegments labels each row by quartile of total spend.
func assignLTVSegments(rows []*domain.CustomerAnalytics, totals []float64) {
	sorted := make([]float64, len(totals))
	copy(sorted, totals)
	sort.Float64s(sorted)

	q1 := percentile(sorted, 0.25)
	q2 := percentile(sorted, 0.50)
	q3 := percentile(sorted, 0.75)

	for _, row := range rows {
		switch {
		case row.TotalSpent <= q1:
			row.LTVSegment = domain.LTVSegmentLow
		case row.TotalSpent <= q2:
			row.LTVSegment = domain.LTVSegmentMedium
		case row.TotalSpent <= q3:
			row.LTVSegment = domain.LTVSegmentHigh
		default:
			row.LTVSegment = domain.LTVSegmentPremium
		}
	}
}

// daysBetween returns whole days from a to b. Negative when b precedes a.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

package transform

import (
	"sort"

	"ecommerce-pipeline/internal/domain"
)

// BuildDailySummary groups the fact table by (order date, category) and
// emits one summary row per group. Rows with an unmatched product fall
// into the empty-string category. An empty fact table yields an empty
// result. Output is sorted by (date, category) for deterministic runs;
// callers must not depend on that order.
func BuildDailySummary(facts []*domain.FactRow) []*domain.DailyCategorySummary {
	type groupKey struct {
		date     int64 // unix seconds of the date
		category string
	}
	type groupAcc struct {
		row       *domain.DailyCategorySummary
		orders    map[string]struct{}
		customers map[string]struct{}
	}

	groups := make(map[groupKey]*groupAcc)
	var keys []groupKey

	for _, f := range facts {
		category := ""
		if f.Category != nil {
			category = *f.Category
		}
		key := groupKey{date: f.OrderDate.Unix(), category: category}

		acc, ok := groups[key]
		if !ok {
			acc = &groupAcc{
				row: &domain.DailyCategorySummary{
					OrderDate: f.OrderDate,
					Category:  category,
				},
				orders:    make(map[string]struct{}),
				customers: make(map[string]struct{}),
			}
			groups[key] = acc
			keys = append(keys, key)
		}

		acc.row.TotalRevenue += f.ItemTotal
		acc.row.RevenueAfterDiscount += f.RevenueAfterDiscount
		if f.NetProfit != nil {
			acc.row.NetProfit += *f.NetProfit
		}
		if f.GrossProfit != nil {
			acc.row.GrossProfit += *f.GrossProfit
		}
		acc.row.TotalDiscount += f.DiscountAmount
		acc.row.TotalQuantity += f.Quantity
		acc.orders[f.OrderID] = struct{}{}
		acc.customers[f.CustomerID] = struct{}{}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].date != keys[j].date {
			return keys[i].date < keys[j].date
		}
		return keys[i].category < keys[j].category
	})

	summaries := make([]*domain.DailyCategorySummary, 0, len(keys))
	for _, key := range keys {
		acc := groups[key]
		row := acc.row
		row.TotalRevenue = round2(row.TotalRevenue)
		row.RevenueAfterDiscount = round2(row.RevenueAfterDiscount)
		row.NetProfit = round2(row.NetProfit)
		row.GrossProfit = round2(row.GrossProfit)
		row.TotalDiscount = round2(row.TotalDiscount)
		row.UniqueOrders = len(acc.orders)
		row.UniqueCustomers = len(acc.customers)

		if row.TotalRevenue != 0 {
			row.ProfitMargin = ptr(round2(row.NetProfit / row.TotalRevenue * 100))
		}
		if row.UniqueOrders != 0 {
			row.AverageOrderValue = ptr(round2(row.TotalRevenue / float64(row.UniqueOrders)))
		}

		summaries = append(summaries, row)
	}

	return summaries
}

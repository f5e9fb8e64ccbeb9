package transform

import (
	"sort"

	"ecommerce-pipeline/internal/domain"
)

// BuildProductPerformance groups the fact table by (product, category,
// brand), computes per-product aggregates, left-joins product master
// attributes, and assigns dense ranks by revenue and profit descending.
// Revenue and profit are rounded to currency precision before rank
// comparison so rounding noise cannot split a tie.
func BuildProductPerformance(facts []*domain.FactRow, products []*domain.Product) []*domain.ProductPerformance {
	productsByID := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		productsByID[p.ProductID] = p
	}

	type groupKey struct {
		productID string
		category  string
		brand     string
	}
	type groupAcc struct {
		row       *domain.ProductPerformance
		orders    map[string]struct{}
		customers map[string]struct{}
	}

	groups := make(map[groupKey]*groupAcc)
	var keys []groupKey

	for _, f := range facts {
		category, brand := "", ""
		if f.Category != nil {
			category = *f.Category
		}
		if f.Brand != nil {
			brand = *f.Brand
		}
		key := groupKey{productID: f.ProductID, category: category, brand: brand}

		acc, ok := groups[key]
		if !ok {
			acc = &groupAcc{
				row: &domain.ProductPerformance{
					ProductID: f.ProductID,
					Category:  category,
					Brand:     brand,
				},
				orders:    make(map[string]struct{}),
				customers: make(map[string]struct{}),
			}
			groups[key] = acc
			keys = append(keys, key)
		}

		acc.row.TotalRevenue += f.ItemTotal
		if f.NetProfit != nil {
			acc.row.TotalProfit += *f.NetProfit
		}
		acc.row.TotalQuantitySold += f.Quantity
		acc.orders[f.OrderID] = struct{}{}
		acc.customers[f.CustomerID] = struct{}{}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].productID != keys[j].productID {
			return keys[i].productID < keys[j].productID
		}
		if keys[i].category != keys[j].category {
			return keys[i].category < keys[j].category
		}
		return keys[i].brand < keys[j].brand
	})

	rows := make([]*domain.ProductPerformance, 0, len(keys))
	for _, key := range keys {
		acc := groups[key]
		row := acc.row
		row.TotalRevenue = round2(row.TotalRevenue)
		row.TotalProfit = round2(row.TotalProfit)
		row.UniqueOrders = len(acc.orders)
		row.UniqueCustomers = len(acc.customers)

		if p, ok := productsByID[row.ProductID]; ok {
			row.ProductName = ptr(p.Name)
			row.Price = ptr(p.Price)
			row.Cost = ptr(p.Cost)
			row.StockQuantity = ptr(p.StockQuantity)
		}

		if row.TotalRevenue != 0 {
			row.ProfitMargin = ptr(round2(row.TotalProfit / row.TotalRevenue * 100))
		}
		if row.TotalQuantitySold != 0 {
			row.AvgSellingPrice = ptr(round2(row.TotalRevenue / float64(row.TotalQuantitySold)))
		}
		if row.StockQuantity != nil && *row.StockQuantity != 0 {
			row.InventoryTurnover = ptr(round2(float64(row.TotalQuantitySold) / float64(*row.StockQuantity)))
		}

		rows = append(rows, row)
	}

	assignDenseRanks(rows, func(r *domain.ProductPerformance) float64 { return r.TotalRevenue },
		func(r *domain.ProductPerformance, rank int) { r.RevenueRank = rank })
	assignDenseRanks(rows, func(r *domain.ProductPerformance) float64 { return r.TotalProfit },
		func(r *domain.ProductPerformance, rank int) { r.ProfitRank = rank })

	return rows
}

// assignDenseRanks ranks rows by value descending. Equal values share a
// rank; the next distinct value receives the immediately following
// integer. Values are already currency-rounded by the caller.
func assignDenseRanks(rows []*domain.ProductPerformance, value func(*domain.ProductPerformance) float64, set func(*domain.ProductPerformance, int)) {
	if len(rows) == 0 {
		return
	}

	ordered := make([]*domain.ProductPerformance, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		return value(ordered[i]) > value(ordered[j])
	})

	rank := 1
	prev := value(ordered[0])
	set(ordered[0], rank)
	for _, row := range ordered[1:] {
		v := value(row)
		if v != prev {
			rank++
			prev = v
		}
		set(row, rank)
	}
}

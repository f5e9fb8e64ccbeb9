package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"ecommerce-pipeline/internal/domain"
	"ecommerce-pipeline/internal/storage"
)

// FactStore is an in-memory implementation of storage.FactStore.
type FactStore struct {
	mu   sync.RWMutex
	rows []*domain.FactRow
}

// NewFactStore creates a new in-memory fact store.
func NewFactStore() *FactStore {
	return &FactStore{}
}

var _ storage.FactStore = (*FactStore)(nil)

// Replace truncates the table and writes the given rows.
func (s *FactStore) Replace(_ context.Context, rows []*domain.FactRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = make([]*domain.FactRow, len(rows))
	for i, r := range rows {
		c := *r
		s.rows[i] = &c
	}
	return nil
}

// Count returns the number of rows.
func (s *FactStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows), nil
}

// RevenueTotal returns the sum of item_total over all rows.
func (s *FactStore) RevenueTotal(_ context.Context) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, r := range s.rows {
		total += r.ItemTotal
	}
	return total, nil
}

// LatestOrderDate returns the most recent order date.
// Returns ErrNotFound when the table is empty.
func (s *FactStore) LatestOrderDate(_ context.Context) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.rows) == 0 {
		return time.Time{}, storage.ErrNotFound
	}
	latest := s.rows[0].OrderDate
	for _, r := range s.rows[1:] {
		if r.OrderDate.After(latest) {
			latest = r.OrderDate
		}
	}
	return latest, nil
}

// BusinessTotals computes completed-order rollups for reporting.
func (s *FactStore) BusinessTotals(_ context.Context) (*domain.BusinessTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := &domain.BusinessTotals{}
	customers := make(map[string]struct{})
	products := make(map[string]struct{})
	orders := make(map[string]struct{})

	var marginSum float64
	var marginCount int

	for _, r := range s.rows {
		if r.Status != domain.StatusCompleted {
			continue
		}
		totals.TotalRevenue += r.RevenueAfterDiscount
		if r.NetProfit != nil {
			totals.TotalProfit += *r.NetProfit
		}
		if r.ProfitMargin != nil {
			marginSum += *r.ProfitMargin
			marginCount++
		}
		customers[r.CustomerID] = struct{}{}
		products[r.ProductID] = struct{}{}
		orders[r.OrderID] = struct{}{}
	}

	totals.UniqueCustomers = len(customers)
	totals.UniqueProducts = len(products)
	totals.UniqueOrders = len(orders)
	if marginCount > 0 {
		avg := marginSum / float64(marginCount)
		totals.AvgProfitMargin = &avg
	}

	return totals, nil
}

// TopCategories returns up to limit categories by completed-order
// revenue, descending.
func (s *FactStore) TopCategories(_ context.Context, limit int) ([]*domain.CategoryRevenue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byCategory := make(map[string]*domain.CategoryRevenue)
	for _, r := range s.rows {
		if r.Status != domain.StatusCompleted || r.Category == nil {
			continue
		}
		cr, ok := byCategory[*r.Category]
		if !ok {
			cr = &domain.CategoryRevenue{Category: *r.Category}
			byCategory[*r.Category] = cr
		}
		cr.Revenue += r.RevenueAfterDiscount
		cr.Orders++
	}

	result := make([]*domain.CategoryRevenue, 0, len(byCategory))
	for _, cr := range byCategory {
		result = append(result, cr)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Revenue != result[j].Revenue {
			return result[i].Revenue > result[j].Revenue
		}
		return result[i].Category < result[j].Category
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

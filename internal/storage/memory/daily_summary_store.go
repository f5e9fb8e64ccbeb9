package memory

import (
	"context"
	"sync"

	"ecommerce-pipeline/internal/domain"
	"ecommerce-pipeline/internal/storage"
)

// DailySummaryStore is an in-memory implementation of storage.DailySummaryStore.
type DailySummaryStore struct {
	mu   sync.RWMutex
	rows []*domain.DailyCategorySummary
}

// NewDailySummaryStore creates a new in-memory daily summary store.
func NewDailySummaryStore() *DailySummaryStore {
	return &DailySummaryStore{}
}

var _ storage.DailySummaryStore = (*DailySummaryStore)(nil)

// Replace truncates the table and writes the given rows.
func (s *DailySummaryStore) Replace(_ context.Context, rows []*domain.DailyCategorySummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = make([]*domain.DailyCategorySummary, len(rows))
	for i, r := range rows {
		c := *r
		s.rows[i] = &c
	}
	return nil
}

// Count returns the number of rows.
func (s *DailySummaryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows), nil
}

// RevenueTotal returns the sum of total_revenue over all rows.
func (s *DailySummaryStore) RevenueTotal(_ context.Context) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, r := range s.rows {
		total += r.TotalRevenue
	}
	return total, nil
}

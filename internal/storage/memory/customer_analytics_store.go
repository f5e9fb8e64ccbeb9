package memory

import (
	"context"
	"sync"

	"ecommerce-pipeline/internal/domain"
	"ecommerce-pipeline/internal/storage"
)

// CustomerAnalyticsStore is an in-memory implementation of
// storage.CustomerAnalyticsStore.
type CustomerAnalyticsStore struct {
	mu   sync.RWMutex
	rows []*domain.CustomerAnalytics
}

// NewCustomerAnalyticsStore creates a new in-memory customer analytics store.
func NewCustomerAnalyticsStore() *CustomerAnalyticsStore {
	return &CustomerAnalyticsStore{}
}

var _ storage.CustomerAnalyticsStore = (*CustomerAnalyticsStore)(nil)

// Replace truncates the table and writes the given rows.
func (s *CustomerAnalyticsStore) Replace(_ context.Context, rows []*domain.CustomerAnalytics) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = make([]*domain.CustomerAnalytics, len(rows))
	for i, r := range rows {
		c := *r
		s.rows[i] = &c
	}
	return nil
}

// Count returns the number of rows.
func (s *CustomerAnalyticsStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows), nil
}

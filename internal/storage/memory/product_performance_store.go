package memory

import (
	"context"
	"sync"

	"ecommerce-pipeline/internal/domain"
	"ecommerce-pipeline/internal/storage"
)

// ProductPerformanceStore is an in-memory implementation of
// storage.ProductPerformanceStore.
type ProductPerformanceStore struct {
	mu   sync.RWMutex
	rows []*domain.ProductPerformance
}

// NewProductPerformanceStore creates a new in-memory product performance store.
func NewProductPerformanceStore() *ProductPerformanceStore {
	return &ProductPerformanceStore{}
}

var _ storage.ProductPerformanceStore = (*ProductPerformanceStore)(nil)

// Replace truncates the table and writes the given rows.
func (s *ProductPerformanceStore) Replace(_ context.Context, rows []*domain.ProductPerformance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = make([]*domain.ProductPerformance, len(rows))
	for i, r := range rows {
		c := *r
		s.rows[i] = &c
	}
	return nil
}

// Count returns the number of rows.
func (s *ProductPerformanceStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows), nil
}

package memory

import (
	"context"
	"sync"

	"ecommerce-pipeline/internal/domain"
	"ecommerce-pipeline/internal/storage"
)

// DimensionStore is an in-memory implementation of storage.DimensionStore.
type DimensionStore struct {
	mu        sync.RWMutex
	products  []*domain.Product
	customers []*domain.Customer
}

// NewDimensionStore creates a new in-memory dimension store.
func NewDimensionStore() *DimensionStore {
	return &DimensionStore{}
}

var _ storage.DimensionStore = (*DimensionStore)(nil)

// ReplaceProducts truncates dim_products and writes the given rows.
func (s *DimensionStore) ReplaceProducts(_ context.Context, products []*domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = copyProducts(products)
	return nil
}

// ReplaceCustomers truncates dim_customers and writes the given rows.
func (s *DimensionStore) ReplaceCustomers(_ context.Context, customers []*domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = copyCustomers(customers)
	return nil
}

// ProductCount returns the number of dim_products rows.
func (s *DimensionStore) ProductCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products), nil
}

// CustomerCount returns the number of dim_customers rows.
func (s *DimensionStore) CustomerCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.customers), nil
}

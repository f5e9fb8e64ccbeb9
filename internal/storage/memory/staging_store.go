package memory

import (
	"context"
	"sync"

	"ecommerce-pipeline/internal/domain"
	"ecommerce-pipeline/internal/storage"
)

// StagingStore is an in-memory implementation of storage.StagingStore.
type StagingStore struct {
	mu        sync.RWMutex
	products  []*domain.Product
	customers []*domain.Customer
	orders    []*domain.Order
}

// NewStagingStore creates a new in-memory staging store.
func NewStagingStore() *StagingStore {
	return &StagingStore{}
}

var _ storage.StagingStore = (*StagingStore)(nil)

// ReplaceProducts overwrites the products dataset.
func (s *StagingStore) ReplaceProducts(_ context.Context, products []*domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = copyProducts(products)
	return nil
}

// ReplaceCustomers overwrites the customers dataset.
func (s *StagingStore) ReplaceCustomers(_ context.Context, customers []*domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = copyCustomers(customers)
	return nil
}

// ReplaceOrders overwrites the orders dataset.
func (s *StagingStore) ReplaceOrders(_ context.Context, orders []*domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = make([]*domain.Order, len(orders))
	for i, o := range orders {
		c := *o
		s.orders[i] = &c
	}
	return nil
}

// Products retrieves the products dataset.
func (s *StagingStore) Products(_ context.Context) ([]*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyProducts(s.products), nil
}

// Customers retrieves the customers dataset.
func (s *StagingStore) Customers(_ context.Context) ([]*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyCustomers(s.customers), nil
}

// Orders retrieves the orders dataset.
func (s *StagingStore) Orders(_ context.Context) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*domain.Order, len(s.orders))
	for i, o := range s.orders {
		c := *o
		result[i] = &c
	}
	return result, nil
}

func copyProducts(products []*domain.Product) []*domain.Product {
	result := make([]*domain.Product, len(products))
	for i, p := range products {
		c := *p
		result[i] = &c
	}
	return result
}

func copyCustomers(customers []*domain.Customer) []*domain.Customer {
	result := make([]*domain.Customer, len(customers))
	for i, c := range customers {
		cp := *c
		result[i] = &cp
	}
	return result
}

package clickhouse

import (
	"context"
	"fmt"

	"ecommerce-pipeline/internal/domain"
	"ecommerce-pipeline/internal/storage"
)

// DimensionStore implements storage.DimensionStore using ClickHouse.
type DimensionStore struct {
	conn *Conn
}

// NewDimensionStore creates a new DimensionStore.
func NewDimensionStore(conn *Conn) *DimensionStore {
	return &DimensionStore{conn: conn}
}

// Compile-time interface check.
var _ storage.DimensionStore = (*DimensionStore)(nil)

// ReplaceProducts truncates dim_products and writes the given rows.
func (s *DimensionStore) ReplaceProducts(ctx context.Context, products []*domain.Product) error {
	if err := s.conn.Exec(ctx, `TRUNCATE TABLE dim_products`); err != nil {
		return fmt.Errorf("truncate dim_products: %w", err)
	}
	if len(products) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO dim_products (
			product_id, name, category, brand, price, cost, stock_quantity, created_date
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, p := range products {
		err = batch.Append(
			p.ProductID, p.Name, p.Category, p.Brand, p.Price, p.Cost, int32(p.StockQuantity), p.CreatedDate,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// ReplaceCustomers truncates dim_customers and writes the given rows.
func (s *DimensionStore) ReplaceCustomers(ctx context.Context, customers []*domain.Customer) error {
	if err := s.conn.Exec(ctx, `TRUNCATE TABLE dim_customers`); err != nil {
		return fmt.Errorf("truncate dim_customers: %w", err)
	}
	if len(customers) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO dim_customers (
			customer_id, name, email, city, age_group, signup_date, customer_segment
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, c := range customers {
		err = batch.Append(
			c.CustomerID, c.Name, c.Email, c.City, c.AgeGroup, c.SignupDate, c.Segment,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// ProductCount returns the number of dim_products rows.
func (s *DimensionStore) ProductCount(ctx context.Context) (int, error) {
	var count uint64
	err := s.conn.QueryRow(ctx, `SELECT count(*) FROM dim_products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count dim_products: %w", err)
	}
	return int(count), nil
}

// CustomerCount returns the number of dim_customers rows.
func (s *DimensionStore) CustomerCount(ctx context.Context) (int, error) {
	var count uint64
	err := s.conn.QueryRow(ctx, `SELECT count(*) FROM dim_customers`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count dim_customers: %w", err)
	}
	return int(count), nil
}

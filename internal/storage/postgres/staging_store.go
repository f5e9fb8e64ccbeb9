package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"ecommerce-pipeline/internal/domain"
	"ecommerce-pipeline/internal/storage"
)

// StagingStore implements storage.StagingStore using PostgreSQL. The
// staging zone holds the raw datasets between extract and transform;
// each Replace truncates and rewrites its table inside one transaction.
type StagingStore struct {
	pool *Pool
}

// NewStagingStore creates a new StagingStore.
func NewStagingStore(pool *Pool) *StagingStore {
	return &StagingStore{pool: pool}
}

// Compile-time interface check.
var _ storage.StagingStore = (*StagingStore)(nil)

// ReplaceProducts overwrites the raw_products table.
func (s *StagingStore) ReplaceProducts(ctx context.Context, products []*domain.Product) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE raw_products`); err != nil {
		return fmt.Errorf("truncate raw_products: %w", err)
	}

	query := `
		INSERT INTO raw_products (
			product_id, name, category, brand, price, cost, stock_quantity, created_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, p := range products {
		_, err := tx.Exec(ctx, query,
			p.ProductID, p.Name, p.Category, p.Brand, p.Price, p.Cost, p.StockQuantity, p.CreatedDate,
		)
		if err != nil {
			return fmt.Errorf("insert product %s: %w", p.ProductID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// ReplaceCustomers overwrites the raw_customers table.
func (s *StagingStore) ReplaceCustomers(ctx context.Context, customers []*domain.Customer) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE raw_customers`); err != nil {
		return fmt.Errorf("truncate raw_customers: %w", err)
	}

	query := `
		INSERT INTO raw_customers (
			customer_id, name, email, city, age_group, signup_date, customer_segment
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, c := range customers {
		_, err := tx.Exec(ctx, query,
			c.CustomerID, c.Name, c.Email, c.City, c.AgeGroup, c.SignupDate, c.Segment,
		)
		if err != nil {
			return fmt.Errorf("insert customer %s: %w", c.CustomerID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// ReplaceOrders overwrites the raw_orders table. Orders are the large
// dataset (hundreds of thousands of line items), so rows go in via
// COPY rather than per-row INSERT.
func (s *StagingStore) ReplaceOrders(ctx context.Context, orders []*domain.Order) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE raw_orders`); err != nil {
		return fmt.Errorf("truncate raw_orders: %w", err)
	}

	rows := make([][]interface{}, len(orders))
	for i, o := range orders {
		rows[i] = []interface{}{
			o.OrderID, o.CustomerID, o.ProductID, o.OrderDate,
			o.Quantity, o.UnitPrice, o.ItemTotal, o.Status, o.PaymentMethod, o.DiscountAmount,
		}
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"raw_orders"},
		[]string{"order_id", "customer_id", "product_id", "order_date", "quantity", "unit_price", "item_total", "status", "payment_method", "discount_amount"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy orders: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Products retrieves the products dataset.
func (s *StagingStore) Products(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT product_id, name, category, brand, price, cost, stock_quantity, created_date
		FROM raw_products
		ORDER BY product_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: query raw_products: %v", storage.ErrUnavailable, err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Category, &p.Brand, &p.Price, &p.Cost, &p.StockQuantity, &p.CreatedDate); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate raw_products: %v", storage.ErrUnavailable, err)
	}

	return products, nil
}

// Customers retrieves the customers dataset.
func (s *StagingStore) Customers(ctx context.Context) ([]*domain.Customer, error) {
	query := `
		SELECT customer_id, name, email, city, age_group, signup_date, customer_segment
		FROM raw_customers
		ORDER BY customer_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: query raw_customers: %v", storage.ErrUnavailable, err)
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.CustomerID, &c.Name, &c.Email, &c.City, &c.AgeGroup, &c.SignupDate, &c.Segment); err != nil {
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate raw_customers: %v", storage.ErrUnavailable, err)
	}

	return customers, nil
}

// Orders retrieves the orders dataset.
func (s *StagingStore) Orders(ctx context.Context) ([]*domain.Order, error) {
	query := `
		SELECT order_id, customer_id, product_id, order_date, quantity, unit_price, item_total, status, payment_method, discount_amount
		FROM raw_orders
		ORDER BY order_id ASC, product_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: query raw_orders: %v", storage.ErrUnavailable, err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.OrderID, &o.CustomerID, &o.ProductID, &o.OrderDate, &o.Quantity, &o.UnitPrice, &o.ItemTotal, &o.Status, &o.PaymentMethod, &o.DiscountAmount); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate raw_orders: %v", storage.ErrUnavailable, err)
	}

	return orders, nil
}

package clickhouse

import (
	"context"
	"fmt"
	"time"

	"ecommerce-pipeline/internal/domain"
	"ecommerce-pipeline/internal/storage"
)

// FactStore implements storage.FactStore using ClickHouse.
type FactStore struct {
	conn *Conn
}

// NewFactStore creates a new FactStore.
func NewFactStore(conn *Conn) *FactStore {
	return &FactStore{conn: conn}
}

// Compile-time interface check.
var _ storage.FactStore = (*FactStore)(nil)

// Replace truncates fact_orders and writes the given rows in one batch.
func (s *FactStore) Replace(ctx context.Context, rows []*domain.FactRow) error {
	if err := s.conn.Exec(ctx, `TRUNCATE TABLE fact_orders`); err != nil {
		return fmt.Errorf("truncate fact_orders: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO fact_orders (
			order_id, customer_id, product_id, order_date,
			quantity, unit_price, item_total, status, payment_method, discount_amount,
			product_name, category, brand, cost,
			city, age_group, customer_segment,
			gross_profit, net_profit, revenue_after_discount, profit_margin,
			order_year, order_month, order_quarter, order_week, day_of_week, is_weekend
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, r := range rows {
		err = batch.Append(
			r.OrderID, r.CustomerID, r.ProductID, r.OrderDate,
			int32(r.Quantity), r.UnitPrice, r.ItemTotal, r.Status, r.PaymentMethod, r.DiscountAmount,
			r.ProductName, r.Category, r.Brand, r.Cost,
			r.City, r.AgeGroup, r.Segment,
			r.GrossProfit, r.NetProfit, r.RevenueAfterDiscount, r.ProfitMargin,
			int32(r.Year), int32(r.Month), int32(r.Quarter), int32(r.WeekNumber), r.DayOfWeek, r.IsWeekend,
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

// Count returns the number of fact rows.
func (s *FactStore) Count(ctx context.Context) (int, error) {
	var count uint64
	err := s.conn.QueryRow(ctx, `SELECT count(*) FROM fact_orders`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count fact_orders: %w", err)
	}
	return int(count), nil
}

// RevenueTotal returns the sum of item_total over all rows.
func (s *FactStore) RevenueTotal(ctx context.Context) (float64, error) {
	var total float64
	err := s.conn.QueryRow(ctx, `SELECT sum(item_total) FROM fact_orders`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum fact_orders revenue: %w", err)
	}
	return total, nil
}

// LatestOrderDate returns the most recent order date.
func (s *FactStore) LatestOrderDate(ctx context.Context) (time.Time, error) {
	var count uint64
	if err := s.conn.QueryRow(ctx, `SELECT count(*) FROM fact_orders`).Scan(&count); err != nil {
		return time.Time{}, fmt.Errorf("count fact_orders: %w", err)
	}
	if count == 0 {
		return time.Time{}, storage.ErrNotFound
	}

	var latest time.Time
	err := s.conn.QueryRow(ctx, `SELECT max(order_date) FROM fact_orders`).Scan(&latest)
	if err != nil {
		return time.Time{}, fmt.Errorf("max order_date: %w", err)
	}
	return latest, nil
}

// BusinessTotals computes completed-order rollups for reporting.
func (s *FactStore) BusinessTotals(ctx context.Context) (*domain.BusinessTotals, error) {
	query := `
		SELECT
			sum(revenue_after_discount),
			sum(coalesce(net_profit, 0)),
			avg(profit_margin),
			uniqExact(customer_id),
			uniqExact(product_id),
			uniqExact(order_id)
		FROM fact_orders
		WHERE status = 'completed'
	`

	var (
		totals    domain.BusinessTotals
		avgMargin *float64
		customers uint64
		products  uint64
		orders    uint64
	)
	err := s.conn.QueryRow(ctx, query).Scan(
		&totals.TotalRevenue, &totals.TotalProfit, &avgMargin,
		&customers, &products, &orders,
	)
	if err != nil {
		return nil, fmt.Errorf("business totals: %w", err)
	}

	totals.AvgProfitMargin = avgMargin
	totals.UniqueCustomers = int(customers)
	totals.UniqueProducts = int(products)
	totals.UniqueOrders = int(orders)
	return &totals, nil
}

// TopCategories returns up to limit categories by completed-order revenue.
func (s *FactStore) TopCategories(ctx context.Context, limit int) ([]*domain.CategoryRevenue, error) {
	query := `
		SELECT
			coalesce(category, ''),
			sum(revenue_after_discount),
			count(*)
		FROM fact_orders
		WHERE status = 'completed'
		GROUP BY category
		ORDER BY sum(revenue_after_discount) DESC, coalesce(category, '') ASC
		LIMIT ?
	`

	rows, err := s.conn.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query top categories: %w", err)
	}
	defer rows.Close()

	var top []*domain.CategoryRevenue
	for rows.Next() {
		var (
			cr     domain.CategoryRevenue
			orders uint64
		)
		if err := rows.Scan(&cr.Category, &cr.Revenue, &orders); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		cr.Orders = int(orders)
		top = append(top, &cr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	return top, nil
}

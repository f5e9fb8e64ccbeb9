package clickhouse

import (
	"context"
	"fmt"

	"ecommerce-pipeline/internal/domain"
	"ecommerce-pipeline/internal/storage"
)

// CustomerAnalyticsStore implements storage.CustomerAnalyticsStore using ClickHouse.
type CustomerAnalyticsStore struct {
	conn *Conn
}

// NewCustomerAnalyticsStore creates a new CustomerAnalyticsStore.
func NewCustomerAnalyticsStore(conn *Conn) *CustomerAnalyticsStore {
	return &CustomerAnalyticsStore{conn: conn}
}

// Compile-time interface check.
var _ storage.CustomerAnalyticsStore = (*CustomerAnalyticsStore)(nil)

// Replace truncates customer_analytics and writes the given rows.
func (s *CustomerAnalyticsStore) Replace(ctx context.Context, rows []*domain.CustomerAnalytics) error {
	if err := s.conn.Exec(ctx, `TRUNCATE TABLE customer_analytics`); err != nil {
		return fmt.Errorf("truncate customer_analytics: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO customer_analytics (
			customer_id,
			total_spent, avg_order_value, total_orders, total_profit_generated,
			first_order_date, last_order_date, unique_orders, total_items_bought,
			city, age_group, customer_segment, signup_date,
			days_to_first_order, customer_lifetime_days, ltv_segment
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, r := range rows {
		err = batch.Append(
			r.CustomerID,
			r.TotalSpent, r.AvgOrderValue, int64(r.TotalOrders), r.TotalProfitGenerated,
			r.FirstOrderDate, r.LastOrderDate, int64(r.UniqueOrders), int64(r.TotalItemsBought),
			r.City, r.AgeGroup, r.Segment, r.SignupDate,
			int64Ptr(r.DaysToFirstOrder), int64(r.CustomerLifetimeDays), r.LTVSegment,
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

// Count returns the number of analytics rows.
func (s *CustomerAnalyticsStore) Count(ctx context.Context) (int, error) {
	var count uint64
	err := s.conn.QueryRow(ctx, `SELECT count(*) FROM customer_analytics`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count customer_analytics: %w", err)
	}
	return int(count), nil
}

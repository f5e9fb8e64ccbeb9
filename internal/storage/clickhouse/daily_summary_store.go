package clickhouse

import (
	"context"
	"fmt"

	"ecommerce-pipeline/internal/domain"
	"ecommerce-pipeline/internal/storage"
)

// DailySummaryStore implements storage.DailySummaryStore using ClickHouse.
type DailySummaryStore struct {
	conn *Conn
}

// NewDailySummaryStore creates a new DailySummaryStore.
func NewDailySummaryStore(conn *Conn) *DailySummaryStore {
	return &DailySummaryStore{conn: conn}
}

// Compile-time interface check.
var _ storage.DailySummaryStore = (*DailySummaryStore)(nil)

// Replace truncates daily_sales_summary and writes the given rows.
func (s *DailySummaryStore) Replace(ctx context.Context, rows []*domain.DailyCategorySummary) error {
	if err := s.conn.Exec(ctx, `TRUNCATE TABLE daily_sales_summary`); err != nil {
		return fmt.Errorf("truncate daily_sales_summary: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO daily_sales_summary (
			order_date, category,
			total_revenue, revenue_after_discount, net_profit, gross_profit, total_discount,
			total_quantity, unique_orders, unique_customers,
			profit_margin, average_order_value
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, r := range rows {
		err = batch.Append(
			r.OrderDate, r.Category,
			r.TotalRevenue, r.RevenueAfterDiscount, r.NetProfit, r.GrossProfit, r.TotalDiscount,
			int64(r.TotalQuantity), int64(r.UniqueOrders), int64(r.UniqueCustomers),
			r.ProfitMargin, r.AverageOrderValue,
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

// Count returns the number of summary rows.
func (s *DailySummaryStore) Count(ctx context.Context) (int, error) {
	var count uint64
	err := s.conn.QueryRow(ctx, `SELECT count(*) FROM daily_sales_summary`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count daily_sales_summary: %w", err)
	}
	return int(count), nil
}

// RevenueTotal returns the sum of total_revenue over all rows.
func (s *DailySummaryStore) RevenueTotal(ctx context.Context) (float64, error) {
	var total float64
	err := s.conn.QueryRow(ctx, `SELECT sum(total_revenue) FROM daily_sales_summary`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum daily_sales_summary revenue: %w", err)
	}
	return total, nil
}

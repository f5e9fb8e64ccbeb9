package clickhouse

import (
	"context"
	"fmt"

	"ecommerce-pipeline/internal/domain"
	"ecommerce-pipeline/internal/storage"
)

// ProductPerformanceStore implements storage.ProductPerformanceStore using ClickHouse.
type ProductPerformanceStore struct {
	conn *Conn
}

// NewProductPerformanceStore creates a new ProductPerformanceStore.
func NewProductPerformanceStore(conn *Conn) *ProductPerformanceStore {
	return &ProductPerformanceStore{conn: conn}
}

// Compile-time interface check.
var _ storage.ProductPerformanceStore = (*ProductPerformanceStore)(nil)

// Replace truncates product_performance and writes the given rows.
func (s *ProductPerformanceStore) Replace(ctx context.Context, rows []*domain.ProductPerformance) error {
	if err := s.conn.Exec(ctx, `TRUNCATE TABLE product_performance`); err != nil {
		return fmt.Errorf("truncate product_performance: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO product_performance (
			product_id, category, brand,
			total_revenue, total_profit, total_quantity_sold, unique_orders, unique_customers,
			product_name, price, cost, stock_quantity,
			profit_margin, avg_selling_price, inventory_turnover,
			revenue_rank, profit_rank
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, r := range rows {
		err = batch.Append(
			r.ProductID, r.Category, r.Brand,
			r.TotalRevenue, r.TotalProfit, int64(r.TotalQuantitySold), int64(r.UniqueOrders), int64(r.UniqueCustomers),
			r.ProductName, r.Price, r.Cost, int32Ptr(r.StockQuantity),
			r.ProfitMargin, r.AvgSellingPrice, r.InventoryTurnover,
			int64(r.RevenueRank), int64(r.ProfitRank),
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

// Count returns the number of performance rows.
func (s *ProductPerformanceStore) Count(ctx context.Context) (int, error) {
	var count uint64
	err := s.conn.QueryRow(ctx, `SELECT count(*) FROM product_performance`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count product_performance: %w", err)
	}
	return int(count), nil
}

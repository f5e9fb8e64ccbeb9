// Package main runs the transform-and-load stage: read the staging
// zone, build the star schema, and load the ClickHouse warehouse.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"ecommerce-pipeline/internal/config"
	"ecommerce-pipeline/internal/orchestrator"
	chstore "ecommerce-pipeline/internal/storage/clickhouse"
	"ecommerce-pipeline/internal/storage/migrations"
	pgstore "ecommerce-pipeline/internal/storage/postgres"
)

func main() {
	cfg := config.FromEnv()

	postgresDSN := flag.String("postgres-dsn", cfg.PostgresDSN, "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", cfg.ClickhouseDSN, "ClickHouse connection string")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, *postgresDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to postgres: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	conn, err := migrations.RunClickhouseMigrations(ctx, *clickhouseDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing clickhouse: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	orch := orchestrator.New(orchestrator.Options{
		StagingStore:            pgstore.NewStagingStore(pool),
		FactStore:               chstore.NewFactStore(conn),
		DailySummaryStore:       chstore.NewDailySummaryStore(conn),
		CustomerAnalyticsStore:  chstore.NewCustomerAnalyticsStore(conn),
		ProductPerformanceStore: chstore.NewProductPerformanceStore(conn),
		DimensionStore:          chstore.NewDimensionStore(conn),
		Verbose:                 *verbose,
	})

	result, err := orch.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Transform error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Run %s completed:\n", result.RunID)
	fmt.Printf("  Tables created: %d\n", result.TablesCreated)
	fmt.Printf("  Total revenue: %.2f\n", result.TotalRevenue)
	if result.AvgProfitMargin != nil {
		fmt.Printf("  Avg profit margin: %.2f%%\n", *result.AvgProfitMargin)
	}
	for _, w := range result.Warnings {
		fmt.Printf("  Warning: %s\n", w)
	}
	for _, e := range result.Errors {
		fmt.Printf("  Error: %s\n", e)
	}

	if result.Degraded() {
		os.Exit(1)
	}
}

// Package main runs the data-quality checks against the loaded
// warehouse. Exits non-zero when any check fails.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"ecommerce-pipeline/internal/config"
	"ecommerce-pipeline/internal/quality"
	chstore "ecommerce-pipeline/internal/storage/clickhouse"
)

func main() {
	cfg := config.FromEnv()

	clickhouseDSN := flag.String("clickhouse-dsn", cfg.ClickhouseDSN, "ClickHouse connection string")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := chstore.NewConn(ctx, *clickhouseDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to clickhouse: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	checker := quality.NewChecker(
		chstore.NewFactStore(conn),
		chstore.NewDailySummaryStore(conn),
		chstore.NewCustomerAnalyticsStore(conn),
		chstore.NewProductPerformanceStore(conn),
	)

	fmt.Println("Running data quality checks...")
	result, err := checker.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Quality checks could not run: %v\n", err)
		os.Exit(1)
	}

	for _, check := range result.Checks {
		status := "PASS"
		if !check.OK {
			status = "FAIL"
		}
		fmt.Printf("  [%s] %s\n", status, check.Detail)
	}

	if !result.Passed() {
		issues := result.Issues()
		fmt.Printf("\nFound %d data quality issues\n", len(issues))
		os.Exit(1)
	}
	fmt.Println("\nAll data quality checks passed")
}

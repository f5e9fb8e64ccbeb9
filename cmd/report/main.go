// Package main renders the pipeline execution report from the loaded
// warehouse.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"ecommerce-pipeline/internal/config"
	"ecommerce-pipeline/internal/reporting"
	chstore "ecommerce-pipeline/internal/storage/clickhouse"
)

func main() {
	cfg := config.FromEnv()

	clickhouseDSN := flag.String("clickhouse-dsn", cfg.ClickhouseDSN, "ClickHouse connection string")
	outputPath := flag.String("output", "", "Write report to file instead of stdout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := chstore.NewConn(ctx, *clickhouseDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to clickhouse: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	gen := reporting.NewGenerator(
		chstore.NewFactStore(conn),
		chstore.NewDailySummaryStore(conn),
		chstore.NewCustomerAnalyticsStore(conn),
		chstore.NewProductPerformanceStore(conn),
	)

	report, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Report generation failed: %v\n", err)
		os.Exit(1)
	}

	text := reporting.RenderText(report)
	if *outputPath == "" {
		fmt.Print(text)
		return
	}
	if err := os.WriteFile(*outputPath, []byte(text), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Report written to %s\n", *outputPath)
}

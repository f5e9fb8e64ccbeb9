// Package main provides the E2E pipeline entry point.
// Executes: extract → transform → load → quality checks → report
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecommerce-pipeline/internal/config"
	"ecommerce-pipeline/internal/generator"
	"ecommerce-pipeline/internal/observability"
	"ecommerce-pipeline/internal/orchestrator"
	"ecommerce-pipeline/internal/quality"
	"ecommerce-pipeline/internal/reporting"
	"ecommerce-pipeline/internal/storage"
	chstore "ecommerce-pipeline/internal/storage/clickhouse"
	"ecommerce-pipeline/internal/storage/memory"
	"ecommerce-pipeline/internal/storage/migrations"
	pgstore "ecommerce-pipeline/internal/storage/postgres"
)

type stores struct {
	staging     storage.StagingStore
	facts       storage.FactStore
	summaries   storage.DailySummaryStore
	analytics   storage.CustomerAnalyticsStore
	performance storage.ProductPerformanceStore
	dimensions  storage.DimensionStore
}

func main() {
	cfg := config.FromEnv()

	useMemory := flag.Bool("memory", false, "Run entirely in memory (no databases)")
	days := flag.Int("days", cfg.GeneratorDays, "Days of order history to generate")
	seed := flag.Int64("seed", cfg.GeneratorSeed, "Generation seed")
	verbose := flag.Bool("verbose", false, "Verbose output")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9091)")
	flag.Parse()

	cfg.GeneratorDays = *days
	cfg.GeneratorSeed = *seed
	cfg.Verbose = *verbose

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Printf("\nReceived signal %v, cancelling pipeline...\n", sig)
		cancel()
	}()

	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", observability.Handler())
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				fmt.Fprintf(os.Stderr, "Metrics server error: %v\n", err)
			}
		}()
	}

	var (
		s       *stores
		cleanup func()
		err     error
	)
	if *useMemory {
		s = createMemoryStores()
		cleanup = func() {}
	} else {
		s, cleanup, err = createDatabaseStores(ctx, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error connecting to databases: %v\n", err)
			os.Exit(1)
		}
	}
	defer cleanup()

	orch := orchestrator.New(orchestrator.Options{
		StagingStore:            s.staging,
		FactStore:               s.facts,
		DailySummaryStore:       s.summaries,
		CustomerAnalyticsStore:  s.analytics,
		ProductPerformanceStore: s.performance,
		DimensionStore:          s.dimensions,
		Verbose:                 cfg.Verbose,
	})

	// Stage 1: Extract
	fmt.Println("=== Extract ===")
	gen := generator.New(generator.Config{
		Days:          cfg.GeneratorDays,
		ProductCount:  cfg.GeneratorProducts,
		CustomerCount: cfg.GeneratorCustomers,
		Seed:          cfg.GeneratorSeed,
	})
	products, customers, orders := gen.Generate()

	extracted, err := orch.Extract(ctx, products, customers, orders)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Extract error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Staged %d products, %d customers, %d order lines\n",
		extracted.Products, extracted.Customers, extracted.Orders)

	// Stage 2+3: Transform and load
	fmt.Println("\n=== Transform & Load ===")
	result, err := orch.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Pipeline error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Run %s:\n", result.RunID)
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

	// Stage 4: Quality checks
	fmt.Println("\n=== Quality Checks ===")
	checker := quality.NewChecker(s.facts, s.summaries, s.analytics, s.performance)
	qresult, err := checker.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Quality check error: %v\n", err)
		os.Exit(1)
	}
	for _, check := range qresult.Checks {
		status := "PASS"
		if !check.OK {
			status = "FAIL"
		}
		fmt.Printf("  [%s] %s\n", status, check.Detail)
	}

	// Stage 5: Report
	fmt.Println("\n=== Report ===")
	report, err := reporting.NewGenerator(s.facts, s.summaries, s.analytics, s.performance).Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Report error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(reporting.RenderText(report))

	if result.Degraded() || !qresult.Passed() {
		os.Exit(1)
	}
	observability.RecordSuccessfulRun(time.Now().Unix())
}

// createMemoryStores wires the pipeline entirely in memory.
func createMemoryStores() *stores {
	return &stores{
		staging:     memory.NewStagingStore(),
		facts:       memory.NewFactStore(),
		summaries:   memory.NewDailySummaryStore(),
		analytics:   memory.NewCustomerAnalyticsStore(),
		performance: memory.NewProductPerformanceStore(),
		dimensions:  memory.NewDimensionStore(),
	}
}

// createDatabaseStores connects to Postgres and ClickHouse and applies
// migrations to both.
func createDatabaseStores(ctx context.Context, cfg config.Config) (*stores, func(), error) {
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pool, err := pgstore.NewPool(connectCtx, cfg.PostgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := migrations.RunPostgresMigrations(connectCtx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("postgres migrations: %w", err)
	}

	conn, err := migrations.RunClickhouseMigrations(connectCtx, cfg.ClickhouseDSN)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("clickhouse migrations: %w", err)
	}

	s := &stores{
		staging:     pgstore.NewStagingStore(pool),
		facts:       chstore.NewFactStore(conn),
		summaries:   chstore.NewDailySummaryStore(conn),
		analytics:   chstore.NewCustomerAnalyticsStore(conn),
		performance: chstore.NewProductPerformanceStore(conn),
		dimensions:  chstore.NewDimensionStore(conn),
	}
	cleanup := func() {
		pool.Close()
		conn.Close()
	}
	return s, cleanup, nil
}

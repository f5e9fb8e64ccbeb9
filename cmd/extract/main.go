// Package main runs the extract stage: generate synthetic datasets and
// load them into the Postgres staging zone.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"ecommerce-pipeline/internal/config"
	"ecommerce-pipeline/internal/generator"
	"ecommerce-pipeline/internal/storage/migrations"
	pgstore "ecommerce-pipeline/internal/storage/postgres"
)

func main() {
	cfg := config.FromEnv()

	postgresDSN := flag.String("postgres-dsn", cfg.PostgresDSN, "PostgreSQL connection string")
	days := flag.Int("days", cfg.GeneratorDays, "Days of order history to generate")
	seed := flag.Int64("seed", cfg.GeneratorSeed, "Generation seed")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, *postgresDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to postgres: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Error applying migrations: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generating %d days of e-commerce data (seed %d)...\n", *days, *seed)
	gen := generator.New(generator.Config{
		Days:          *days,
		ProductCount:  cfg.GeneratorProducts,
		CustomerCount: cfg.GeneratorCustomers,
		Seed:          *seed,
	})
	products, customers, orders := gen.Generate()

	staging := pgstore.NewStagingStore(pool)
	if err := staging.ReplaceProducts(ctx, products); err != nil {
		fmt.Fprintf(os.Stderr, "Error staging products: %v\n", err)
		os.Exit(1)
	}
	if err := staging.ReplaceCustomers(ctx, customers); err != nil {
		fmt.Fprintf(os.Stderr, "Error staging customers: %v\n", err)
		os.Exit(1)
	}
	if err := staging.ReplaceOrders(ctx, orders); err != nil {
		fmt.Fprintf(os.Stderr, "Error staging orders: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Extract completed:")
	fmt.Printf("  Products: %d records\n", len(products))
	fmt.Printf("  Customers: %d records\n", len(customers))
	fmt.Printf("  Order lines: %d records\n", len(orders))
}

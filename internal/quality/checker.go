// Package quality validates the loaded warehouse: core tables must be
// non-empty, fact and summary revenue must reconcile, and the data must
// be fresh. Checks only read; they never mutate warehouse state.
package quality

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"ecommerce-pipeline/internal/observability"
	"ecommerce-pipeline/internal/storage"
)

// RevenueTolerance is the allowed absolute difference between the fact
// table revenue and the daily summary revenue, covering per-row
// rounding during aggregation.
const RevenueTolerance = 1.0

// MaxStalenessDays is how old the latest order may be before the
// freshness check flags the warehouse.
const MaxStalenessDays = 1

// Check is the outcome of a single quality check.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Result collects all check outcomes for one run.
type Result struct {
	Checks []Check
}

// Passed reports whether every check succeeded.
func (r *Result) Passed() bool {
	for _, c := range r.Checks {
		if !c.OK {
			return false
		}
	}
	return true
}

// Issues returns the details of all failed checks.
func (r *Result) Issues() []string {
	var issues []string
	for _, c := range r.Checks {
		if !c.OK {
			issues = append(issues, c.Detail)
		}
	}
	return issues
}

// Checker runs quality checks against the warehouse stores.
type Checker struct {
	facts     storage.FactStore
	summaries storage.DailySummaryStore
	analytics storage.CustomerAnalyticsStore
	products  storage.ProductPerformanceStore

	clock func() time.Time
}

// Option configures a Checker.
type Option func(*Checker)

// WithClock overrides the time source, for tests.
func WithClock(clock func() time.Time) Option {
	return func(c *Checker) {
		c.clock = clock
	}
}

// NewChecker creates a Checker over the four warehouse tables.
func NewChecker(
	facts storage.FactStore,
	summaries storage.DailySummaryStore,
	analytics storage.CustomerAnalyticsStore,
	products storage.ProductPerformanceStore,
	opts ...Option,
) *Checker {
	c := &Checker{
		facts:     facts,
		summaries: summaries,
		analytics: analytics,
		products:  products,
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes all checks. A returned error means a check could not be
// executed at all; failed checks are reported through the Result.
func (c *Checker) Run(ctx context.Context) (*Result, error) {
	result := &Result{}

	if err := c.checkCounts(ctx, result); err != nil {
		return nil, err
	}
	if err := c.checkRevenueConsistency(ctx, result); err != nil {
		return nil, err
	}
	if err := c.checkFreshness(ctx, result); err != nil {
		return nil, err
	}

	for _, check := range result.Checks {
		observability.RecordQualityCheck(check.Name, check.OK)
	}
	return result, nil
}

func (c *Checker) checkCounts(ctx context.Context, result *Result) error {
	tables := []struct {
		name  string
		count func(context.Context) (int, error)
	}{
		{"fact_orders", c.facts.Count},
		{"daily_sales_summary", c.summaries.Count},
		{"customer_analytics", c.analytics.Count},
		{"product_performance", c.products.Count},
	}

	for _, table := range tables {
		count, err := table.count(ctx)
		if err != nil {
			return fmt.Errorf("count %s: %w", table.name, err)
		}
		check := Check{Name: "non_empty:" + table.name}
		if count == 0 {
			check.Detail = fmt.Sprintf("%s is empty", table.name)
		} else {
			check.OK = true
			check.Detail = fmt.Sprintf("%s: %d records", table.name, count)
		}
		result.Checks = append(result.Checks, check)
	}
	return nil
}

func (c *Checker) checkRevenueConsistency(ctx context.Context, result *Result) error {
	factTotal, err := c.facts.RevenueTotal(ctx)
	if err != nil {
		return fmt.Errorf("fact revenue total: %w", err)
	}
	summaryTotal, err := c.summaries.RevenueTotal(ctx)
	if err != nil {
		return fmt.Errorf("summary revenue total: %w", err)
	}

	check := Check{Name: "revenue_consistency"}
	if math.Abs(factTotal-summaryTotal) > RevenueTolerance {
		check.Detail = fmt.Sprintf("revenue mismatch: fact(%.2f) vs summary(%.2f)", factTotal, summaryTotal)
	} else {
		check.OK = true
		check.Detail = fmt.Sprintf("revenue consistent: %.2f", factTotal)
	}
	result.Checks = append(result.Checks, check)
	return nil
}

func (c *Checker) checkFreshness(ctx context.Context, result *Result) error {
	latest, err := c.facts.LatestOrderDate(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		// The non-empty check already flags an empty fact table.
		return nil
	}
	if err != nil {
		return fmt.Errorf("latest order date: %w", err)
	}

	now := c.clock().UTC()
	latest = latest.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	latestDay := time.Date(latest.Year(), latest.Month(), latest.Day(), 0, 0, 0, 0, time.UTC)
	daysOld := int(today.Sub(latestDay).Hours() / 24)

	check := Check{Name: "freshness"}
	if daysOld > MaxStalenessDays {
		check.Detail = fmt.Sprintf("data is %d days old (latest: %s)", daysOld, latestDay.Format("2006-01-02"))
	} else {
		check.OK = true
		check.Detail = fmt.Sprintf("latest order %s", latestDay.Format("2006-01-02"))
	}
	result.Checks = append(result.Checks, check)
	return nil
}

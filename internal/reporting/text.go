package reporting

import (
	"fmt"
	"strings"
)

const separator = "=================================================="

// RenderText renders the report as a plain-text summary.
func RenderText(r *Report) string {
	var sb strings.Builder

	sb.WriteString("PIPELINE EXECUTION REPORT\n")
	sb.WriteString(separator + "\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))

	sb.WriteString("\nDATA SUMMARY:\n")
	if r.LatestOrderDate != nil {
		sb.WriteString(fmt.Sprintf("  Latest order date: %s\n", r.LatestOrderDate.Format("2006-01-02")))
	} else {
		sb.WriteString("  Latest order date: n/a (no orders)\n")
	}
	sb.WriteString(fmt.Sprintf("  Total order lines processed: %d\n", r.TotalOrderLines))

	sb.WriteString("\nBUSINESS METRICS (completed orders):\n")
	sb.WriteString(fmt.Sprintf("  Total Revenue: $%.2f\n", r.Totals.TotalRevenue))
	sb.WriteString(fmt.Sprintf("  Total Profit: $%.2f\n", r.Totals.TotalProfit))
	if r.Totals.AvgProfitMargin != nil {
		sb.WriteString(fmt.Sprintf("  Avg Profit Margin: %.1f%%\n", *r.Totals.AvgProfitMargin))
	} else {
		sb.WriteString("  Avg Profit Margin: n/a\n")
	}
	sb.WriteString(fmt.Sprintf("  Unique Customers: %d\n", r.Totals.UniqueCustomers))
	sb.WriteString(fmt.Sprintf("  Unique Products: %d\n", r.Totals.UniqueProducts))
	sb.WriteString(fmt.Sprintf("  Unique Orders: %d\n", r.Totals.UniqueOrders))

	sb.WriteString("\nTOP CATEGORIES:\n")
	if len(r.TopCategories) == 0 {
		sb.WriteString("  none\n")
	}
	for _, c := range r.TopCategories {
		name := c.Category
		if name == "" {
			name = "(uncategorized)"
		}
		sb.WriteString(fmt.Sprintf("  %s: $%.2f (%d orders)\n", name, c.Revenue, c.Orders))
	}

	sb.WriteString("\nTABLE COUNTS:\n")
	for _, tc := range r.TableCounts {
		sb.WriteString(fmt.Sprintf("  %s: %d records\n", tc.Table, tc.Records))
	}

	sb.WriteString("\nPIPELINE STATUS: SUCCESS\n")
	sb.WriteString(separator + "\n")

	return sb.String()
}

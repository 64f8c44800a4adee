package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders a run summary as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Dataset Run Summary\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Seed: %d | Start: %s | Horizon: %d days\n\n",
		r.Seed, r.StartDate.Format("2006-01-02"), r.HorizonDays))

	// Row counts
	sb.WriteString("## Row Counts\n\n")
	sb.WriteString("| Table | Rows |\n")
	sb.WriteString("|-------|------|\n")
	sb.WriteString(fmt.Sprintf("| raw_products | %d |\n", r.Counts.Products))
	sb.WriteString(fmt.Sprintf("| customers | %d |\n", r.Counts.Customers))
	sb.WriteString(fmt.Sprintf("| raw_orders | %d |\n", r.Counts.Orders))
	sb.WriteString(fmt.Sprintf("| raw_line_items | %d |\n", r.Counts.LineItems))
	sb.WriteString(fmt.Sprintf("| raw_marketing_daily | %d |\n", r.Counts.Marketing))
	sb.WriteString(fmt.Sprintf("| raw_budget | %d |\n", r.Counts.Budget))
	sb.WriteString("\n")

	// Per-shop breakdown
	sb.WriteString("## Shops\n\n")
	sb.WriteString("| Shop | Currency | Orders | Line Items | Gross Revenue | Returned Lines | Marketing Spend |\n")
	sb.WriteString("|------|----------|--------|------------|---------------|----------------|----------------|\n")
	for _, s := range r.ShopSummaries {
		sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %.2f | %d | %.2f |\n",
			s.ShopID, s.Currency, s.Orders, s.LineItems,
			s.GrossRevenue, s.ReturnedLines, s.MarketingSum))
	}
	sb.WriteString("\n")

	// Categories by gross revenue
	sb.WriteString("## Categories by Gross Revenue\n\n")
	sb.WriteString("| Category | Line Items | Gross Revenue |\n")
	sb.WriteString("|----------|------------|---------------|\n")
	for _, c := range r.CategorySummaries {
		sb.WriteString(fmt.Sprintf("| %s | %d | %.2f |\n",
			c.Category, c.LineItems, c.GrossRevenue))
	}

	return sb.String()
}

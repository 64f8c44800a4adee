// Package export renders the generated dataset as CSV snapshot files and
// parses them back. Customers are intentionally not exported; they exist
// only inside the pipeline.
package export

import (
	"fmt"
	"strings"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
)

const dateLayout = "2006-01-02"

// RenderProductsCSV renders products as CSV string.
func RenderProductsCSV(products []*domain.Product) string {
	var sb strings.Builder

	sb.WriteString("sku_id,category,avg_price_eur,return_prob,popularity_score,unit_cost_eur,product_name\n")

	for _, p := range products {
		sb.WriteString(fmt.Sprintf("%d,%s,%.2f,%.2f,%.6f,%.2f,%s\n",
			p.SKU,
			p.Category,
			p.AvgPriceEUR,
			p.ReturnProb,
			p.PopularityScore,
			p.UnitCostEUR,
			p.Name,
		))
	}

	return sb.String()
}

// RenderOrdersCSV renders orders as CSV string.
func RenderOrdersCSV(orders []*domain.Order) string {
	var sb strings.Builder

	sb.WriteString("order_id,customer_id,shop_id,order_date,currency_code\n")

	for _, o := range orders {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s\n",
			o.OrderID,
			o.CustomerID,
			o.ShopID,
			o.OrderDate.Format(dateLayout),
			o.CurrencyCode,
		))
	}

	return sb.String()
}

// RenderLineItemsCSV renders line items as CSV string.
func RenderLineItemsCSV(lines []*domain.LineItem) string {
	var sb strings.Builder

	sb.WriteString("line_id,order_id,sku_id,qty,unit_price_paid,unit_cost,is_returned\n")

	for _, l := range lines {
		sb.WriteString(fmt.Sprintf("%s,%s,%d,%d,%.2f,%.2f,%t\n",
			l.LineID,
			l.OrderID,
			l.SKU,
			l.Qty,
			l.UnitPricePaid,
			l.UnitCost,
			l.IsReturned,
		))
	}

	return sb.String()
}

// RenderMarketingCSV renders daily marketing spend as CSV string.
func RenderMarketingCSV(rows []*domain.MarketingSpend) string {
	var sb strings.Builder

	sb.WriteString("date,shop_id,spend_amount,currency\n")

	for _, m := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%.2f,%s\n",
			m.Date.Format(dateLayout),
			m.ShopID,
			m.SpendAmount,
			m.Currency,
		))
	}

	return sb.String()
}

// RenderBudgetCSV renders monthly budgets as CSV string.
func RenderBudgetCSV(rows []*domain.BudgetRow) string {
	var sb strings.Builder

	sb.WriteString("month,shop_id,currency,budget_revenue\n")

	for _, b := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%.2f\n",
			b.Month.Format(dateLayout),
			b.ShopID,
			b.Currency,
			b.BudgetRevenue,
		))
	}

	return sb.String()
}

package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
)

// Snapshot file names inside an output directory.
const (
	ProductsFile  = "raw_products.csv"
	OrdersFile    = "raw_orders.csv"
	LineItemsFile = "raw_line_items.csv"
	MarketingFile = "raw_marketing_daily.csv"
	BudgetFile    = "raw_budget.csv"
)

// Snapshot bundles one run's exportable records.
type Snapshot struct {
	Products  []*domain.Product
	Orders    []*domain.Order
	LineItems []*domain.LineItem
	Marketing []*domain.MarketingSpend
	Budget    []*domain.BudgetRow
}

// Writer writes CSV snapshot files to an output directory.
type Writer struct {
	dir string
}

// NewWriter creates a Writer rooted at dir. The directory is created on the
// first write.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// WriteSnapshot writes all five snapshot files. Existing files are
// overwritten.
func (w *Writer) WriteSnapshot(snap *Snapshot) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	files := []struct {
		name    string
		content string
	}{
		{ProductsFile, RenderProductsCSV(snap.Products)},
		{OrdersFile, RenderOrdersCSV(snap.Orders)},
		{LineItemsFile, RenderLineItemsCSV(snap.LineItems)},
		{MarketingFile, RenderMarketingCSV(snap.Marketing)},
		{BudgetFile, RenderBudgetCSV(snap.Budget)},
	}

	for _, f := range files {
		path := filepath.Join(w.dir, f.name)
		if err := os.WriteFile(path, []byte(f.content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", f.name, err)
		}
	}

	return nil
}

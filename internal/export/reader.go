package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
)

// Reader reads CSV snapshot files back from a directory.
type Reader struct {
	dir string
}

// NewReader creates a Reader rooted at dir.
func NewReader(dir string) *Reader {
	return &Reader{dir: dir}
}

// ReadSnapshot parses all five snapshot files.
func (r *Reader) ReadSnapshot() (*Snapshot, error) {
	snap := &Snapshot{}

	if err := r.readFile(ProductsFile, func(rd io.Reader) (err error) {
		snap.Products, err = ParseProductsCSV(rd)
		return err
	}); err != nil {
		return nil, err
	}

	if err := r.readFile(OrdersFile, func(rd io.Reader) (err error) {
		snap.Orders, err = ParseOrdersCSV(rd)
		return err
	}); err != nil {
		return nil, err
	}

	if err := r.readFile(LineItemsFile, func(rd io.Reader) (err error) {
		snap.LineItems, err = ParseLineItemsCSV(rd)
		return err
	}); err != nil {
		return nil, err
	}

	if err := r.readFile(MarketingFile, func(rd io.Reader) (err error) {
		snap.Marketing, err = ParseMarketingCSV(rd)
		return err
	}); err != nil {
		return nil, err
	}

	if err := r.readFile(BudgetFile, func(rd io.Reader) (err error) {
		snap.Budget, err = ParseBudgetCSV(rd)
		return err
	}); err != nil {
		return nil, err
	}

	return snap, nil
}

func (r *Reader) readFile(name string, parse func(io.Reader) error) error {
	f, err := os.Open(filepath.Join(r.dir, name))
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	if err := parse(f); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// ParseProductsCSV parses a products snapshot.
func ParseProductsCSV(r io.Reader) ([]*domain.Product, error) {
	records, err := readRecords(r, 7)
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, 0, len(records))
	for i, rec := range records {
		sku, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse sku_id: %w", i+1, err)
		}
		price, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse avg_price_eur: %w", i+1, err)
		}
		returnProb, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse return_prob: %w", i+1, err)
		}
		popularity, err := strconv.ParseFloat(rec[4], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse popularity_score: %w", i+1, err)
		}
		cost, err := strconv.ParseFloat(rec[5], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse unit_cost_eur: %w", i+1, err)
		}

		products = append(products, &domain.Product{
			SKU:             sku,
			Category:        domain.Category(rec[1]),
			AvgPriceEUR:     price,
			ReturnProb:      returnProb,
			PopularityScore: popularity,
			UnitCostEUR:     cost,
			Name:            rec[6],
		})
	}
	return products, nil
}

// ParseOrdersCSV parses an orders snapshot.
func ParseOrdersCSV(r io.Reader) ([]*domain.Order, error) {
	records, err := readRecords(r, 5)
	if err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, 0, len(records))
	for i, rec := range records {
		date, err := time.ParseInLocation(dateLayout, rec[3], time.UTC)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse order_date: %w", i+1, err)
		}

		orders = append(orders, &domain.Order{
			OrderID:      rec[0],
			CustomerID:   rec[1],
			ShopID:       rec[2],
			OrderDate:    date,
			CurrencyCode: rec[4],
		})
	}
	return orders, nil
}

// ParseLineItemsCSV parses a line items snapshot.
func ParseLineItemsCSV(r io.Reader) ([]*domain.LineItem, error) {
	records, err := readRecords(r, 7)
	if err != nil {
		return nil, err
	}

	lines := make([]*domain.LineItem, 0, len(records))
	for i, rec := range records {
		sku, err := strconv.ParseInt(rec[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse sku_id: %w", i+1, err)
		}
		qty, err := strconv.Atoi(rec[3])
		if err != nil {
			return nil, fmt.Errorf("row %d: parse qty: %w", i+1, err)
		}
		price, err := strconv.ParseFloat(rec[4], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse unit_price_paid: %w", i+1, err)
		}
		cost, err := strconv.ParseFloat(rec[5], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse unit_cost: %w", i+1, err)
		}
		returned, err := strconv.ParseBool(rec[6])
		if err != nil {
			return nil, fmt.Errorf("row %d: parse is_returned: %w", i+1, err)
		}

		lines = append(lines, &domain.LineItem{
			LineID:        rec[0],
			OrderID:       rec[1],
			SKU:           sku,
			Qty:           qty,
			UnitPricePaid: price,
			UnitCost:      cost,
			IsReturned:    returned,
		})
	}
	return lines, nil
}

// ParseMarketingCSV parses a marketing spend snapshot.
func ParseMarketingCSV(r io.Reader) ([]*domain.MarketingSpend, error) {
	records, err := readRecords(r, 4)
	if err != nil {
		return nil, err
	}

	rows := make([]*domain.MarketingSpend, 0, len(records))
	for i, rec := range records {
		date, err := time.ParseInLocation(dateLayout, rec[0], time.UTC)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse date: %w", i+1, err)
		}
		amount, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse spend_amount: %w", i+1, err)
		}

		rows = append(rows, &domain.MarketingSpend{
			Date:        date,
			ShopID:      rec[1],
			SpendAmount: amount,
			Currency:    rec[3],
		})
	}
	return rows, nil
}

// ParseBudgetCSV parses a monthly budget snapshot.
func ParseBudgetCSV(r io.Reader) ([]*domain.BudgetRow, error) {
	records, err := readRecords(r, 4)
	if err != nil {
		return nil, err
	}

	rows := make([]*domain.BudgetRow, 0, len(records))
	for i, rec := range records {
		month, err := time.ParseInLocation(dateLayout, rec[0], time.UTC)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse month: %w", i+1, err)
		}
		revenue, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse budget_revenue: %w", i+1, err)
		}

		rows = append(rows, &domain.BudgetRow{
			Month:         month,
			ShopID:        rec[1],
			Currency:      rec[2],
			BudgetRevenue: revenue,
		})
	}
	return rows, nil
}

// readRecords reads all CSV records after the header, enforcing the field
// count.
func readRecords(r io.Reader, fields int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = fields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv: missing header")
	}
	return records[1:], nil
}

// Package orders implements the order factory: the stochastic process that
// turns a per-day demand intensity into concrete order and line-item records.
package orders

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/julianhilgemann/BI-Pipeline/internal/catalog"
	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
	"github.com/julianhilgemann/BI-Pipeline/internal/identity"
	"github.com/julianhilgemann/BI-Pipeline/internal/randx"
)

// Factory errors.
var (
	ErrEmptyCatalog   = errors.New("order factory requires a non-empty product catalog")
	ErrEmptyCustomers = errors.New("order factory requires a non-empty customer pool")
	ErrBasketTooLarge = errors.New("max basket size exceeds catalog size")
)

// Basket size distribution: median basket is a single item, heavy skew
// toward small baskets.
var (
	basketSizes = []int{1, 2, 3, 4}
	basketProbs = []float64{0.50, 0.30, 0.15, 0.05}
)

// Markdown behavior: independently per line, a small chance of a fixed
// percentage discount on the catalog price.
const (
	markdownProb   = 0.05
	markdownFactor = 0.90
)

// Factory generates orders and line items for one (day, shop, intensity)
// at a time. The factory itself is immutable after construction; all
// randomness flows through the Source passed to GenerateOrdersForDay, so
// parallel workers can share one Factory with a forked Source each.
type Factory struct {
	products  []domain.Product
	customers []domain.Customer

	productSampler  *randx.WeightedSampler
	customerSampler *randx.WeightedSampler
	basketSampler   *randx.WeightedSampler
}

// FactoryOptions contains configuration for creating a Factory.
type FactoryOptions struct {
	Products      []domain.Product
	Customers     []domain.Customer
	MaxBasketSize int // defaults to the largest configured basket size
}

// NewFactory creates an order factory. It rejects an empty catalog or
// customer pool, a basket size the catalog cannot satisfy without
// replacement, and degenerate weight vectors. All of these are fatal
// configuration errors surfaced before the simulation starts.
func NewFactory(opts FactoryOptions) (*Factory, error) {
	if len(opts.Products) == 0 {
		return nil, ErrEmptyCatalog
	}
	if len(opts.Customers) == 0 {
		return nil, ErrEmptyCustomers
	}

	maxBasket := opts.MaxBasketSize
	if maxBasket == 0 {
		maxBasket = basketSizes[len(basketSizes)-1]
	}
	if maxBasket > len(opts.Products) {
		return nil, fmt.Errorf("%w: %d > %d", ErrBasketTooLarge, maxBasket, len(opts.Products))
	}

	productSampler, err := randx.NewWeightedSampler(catalog.PopularityWeights(opts.Products))
	if err != nil {
		return nil, fmt.Errorf("popularity weights: %w", err)
	}
	customerSampler, err := randx.NewWeightedSampler(catalog.ActivityWeights(opts.Customers))
	if err != nil {
		return nil, fmt.Errorf("activity weights: %w", err)
	}
	basketSampler, err := randx.NewWeightedSampler(basketProbs)
	if err != nil {
		return nil, fmt.Errorf("basket distribution: %w", err)
	}

	return &Factory{
		products:        opts.Products,
		customers:       opts.Customers,
		productSampler:  productSampler,
		customerSampler: customerSampler,
		basketSampler:   basketSampler,
	}, nil
}

// GenerateOrdersForDay draws the day's order count from
// Poisson(expectedVolume) and materializes each order: a weighted customer
// draw (with replacement across orders), a basket size, that many distinct
// popularity-weighted products, per-line markdown and return outcomes.
// Line items preserve product selection order within a call. A non-positive
// or zero-yielding intensity returns empty slices, not an error.
func (f *Factory) GenerateOrdersForDay(src *randx.Source, ids *identity.Generator, date time.Time, expectedVolume float64, shopID, currency string) ([]*domain.Order, []*domain.LineItem, error) {
	n := src.Poisson(expectedVolume)
	if n == 0 {
		return nil, nil, nil
	}

	orders := make([]*domain.Order, 0, n)
	var lines []*domain.LineItem

	for i := 0; i < n; i++ {
		customer := f.customers[f.customerSampler.Pick(src)]

		orderID, err := ids.OrderID()
		if err != nil {
			return nil, nil, fmt.Errorf("order id: %w", err)
		}

		basketSize := basketSizes[f.basketSampler.Pick(src)]
		picked, err := f.productSampler.PickDistinct(src, basketSize)
		if err != nil {
			// Unreachable after construction-time validation.
			return nil, nil, fmt.Errorf("pick basket: %w", err)
		}

		for _, idx := range picked {
			product := f.products[idx]

			pricePaid := product.AvgPriceEUR
			if src.Bernoulli(markdownProb) {
				pricePaid = round2(pricePaid * markdownFactor)
			}

			lineID, err := ids.LineID()
			if err != nil {
				return nil, nil, fmt.Errorf("line id: %w", err)
			}

			lines = append(lines, &domain.LineItem{
				LineID:        lineID,
				OrderID:       orderID,
				SKU:           product.SKU,
				Qty:           1,
				UnitPricePaid: pricePaid,
				UnitCost:      product.UnitCostEUR,
				IsReturned:    src.Bernoulli(product.ReturnProb),
			})
		}

		orders = append(orders, &domain.Order{
			OrderID:      orderID,
			CustomerID:   customer.ID,
			ShopID:       shopID,
			OrderDate:    date,
			CurrencyCode: currency,
		})
	}

	return orders, lines, nil
}

// round2 rounds to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

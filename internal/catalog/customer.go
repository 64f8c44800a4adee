package catalog

import (
	"fmt"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
	"github.com/julianhilgemann/BI-Pipeline/internal/identity"
	"github.com/julianhilgemann/BI-Pipeline/internal/randx"
)

// activityShape is the Zipf shape for customer purchase activity. A small
// head of customers accounts for most orders, which yields realistic
// lifetime-value spread downstream.
const activityShape = 2.0

// activityMax truncates the Zipf draw; the exact cap is irrelevant after
// normalization, it only bounds the most active customer.
const activityMax = 1 << 20

// CustomerGenerator samples customer pools.
type CustomerGenerator struct {
	ids *identity.Generator
}

// NewCustomerGenerator creates a CustomerGenerator drawing identifiers
// from ids.
func NewCustomerGenerator(ids *identity.Generator) *CustomerGenerator {
	return &CustomerGenerator{ids: ids}
}

// Generate samples count customers. Activity scores are Zipf draws
// normalized so the pool's probabilities sum to 1.0. A non-positive count
// yields an empty pool.
func (g *CustomerGenerator) Generate(src *randx.Source, count int) ([]domain.Customer, error) {
	if count <= 0 {
		return nil, nil
	}

	customers := make([]domain.Customer, 0, count)
	total := 0.0
	for i := 0; i < count; i++ {
		id, err := g.ids.CustomerID()
		if err != nil {
			return nil, fmt.Errorf("customer %d: %w", i, err)
		}
		activity := float64(src.Zipf(activityShape, activityMax))
		total += activity
		customers = append(customers, domain.Customer{ID: id, ActivityProb: activity})
	}

	for i := range customers {
		customers[i].ActivityProb /= total
	}
	return customers, nil
}

// ActivityWeights extracts the normalized selection-probability vector.
func ActivityWeights(customers []domain.Customer) []float64 {
	weights := make([]float64, len(customers))
	for i, c := range customers {
		weights[i] = c.ActivityProb
	}
	return weights
}

// PopularityWeights extracts the popularity weight vector from a catalog.
func PopularityWeights(products []domain.Product) []float64 {
	weights := make([]float64, len(products))
	for i, p := range products {
		weights[i] = p.PopularityScore
	}
	return weights
}

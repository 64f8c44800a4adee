// Package catalog generates the immutable product catalog and customer pool
// the order factory samples from.
package catalog

import (
	"fmt"
	"math"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
	"github.com/julianhilgemann/BI-Pipeline/internal/randx"
)

// CategorySpec holds the sampling parameters for one product category.
type CategorySpec struct {
	Category   domain.Category
	Weight     float64 // mixture weight for the categorical category draw
	PriceMu    float64 // log-space mean of the price distribution
	PriceSigma float64 // log-space stddev of the price distribution
	ReturnProb float64 // fixed per-category return probability
}

// DefaultCategorySpecs returns the reference category mix: premium gear with
// low returns, mid-priced apparel with mid returns, footwear with high returns.
func DefaultCategorySpecs() []CategorySpec {
	return []CategorySpec{
		{Category: domain.CategoryGear, Weight: 0.3, PriceMu: 5.0, PriceSigma: 0.7, ReturnProb: 0.05},
		{Category: domain.CategoryApparel, Weight: 0.4, PriceMu: 4.4, PriceSigma: 0.6, ReturnProb: 0.15},
		{Category: domain.CategoryFootwear, Weight: 0.3, PriceMu: 4.8, PriceSigma: 0.5, ReturnProb: 0.30},
	}
}

// Price and cost shaping constants.
const (
	firstSKU = 10000

	priceMin = 20.0
	priceMax = 800.0

	popularityShape = 2.5 // Pareto shape for the popularity long tail

	costFractionMin = 0.40
	costFractionMax = 0.60
)

// ProductGenerator samples product catalogs.
type ProductGenerator struct {
	specs   []CategorySpec
	sampler *randx.WeightedSampler
}

// NewProductGenerator creates a ProductGenerator over the given category
// specs. Returns an error when the mixture weights are degenerate.
func NewProductGenerator(specs []CategorySpec) (*ProductGenerator, error) {
	weights := make([]float64, len(specs))
	for i, s := range specs {
		weights[i] = s.Weight
	}
	sampler, err := randx.NewWeightedSampler(weights)
	if err != nil {
		return nil, fmt.Errorf("category weights: %w", err)
	}
	return &ProductGenerator{specs: specs, sampler: sampler}, nil
}

// Generate samples count products. A non-positive count yields an empty
// catalog. Invariants: price clamped to [20, 800] and rounded to 2 dp,
// cost strictly below price, popularity strictly positive.
func (g *ProductGenerator) Generate(src *randx.Source, count int) []domain.Product {
	if count <= 0 {
		return nil
	}

	products := make([]domain.Product, 0, count)
	for i := 0; i < count; i++ {
		spec := g.specs[g.sampler.Pick(src)]

		price := src.LogNormal(spec.PriceMu, spec.PriceSigma)
		price = round2(math.Max(priceMin, math.Min(price, priceMax)))

		cost := round2(price * src.Uniform(costFractionMin, costFractionMax))

		// Pareto can return exactly 0; a zero-weight product would be
		// unreachable by the sampler, so keep a tiny floor.
		popularity := src.Pareto(popularityShape)
		if popularity <= 0 {
			popularity = math.SmallestNonzeroFloat64
		}

		products = append(products, domain.Product{
			SKU:             int64(firstSKU + i),
			Category:        spec.Category,
			AvgPriceEUR:     price,
			ReturnProb:      spec.ReturnProb,
			PopularityScore: popularity,
			UnitCostEUR:     cost,
			Name:            fmt.Sprintf("%s Model %d", spec.Category, i),
		})
	}
	return products
}

// round2 rounds to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

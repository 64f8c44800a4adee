package randx

import (
	"errors"
	"fmt"
)

// Sampler errors.
var (
	// ErrZeroWeightSum is returned when a weight vector does not sum to a
	// strictly positive value. Degenerate vectors must be rejected rather
	// than silently falling back to uniform sampling.
	ErrZeroWeightSum = errors.New("weight vector sum is not strictly positive")

	// ErrNegativeWeight is returned when a weight vector contains a
	// negative entry.
	ErrNegativeWeight = errors.New("weight vector contains a negative entry")

	// ErrSampleTooLarge is returned when more distinct indices are requested
	// than the sampler has weights.
	ErrSampleTooLarge = errors.New("requested sample size exceeds population size")
)

// WeightedSampler draws indices proportionally to a fixed weight vector.
// Construction validates the vector once; sampling never fails afterwards.
type WeightedSampler struct {
	weights []float64
	total   float64
}

// NewWeightedSampler builds a sampler over the given weights. The vector is
// copied. Returns ErrNegativeWeight or ErrZeroWeightSum on degenerate input.
func NewWeightedSampler(weights []float64) (*WeightedSampler, error) {
	total := 0.0
	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("weight %d: %w", i, ErrNegativeWeight)
		}
		total += w
	}
	if total <= 0 {
		return nil, ErrZeroWeightSum
	}

	ws := &WeightedSampler{
		weights: make([]float64, len(weights)),
		total:   total,
	}
	copy(ws.weights, weights)
	return ws, nil
}

// Len returns the population size.
func (ws *WeightedSampler) Len() int {
	return len(ws.weights)
}

// Pick draws one index with replacement.
func (ws *WeightedSampler) Pick(src *Source) int {
	return pickOne(src, ws.weights, ws.total)
}

// PickDistinct draws k distinct indices without replacement via repeated
// renormalized draws. Selection order is preserved. Returns
// ErrSampleTooLarge if k exceeds the population size.
func (ws *WeightedSampler) PickDistinct(src *Source, k int) ([]int, error) {
	if k > len(ws.weights) {
		return nil, fmt.Errorf("%w: %d > %d", ErrSampleTooLarge, k, len(ws.weights))
	}
	if k <= 0 {
		return nil, nil
	}

	// Work on a scratch copy so drawn entries can be zeroed out.
	scratch := make([]float64, len(ws.weights))
	copy(scratch, ws.weights)
	remaining := ws.total

	picked := make([]int, 0, k)
	for len(picked) < k {
		if remaining <= 0 {
			// All residual weight is on already-drawn entries. With a valid
			// sampler this can only happen when k exceeds the number of
			// positive weights.
			return nil, fmt.Errorf("%w: only %d entries carry positive weight", ErrSampleTooLarge, len(picked))
		}
		idx := pickOne(src, scratch, remaining)
		picked = append(picked, idx)
		remaining -= scratch[idx]
		scratch[idx] = 0
	}
	return picked, nil
}

// pickOne draws one index from weights given their precomputed total.
func pickOne(src *Source, weights []float64, total float64) int {
	target := src.Float64() * total
	cum := 0.0
	for i, w := range weights {
		cum += w
		if target < cum {
			return i
		}
	}
	// Floating-point slack: fall back to the last positively weighted index.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return len(weights) - 1
}

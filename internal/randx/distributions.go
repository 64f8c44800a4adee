package randx

import (
	"math"
	"math/rand"
)

// poissonNormalCutoff is the mean above which Poisson draws switch to the
// normal approximation. Knuth's product method runs in O(lambda), which is
// too slow for high-intensity event days.
const poissonNormalCutoff = 30.0

// Poisson draws from a Poisson distribution with the given mean.
// Non-positive means always yield 0.
func (s *Source) Poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	if lambda > poissonNormalCutoff {
		// Normal approximation: N(lambda, sqrt(lambda)), rounded, floored at 0.
		n := math.Round(lambda + math.Sqrt(lambda)*s.rng.NormFloat64())
		if n < 0 {
			return 0
		}
		return int(n)
	}

	// Knuth's product method.
	limit := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= s.rng.Float64()
		if p <= limit {
			return k
		}
		k++
	}
}

// LogNormal draws from a log-normal distribution with the given log-space
// mean and standard deviation.
func (s *Source) LogNormal(mu, sigma float64) float64 {
	return math.Exp(mu + sigma*s.rng.NormFloat64())
}

// Pareto draws from a Pareto distribution with the given shape, shifted so
// the support starts at 0 (Lomax form). Heavy tail for small shapes.
func (s *Source) Pareto(shape float64) float64 {
	u := s.rng.Float64()
	return math.Pow(1-u, -1/shape) - 1
}

// Zipf draws an integer k >= 1 with P(k) proportional to k^-shape,
// truncated at max.
func (s *Source) Zipf(shape float64, max uint64) uint64 {
	z := rand.NewZipf(s.rng, shape, 1, max-1)
	return z.Uint64() + 1
}

// NormalScaled draws from a normal distribution with the given mean and
// standard deviation.
func (s *Source) NormalScaled(mean, stddev float64) float64 {
	return mean + stddev*s.rng.NormFloat64()
}

// Uniform draws a uniform value in [min, max).
func (s *Source) Uniform(min, max float64) float64 {
	return min + (max-min)*s.rng.Float64()
}

// Bernoulli draws true with probability p.
func (s *Source) Bernoulli(p float64) bool {
	return s.rng.Float64() < p
}

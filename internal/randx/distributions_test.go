package randx

import (
	"math"
	"testing"
)

func TestPoisson_NonPositiveMeanYieldsZero(t *testing.T) {
	s := New(42)

	for _, lambda := range []float64{0, -1, -100} {
		for i := 0; i < 100; i++ {
			if n := s.Poisson(lambda); n != 0 {
				t.Errorf("Poisson(%v) = %d, want 0", lambda, n)
			}
		}
	}
}

func TestPoisson_MeanConverges(t *testing.T) {
	s := New(42)

	const lambda = 10.0
	const draws = 20000
	sum := 0
	for i := 0; i < draws; i++ {
		sum += s.Poisson(lambda)
	}
	mean := float64(sum) / draws

	// Std error is sqrt(lambda/draws) ≈ 0.022; 5 sigma tolerance.
	if math.Abs(mean-lambda) > 0.15 {
		t.Errorf("Poisson(%v) sample mean = %v, want ≈ %v", lambda, mean, lambda)
	}
}

func TestPoisson_LargeMeanApproximation(t *testing.T) {
	s := New(42)

	const lambda = 450.0 // above the normal-approximation cutoff
	const draws = 5000
	sum := 0
	for i := 0; i < draws; i++ {
		n := s.Poisson(lambda)
		if n < 0 {
			t.Fatalf("Poisson(%v) returned negative count %d", lambda, n)
		}
		sum += n
	}
	mean := float64(sum) / draws

	if math.Abs(mean-lambda) > 2.0 {
		t.Errorf("Poisson(%v) sample mean = %v, want ≈ %v", lambda, mean, lambda)
	}
}

func TestLogNormal_MedianConverges(t *testing.T) {
	s := New(42)

	// Median of LogNormal(mu, sigma) is exp(mu).
	const mu, sigma = 4.4, 0.6
	const draws = 20000
	below := 0
	for i := 0; i < draws; i++ {
		v := s.LogNormal(mu, sigma)
		if v <= 0 {
			t.Fatalf("LogNormal draw not positive: %v", v)
		}
		if v < math.Exp(mu) {
			below++
		}
	}
	frac := float64(below) / draws

	if math.Abs(frac-0.5) > 0.02 {
		t.Errorf("fraction below median = %v, want ≈ 0.5", frac)
	}
}

func TestPareto_NonNegativeAndHeavyTailed(t *testing.T) {
	s := New(42)

	const shape = 2.5
	const draws = 20000
	maxSeen := 0.0
	for i := 0; i < draws; i++ {
		v := s.Pareto(shape)
		if v < 0 {
			t.Fatalf("Pareto draw negative: %v", v)
		}
		if v > maxSeen {
			maxSeen = v
		}
	}

	// Mean is 1/(shape-1) ≈ 0.67; the tail should still produce outliers
	// well above it over 20k draws.
	if maxSeen < 3 {
		t.Errorf("Pareto max over %d draws = %v, expected a heavier tail", draws, maxSeen)
	}
}

func TestZipf_RangeAndSkew(t *testing.T) {
	s := New(42)

	const draws = 20000
	ones := 0
	for i := 0; i < draws; i++ {
		v := s.Zipf(2.0, 1000)
		if v < 1 || v > 1000 {
			t.Fatalf("Zipf draw out of range: %d", v)
		}
		if v == 1 {
			ones++
		}
	}

	// With shape 2.0 the mass at k=1 is ~61% (1/zeta(2) truncated).
	if frac := float64(ones) / draws; frac < 0.5 {
		t.Errorf("Zipf mass at 1 = %v, expected a strong head", frac)
	}
}

func TestUniform_Range(t *testing.T) {
	s := New(42)

	for i := 0; i < 1000; i++ {
		v := s.Uniform(0.40, 0.60)
		if v < 0.40 || v >= 0.60 {
			t.Fatalf("Uniform(0.40, 0.60) = %v, out of range", v)
		}
	}
}

func TestBernoulli_Extremes(t *testing.T) {
	s := New(42)

	for i := 0; i < 100; i++ {
		if s.Bernoulli(0) {
			t.Fatal("Bernoulli(0) returned true")
		}
		if !s.Bernoulli(1) {
			t.Fatal("Bernoulli(1) returned false")
		}
	}
}

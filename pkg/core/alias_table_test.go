package core

import (
	"math"
	"math/rand"
	"testing"
)

// TestAliasTable_S4EmpiricalFrequency exercises spec.md §8 scenario S4:
// pmf [0.1, 0.2, 0.7] over 100,000 draws should land within ±0.01 of the
// input frequencies.
func TestAliasTable_S4EmpiricalFrequency(t *testing.T) {
	pmf := []float64{0.1, 0.2, 0.7}
	table := NewAliasTable(pmf)

	const draws = 100000
	counts := make([]int, len(pmf))
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < draws; i++ {
		idx, _ := table.Sample(rng.Float64(), rng.Float64())
		counts[idx]++
	}

	for i, want := range pmf {
		got := float64(counts[i]) / float64(draws)
		if math.Abs(got-want) > 0.01 {
			t.Errorf("index %d: empirical frequency = %v, want within 0.01 of %v", i, got, want)
		}
	}
}

// TestAliasTable_ChiSquareConvergence covers spec.md §8 property 6: the
// empirical frequency of Sample() over N draws converges to the input pmf,
// measured with a chi-square goodness-of-fit statistic at 95% confidence
// (critical value for 4 degrees of freedom, 5 outcomes, is 9.488).
func TestAliasTable_ChiSquareConvergence(t *testing.T) {
	weights := []float64{5, 1, 3, 8, 2}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	table := NewAliasTable(weights)

	const draws = 200000
	counts := make([]int, len(weights))
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < draws; i++ {
		idx, _ := table.Sample(rng.Float64(), rng.Float64())
		counts[idx]++
	}

	chiSquare := 0.0
	for i, w := range weights {
		expected := draws * w / total
		diff := float64(counts[i]) - expected
		chiSquare += diff * diff / expected
	}

	const criticalValue95At4DOF = 9.488
	if chiSquare > criticalValue95At4DOF {
		t.Errorf("chi-square statistic = %v, exceeds the 95%% critical value %v for a converged sampler",
			chiSquare, criticalValue95At4DOF)
	}
}

func TestAliasTable_PMFMatchesInput(t *testing.T) {
	weights := []float64{1, 3, 6}
	table := NewAliasTable(weights)

	want := []float64{0.1, 0.3, 0.6}
	for i, w := range want {
		if got := table.PMF(i); math.Abs(got-w) > 1e-9 {
			t.Errorf("PMF(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestAliasTable_EmptyWeights(t *testing.T) {
	table := NewAliasTable(nil)
	if table.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", table.Len())
	}
	if idx, pmf := table.Sample(0.5, 0.5); idx != -1 || pmf != 0 {
		t.Fatalf("Sample() on an empty table = (%d, %v), want (-1, 0)", idx, pmf)
	}
}

func TestAliasTable_AllZeroWeightsFallsBackToUniform(t *testing.T) {
	table := NewAliasTable([]float64{0, 0, 0, 0})
	for i := 0; i < table.Len(); i++ {
		if got := table.PMF(i); math.Abs(got-0.25) > 1e-9 {
			t.Errorf("PMF(%d) = %v, want 0.25 (uniform fallback)", i, got)
		}
	}
}

package light

import (
	"math"
	"testing"

	"github.com/lumenray/tracer/pkg/core"
	"github.com/lumenray/tracer/pkg/primitive"
)

func TestPoint_SampleL_InverseSquareFalloff(t *testing.T) {
	p := NewPoint(core.Vec3{X: 0, Y: 0, Z: 5}, core.NewVec3(10, 10, 10))
	s := p.SampleL(core.Vec3{}, core.Vec3{X: 0, Y: 0, Z: 1}, core.Vec2{})

	if s.Distance != 5 {
		t.Fatalf("expected distance 5, got %f", s.Distance)
	}
	want := 10.0 / 25.0
	if math.Abs(s.Emission.X-want) > 1e-9 {
		t.Fatalf("expected emission %f, got %f", want, s.Emission.X)
	}
}

func TestArea_SampleL_MatchesPDF(t *testing.T) {
	quad := primitive.NewQuad(core.Vec3{X: -1, Y: 0, Z: -1}, core.Vec3{X: 2, Y: 0, Z: 0}, core.Vec3{X: 0, Y: 0, Z: 2}, nil)
	area := NewAreaQuad(quad, core.NewVec3(5, 5, 5))

	shadingPoint := core.Vec3{X: 0, Y: 3, Z: 0}
	shadingNormal := core.Vec3{X: 0, Y: 1, Z: 0}
	sampler := core.NewRandSampler(11)

	for i := 0; i < 20; i++ {
		sample := area.SampleL(shadingPoint, shadingNormal, sampler.Get2D())
		if sample.PDF <= 0 {
			continue
		}
		pdf := area.PDF(shadingPoint, shadingNormal, sample.Direction)
		if math.Abs(pdf-sample.PDF) > 1e-6 {
			t.Fatalf("PDF mismatch: SampleL=%f PDF()=%f", sample.PDF, pdf)
		}
	}
}

// TestEnvironment_ImportanceSampling_ConvergesToAverage checks that MC
// integration of SampleL draws against the map converges to the map's
// mean radiance, within the alias table's convergence (spec.md §8).
func TestEnvironment_ImportanceSampling_ConvergesToAverage(t *testing.T) {
	const w, h = 8, 4
	pixels := make([]core.Spectrum, w*h)
	var sum core.Spectrum
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := float64((x+y)%5+1) * 2.0
			pixels[y*w+x] = core.NewVec3(v, v, v)
			sum = sum.Add(pixels[y*w+x])
		}
	}
	mean := sum.Multiply(1.0 / float64(w*h))

	env := NewEnvironment(&EnvMap{Width: w, Height: h, Pixels: pixels})
	env.Preprocess(core.Vec3{}, 100)

	sampler := core.NewRandSampler(5)
	const n = 20000
	var estimate core.Spectrum
	for i := 0; i < n; i++ {
		s := env.SampleL(core.Vec3{}, core.Vec3{}, sampler.Get2D())
		if s.PDF <= 0 {
			continue
		}
		// The standard importance-sampling estimator of integral(f dw) is
		// (1/n)*sum(f/pdf); dividing by the sphere's total solid angle
		// (4*pi) turns that integral into an average, comparable to `mean`.
		estimate = estimate.Add(s.Emission.Multiply(1.0 / (float64(n) * s.PDF * 4.0 * math.Pi)))
	}

	// Loose tolerance: this is a coarse smoke test of the alias table
	// wiring, not a tight convergence proof.
	if math.Abs(estimate.X-mean.X) > mean.X {
		t.Fatalf("environment importance sampling diverged: estimate=%v mean=%v", estimate, mean)
	}
}

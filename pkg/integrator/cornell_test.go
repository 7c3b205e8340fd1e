package integrator_test

import (
	"math"
	"testing"

	"github.com/lumenray/tracer/pkg/core"
	"github.com/lumenray/tracer/pkg/integrator"
	"github.com/lumenray/tracer/pkg/scene"
)

// TestCornellBox_FloorLuminance is the S6 sanity scenario: mean pixel
// luminance of the lit floor region is positive and finite under both
// integrators.
func TestCornellBox_FloorLuminance(t *testing.T) {
	rs := scene.NewCornellScene().Build()

	// Straight down onto the floor's center, below the ceiling light's
	// footprint so the ray hits the floor directly rather than the light.
	ray := core.NewRay(core.NewVec3(278, 400, 278), core.NewVec3(0, -1, 0))

	t.Run("PathTracer", func(t *testing.T) {
		pt := integrator.NewPathTracer(rs)
		sampler := core.NewRandSampler(1)

		sum := 0.0
		const n = 32
		for i := 0; i < n; i++ {
			radiance := pt.TraceRay(ray, sampler)
			lum := core.Illum(radiance)
			if math.IsNaN(lum) || math.IsInf(lum, 0) {
				t.Fatalf("non-finite radiance: %v", radiance)
			}
			sum += lum
		}
		if mean := sum / n; mean <= 0 {
			t.Fatalf("expected positive mean floor luminance, got %f", mean)
		}
	})

	t.Run("BDPT", func(t *testing.T) {
		bdpt := integrator.NewBDPT(rs, func(x, y int, contribution core.Spectrum) {})
		sampler := core.NewRandSampler(1)

		sum := 0.0
		const n = 32
		for i := 0; i < n; i++ {
			radiance := bdpt.TraceRay(ray, sampler)
			lum := core.Illum(radiance)
			if math.IsNaN(lum) || math.IsInf(lum, 0) {
				t.Fatalf("non-finite radiance: %v", radiance)
			}
			sum += lum
		}
		if mean := sum / n; mean <= 0 {
			t.Fatalf("expected positive mean floor luminance, got %f", mean)
		}
	})
}

package integrator

import (
	"testing"

	"github.com/lumenray/tracer/pkg/bsdf"
	"github.com/lumenray/tracer/pkg/bvh"
	"github.com/lumenray/tracer/pkg/core"
	"github.com/lumenray/tracer/pkg/light"
	"github.com/lumenray/tracer/pkg/primitive"
)

func diffuseScene(t *testing.T, emission core.Spectrum) *Scene {
	t.Helper()
	sphere := primitive.NewSphere(core.Vec3{X: 0, Y: 0, Z: -5}, 1, bsdf.NewDiffuse(core.Spectrum{X: 0.8, Y: 0.8, Z: 0.8}))
	prims := []core.Primitive{sphere}
	b := bvh.Build(prims, bvh.StrategySAH)

	pointLight := light.NewPoint(core.Vec3{X: 2, Y: 2, Z: -3}, emission)
	lights := []light.Light{pointLight}
	sampler := light.NewAliasLightSampler(lights, func(l light.Light) float64 { return 1 })

	return &Scene{
		BVH:          b,
		Lights:       lights,
		LightSampler: sampler,
		Config: core.SamplingConfig{
			Width: 64, Height: 64,
			SamplesPerPixel:           1,
			NsAreaLight:               1,
			MaxDepth:                  5,
			RussianRouletteMinBounces: 3,
		},
	}
}

func TestPathTracer_TraceRay_DirectLightOnSphere(t *testing.T) {
	scene := diffuseScene(t, core.Spectrum{X: 50, Y: 50, Z: 50})
	pt := NewPathTracer(scene)
	sampler := core.NewRandSampler(1)

	ray := core.NewRay(core.Vec3{X: 0, Y: 0, Z: 0}, core.Vec3{X: 0, Y: 0, Z: -1})
	radiance := pt.TraceRay(ray, sampler)

	if core.Illum(radiance) <= 0 {
		t.Fatalf("expected nonzero radiance from a lit sphere, got %v", radiance)
	}
}

func TestPathTracer_TraceRay_MissIsBlack(t *testing.T) {
	scene := diffuseScene(t, core.Spectrum{X: 50, Y: 50, Z: 50})
	pt := NewPathTracer(scene)
	sampler := core.NewRandSampler(1)

	ray := core.NewRay(core.Vec3{X: 0, Y: 0, Z: 0}, core.Vec3{X: 0, Y: 1, Z: 0})
	radiance := pt.TraceRay(ray, sampler)

	if core.Illum(radiance) != 0 {
		t.Fatalf("expected black radiance on a miss with no infinite lights, got %v", radiance)
	}
}

func TestPathTracer_TraceRay_Deterministic(t *testing.T) {
	scene := diffuseScene(t, core.Spectrum{X: 50, Y: 50, Z: 50})
	pt := NewPathTracer(scene)
	ray := core.NewRay(core.Vec3{X: 0, Y: 0, Z: 0}, core.Vec3{X: 0, Y: 0, Z: -1})

	a := pt.TraceRay(ray, core.NewRandSampler(42))
	b := pt.TraceRay(ray, core.NewRandSampler(42))

	if a != b {
		t.Fatalf("same seed should reproduce identical radiance: %v vs %v", a, b)
	}
}

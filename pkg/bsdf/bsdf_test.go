package bsdf

import (
	"math"
	"testing"

	"github.com/lumenray/tracer/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDiffuse_EnergyConservation checks that integrating f*cosTheta over the
// sampling distribution converges to the albedo (spec.md §8, property 4).
func TestDiffuse_EnergyConservation(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.7, 0.9)
	d := NewDiffuse(albedo)
	sampler := core.NewRandSampler(42)

	wo := core.Vec3{X: 0, Y: 0, Z: 1}
	const n = 20000
	sum := core.Vec3{}
	for i := 0; i < n; i++ {
		wi, f, pdf := d.SampleF(wo, sampler)
		require.Greater(t, pdf, 0.0)
		cos := math.Abs(wi.Z)
		sum = sum.Add(f.Multiply(cos / pdf))
	}
	estimate := sum.Multiply(1.0 / n)

	assert.InDelta(t, albedo.X, estimate.X, 0.02)
	assert.InDelta(t, albedo.Y, estimate.Y, 0.02)
	assert.InDelta(t, albedo.Z, estimate.Z, 0.02)
}

// TestDiffuse_SamplingConsistency verifies that SampleF's pdf matches PDF's
// independently computed pdf for the same direction pair (property 5).
func TestDiffuse_SamplingConsistency(t *testing.T) {
	d := NewDiffuse(core.NewVec3(1, 1, 1))
	sampler := core.NewRandSampler(7)
	wo := core.Vec3{X: 0, Y: 0, Z: 1}

	for i := 0; i < 100; i++ {
		wi, _, pdf := d.SampleF(wo, sampler)
		assert.InDelta(t, pdf, d.PDF(wo, wi), 1e-9)
	}
}

func TestMirror_ReflectsAboutNormal(t *testing.T) {
	// S3 scenario from spec.md §8.
	m := NewMirror(core.NewVec3(1, 1, 1))
	sampler := core.NewRandSampler(1)
	wo := core.Vec3{X: 0.6, Y: 0, Z: 0.8}

	wi, _, pdf := m.SampleF(wo, sampler)

	assert.InDelta(t, -0.6, wi.X, 1e-9)
	assert.InDelta(t, 0.0, wi.Y, 1e-9)
	assert.InDelta(t, 0.8, wi.Z, 1e-9)
	assert.Equal(t, 1.0, pdf)
	assert.True(t, m.IsDelta())
}

func TestGlass_TotalInternalReflectionAlwaysReflects(t *testing.T) {
	g := NewGlass(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), 1.5)
	sampler := core.NewRandSampler(3)

	// Grazing angle from inside a denser medium triggers TIR.
	wo := core.Vec3{X: 0.99, Y: 0, Z: 0.01}.Normalize()
	wo.Z = -wo.Z // exiting the glass (Z<0 means inside -> outside)

	wi, _, pdf := g.SampleF(wo, sampler)
	assert.InDelta(t, 1.0, pdf, 1e-9)
	assert.InDelta(t, wo.Z, wi.Z, 1e-6)
}

func TestEmissive_FrontFaceOnly(t *testing.T) {
	e := NewEmissive(core.NewVec3(5, 5, 5))
	front := e.Emit(core.Vec3{X: 0, Y: 0, Z: 1})
	back := e.Emit(core.Vec3{X: 0, Y: 0, Z: -1})

	assert.Equal(t, core.NewVec3(5, 5, 5), front)
	assert.Equal(t, core.Vec3{}, back)
	assert.False(t, e.IsDelta())
}

package bsdf

import (
	"math"

	"github.com/lumenray/tracer/pkg/core"
)

// Emissive marks a light-emitting surface (spec.md §4.4): f is always
// zero (it does not scatter), and SampleF draws a cosine-weighted
// direction purely for BDPT light-subpath construction. The emitted
// radiance itself is queried separately via Emit, consistent with the
// light API of spec.md §4.5 keeping emission lookup out of the BSDF value.
type Emissive struct {
	Radiance core.Spectrum
}

func NewEmissive(radiance core.Spectrum) *Emissive { return &Emissive{Radiance: radiance} }

func (e *Emissive) F(wo, wi core.Vec3) core.Spectrum { return core.BlackSpectrum }

func (e *Emissive) SampleF(wo core.Vec3, sampler core.Sampler) (core.Vec3, core.Spectrum, float64) {
	wi := core.RandomCosineDirectionLocal(sampler.Get2D())
	pdf := core.CosineHemispherePDF(math.Abs(wi.Z))
	return wi, core.BlackSpectrum, pdf
}

func (e *Emissive) PDF(wo, wi core.Vec3) float64 {
	return core.CosineHemispherePDF(math.Abs(wi.Z))
}

func (e *Emissive) IsDelta() bool { return false }

// Emit returns the emitted radiance toward wo (local frame); only the
// front face (positive local z) emits.
func (e *Emissive) Emit(wo core.Vec3) core.Spectrum {
	if wo.Z <= 0 {
		return core.BlackSpectrum
	}
	return e.Radiance
}

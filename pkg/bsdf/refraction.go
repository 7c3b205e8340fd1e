package bsdf

import (
	"math"

	"github.com/lumenray/tracer/pkg/core"
)

// Refraction is a pure dielectric transmitter (spec.md §4.4): Snell's law
// with eta = etaIncident/etaTransmit, entering iff cosTheta(wo) > 0. On
// total internal reflection it returns the reflection direction with
// pdf=1; otherwise it returns the refracted direction with the solid-angle
// compression factor (etaT/etaI)^2 folded into the transmittance.
type Refraction struct {
	Transmittance core.Spectrum
	IOR           float64 // index of refraction of the medium behind the surface
}

func NewRefraction(transmittance core.Spectrum, ior float64) *Refraction {
	return &Refraction{Transmittance: transmittance, IOR: ior}
}

func (r *Refraction) F(wo, wi core.Vec3) core.Spectrum { return core.BlackSpectrum }

func (r *Refraction) SampleF(wo core.Vec3, sampler core.Sampler) (core.Vec3, core.Spectrum, float64) {
	entering := wo.Z > 0
	etaI, etaT := 1.0, r.IOR
	if !entering {
		etaI, etaT = r.IOR, 1.0
	}
	eta := etaI / etaT

	wi, ok := refract(wo, eta)
	if !ok {
		// Total internal reflection.
		wi = reflectLocal(wo)
		cos := math.Abs(wi.Z)
		if cos == 0 {
			return wi, core.BlackSpectrum, 1
		}
		return wi, r.Transmittance.Multiply(1.0 / cos), 1.0
	}

	cos := math.Abs(wi.Z)
	if cos == 0 {
		return wi, core.BlackSpectrum, 1
	}
	scale := (etaT / etaI) * (etaT / etaI)
	f := r.Transmittance.Multiply(scale / cos)
	return wi, f, 1.0
}

func (r *Refraction) PDF(wo, wi core.Vec3) float64 { return 0 }

func (r *Refraction) IsDelta() bool { return true }

package bsdf

import (
	"math"

	"github.com/lumenray/tracer/pkg/core"
)

// Glass combines Fresnel-weighted reflection and transmission (spec.md
// §4.4): on TIR it always reflects with pdf=1; otherwise it flips a biased
// coin with probability F and returns the reflect branch (F*reflectance/
// |cosTheta|) with pdf=F or the transmit branch ((1-F)*(etaT/etaI)^2*
// transmittance/|cosTheta|) with pdf=1-F; the caller divides by that pdf.
type Glass struct {
	Reflectance   core.Spectrum
	Transmittance core.Spectrum
	IOR           float64
}

func NewGlass(reflectance, transmittance core.Spectrum, ior float64) *Glass {
	return &Glass{Reflectance: reflectance, Transmittance: transmittance, IOR: ior}
}

func (g *Glass) F(wo, wi core.Vec3) core.Spectrum { return core.BlackSpectrum }

func (g *Glass) SampleF(wo core.Vec3, sampler core.Sampler) (core.Vec3, core.Spectrum, float64) {
	entering := wo.Z > 0
	etaI, etaT := 1.0, g.IOR
	if !entering {
		etaI, etaT = g.IOR, 1.0
	}
	eta := etaI / etaT

	wiRefract, ok := refract(wo, eta)
	if !ok {
		// Total internal reflection: always reflect.
		wi := reflectLocal(wo)
		cos := math.Abs(wi.Z)
		if cos == 0 {
			return wi, core.BlackSpectrum, 1
		}
		return wi, g.Reflectance.Multiply(1.0 / cos), 1.0
	}

	fr := schlickFresnel(wo.Z, eta)
	if sampler.Get1D() < fr {
		wi := reflectLocal(wo)
		cos := math.Abs(wi.Z)
		if cos == 0 {
			return wi, core.BlackSpectrum, fr
		}
		f := g.Reflectance.Multiply(fr / cos)
		return wi, f, fr
	}

	cos := math.Abs(wiRefract.Z)
	if cos == 0 {
		return wiRefract, core.BlackSpectrum, 1 - fr
	}
	scale := (etaT / etaI) * (etaT / etaI)
	f := g.Transmittance.Multiply((1 - fr) * scale / cos)
	return wiRefract, f, 1 - fr
}

func (g *Glass) PDF(wo, wi core.Vec3) float64 { return 0 }

func (g *Glass) IsDelta() bool { return true }

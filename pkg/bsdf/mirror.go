package bsdf

import "github.com/lumenray/tracer/pkg/core"

// Mirror is a perfect specular reflector (spec.md §4.4): wi is the
// geometric reflection of wo about the local z axis, pdf = 1, and the
// returned value already folds in the 1/|cosTheta| factor so the
// downstream estimator's cosine multiply cancels exactly.
type Mirror struct {
	Reflectance core.Spectrum
}

func NewMirror(reflectance core.Spectrum) *Mirror { return &Mirror{Reflectance: reflectance} }

func (m *Mirror) F(wo, wi core.Vec3) core.Spectrum { return core.BlackSpectrum }

func (m *Mirror) SampleF(wo core.Vec3, sampler core.Sampler) (core.Vec3, core.Spectrum, float64) {
	wi := core.Vec3{X: -wo.X, Y: -wo.Y, Z: wo.Z}
	cos := wi.Z
	if cos < 0 {
		cos = -cos
	}
	if cos == 0 {
		return wi, core.BlackSpectrum, 1
	}
	return wi, m.Reflectance.Multiply(1.0 / cos), 1.0
}

func (m *Mirror) PDF(wo, wi core.Vec3) float64 { return 0 }

func (m *Mirror) IsDelta() bool { return true }

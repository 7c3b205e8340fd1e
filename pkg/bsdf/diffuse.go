// Package bsdf implements the local-shading-frame scattering primitives
// of spec.md §4.4: diffuse, mirror, refraction, glass, and emission. Every
// method takes/returns directions in the local frame where z is the
// shading normal (core.MakeCoordSpace builds the transform into/out of
// this frame; callers in pkg/primitive and pkg/integrator do the rotation).
//
// Grounded on the teacher's pkg/material/{lambertian,metal,dielectric,
// emissive}.go, converted from world-space Scatter/EvaluateBRDF/PDF to the
// F/SampleF/PDF/IsDelta contract core.BSDF requires.
package bsdf

import (
	"math"

	"github.com/lumenray/tracer/pkg/core"
)

func cosTheta(w core.Vec3) float64 { return w.Z }

// Diffuse is a perfectly Lambertian BSDF: f = albedo/pi (spec.md §4.4).
type Diffuse struct {
	Albedo core.Spectrum
}

func NewDiffuse(albedo core.Spectrum) *Diffuse { return &Diffuse{Albedo: albedo} }

func (d *Diffuse) F(wo, wi core.Vec3) core.Spectrum {
	if cosTheta(wo) <= 0 || cosTheta(wi) <= 0 {
		return core.BlackSpectrum
	}
	return d.Albedo.Multiply(1.0 / math.Pi)
}

func (d *Diffuse) SampleF(wo core.Vec3, sampler core.Sampler) (core.Vec3, core.Spectrum, float64) {
	wi := core.RandomCosineDirectionLocal(sampler.Get2D())
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	pdf := core.CosineHemispherePDF(math.Abs(wi.Z))
	return wi, d.F(wo, wi), pdf
}

func (d *Diffuse) PDF(wo, wi core.Vec3) float64 {
	if cosTheta(wo)*cosTheta(wi) <= 0 {
		return 0
	}
	return core.CosineHemispherePDF(math.Abs(cosTheta(wi)))
}

func (d *Diffuse) IsDelta() bool { return false }

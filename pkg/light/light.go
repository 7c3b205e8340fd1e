// Package light implements the light sources of spec.md §4.5, grounded on
// the teacher's pkg/lights/*.go, generalized onto core.BSDF/core.Primitive
// instead of material.Material and replacing the teacher's linear-scan
// WeightedLightSampler with an O(1) AliasLightSampler.
package light

import (
	"math"

	"github.com/lumenray/tracer/pkg/core"
)

// Sample describes a draw toward a light for next-event estimation: a
// direction FROM the shading point TO the light, with the solid-angle PDF
// of that direction and the radiance arriving along it.
type Sample struct {
	Point     core.Vec3
	Normal    core.Vec3
	Direction core.Vec3
	Distance  float64
	Emission  core.Spectrum
	PDF       float64
}

// EmissionSample describes a draw FROM a light's surface, used to seed a
// BDPT light subpath.
type EmissionSample struct {
	Point        core.Vec3
	Normal       core.Vec3
	Direction    core.Vec3
	Emission     core.Spectrum
	AreaPDF      float64
	DirectionPDF float64
}

// Light is the common contract for every emitter spec.md §4.5 names
// (point, area, and environment/infinite).
type Light interface {
	// SampleL samples a direction toward the light from point, for NEE.
	SampleL(point, normal core.Vec3, u core.Vec2) Sample

	// PDF returns the solid-angle PDF of sampling direction from point via
	// SampleL, used for multiple-importance-sampling weights.
	PDF(point, normal, direction core.Vec3) float64

	// SampleEmission samples a point+direction on the light's surface, for
	// constructing a BDPT light subpath.
	SampleEmission(uPoint, uDirection core.Vec2) EmissionSample

	// EmissionPDF returns the area-measure PDF of the given surface point
	// under SampleEmission.
	EmissionPDF(point, direction core.Vec3) float64

	// Emit evaluates the light's radiance along a ray that escaped the
	// scene in its direction. Only infinite lights return nonzero; finite
	// lights return black, since radiance seen on their surface comes from
	// the emissive BSDF of the shape they are attached to.
	Emit(ray core.Ray) core.Spectrum

	// IsInfinite reports whether the light has no finite surface; the path
	// tracer adds Emit of such lights to rays that leave the scene.
	IsInfinite() bool
}

// Preprocess is implemented by lights that need the finite scene bounds
// (infinite lights, to convert a world-radius disk into area-measure PDFs).
type Preprocess interface {
	Preprocess(worldCenter core.Vec3, worldRadius float64)
}

func clampCos(c float64) float64 {
	if c < 0 {
		return 0
	}
	return c
}

func solidAngleFromArea(areaPDF, distance, cosTheta float64) float64 {
	cosTheta = math.Abs(cosTheta)
	if cosTheta < 1e-8 {
		return 0
	}
	return areaPDF * distance * distance / cosTheta
}

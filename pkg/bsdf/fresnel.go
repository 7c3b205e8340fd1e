package bsdf

import (
	"math"

	"github.com/lumenray/tracer/pkg/core"
)

// reflectLocal mirrors w about the local z axis.
func reflectLocal(w core.Vec3) core.Vec3 {
	return core.Vec3{X: -w.X, Y: -w.Y, Z: w.Z}
}

// refract computes the refracted direction of wo (pointing away from the
// surface, local frame) for relative IOR eta = etaIncident/etaTransmit,
// returning (wi, ok); ok is false on total internal reflection. Grounded
// on the teacher's refractVector, adapted to the local +z convention.
func refract(wo core.Vec3, eta float64) (core.Vec3, bool) {
	cosThetaI := wo.Z
	sin2ThetaI := math.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := eta * eta * sin2ThetaI
	if sin2ThetaT >= 1 {
		return core.Vec3{}, false // total internal reflection
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)
	if cosThetaI > 0 {
		cosThetaT = -cosThetaT // the transmitted direction crosses to the other side
	}
	wi := core.Vec3{X: -wo.X * eta, Y: -wo.Y * eta, Z: cosThetaT}
	return wi, true
}

// schlickFresnel is the Schlick approximation of the Fresnel reflectance,
// R0 = ((eta-1)/(eta+1))^2, F = R0 + (1-R0)(1-|cosTheta|)^5 (spec.md §4.4).
func schlickFresnel(cosTheta, eta float64) float64 {
	r0 := (eta - 1) / (eta + 1)
	r0 *= r0
	c := math.Abs(cosTheta)
	return r0 + (1-r0)*math.Pow(1-c, 5)
}

package core

import "math"

// Ray is a parametric ray origin + direction, with precomputed per-axis
// inverse direction and sign bits for the robust slab test (spec.md §3/§4.1),
// and a mutable [MinT, MaxT] interval that closest-hit traversal tightens.
type Ray struct {
	Origin    Vec3
	Direction Vec3 // invariant: unit length

	InvD Vec3    // InvD[i] = 1/Direction[i]
	Sign [3]int  // Sign[i] = 1 if Direction[i] < 0 else 0

	MinT float64
	MaxT float64

	Depth int // remaining bounces, used by integrators that thread it through Ray
}

// NewRay creates a ray with a normalized direction and precomputed
// slab-test helpers. MinT/MaxT default to an epsilon-offset [1e-4, +Inf).
func NewRay(origin, direction Vec3) Ray {
	d := direction.Normalize()
	r := Ray{
		Origin:    origin,
		Direction: d,
		MinT:      1e-4,
		MaxT:      posInf,
	}
	r.computeSlabHelpers()
	return r
}

// NewRayBounded creates a ray with an explicit [minT, maxT] interval.
func NewRayBounded(origin, direction Vec3, minT, maxT float64) Ray {
	r := NewRay(origin, direction)
	r.MinT, r.MaxT = minT, maxT
	return r
}

// NewRayTo creates a ray from origin toward target; the direction is
// normalized and the distance to target is a convenient return so callers
// (e.g. shadow rays) can bound MaxT just short of the target.
func NewRayTo(origin, target Vec3) (Ray, float64) {
	d := target.Subtract(origin)
	dist := d.Length()
	r := NewRay(origin, d)
	return r, dist
}

func (r *Ray) computeSlabHelpers() {
	r.InvD = Vec3{X: 1.0 / r.Direction.X, Y: 1.0 / r.Direction.Y, Z: 1.0 / r.Direction.Z}
	for i, c := range [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z} {
		if c < 0 {
			r.Sign[i] = 1
		} else {
			r.Sign[i] = 0
		}
	}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

var posInf = math.Inf(1)

package core

import "math"

// oneUlpAboveOne inflates tMax by one ulp above 1.0 in double precision
// (Ize 2013) so shared-edge rounding never misses a hit at a BVH split
// plane (spec.md §4.1).
const oneUlpAboveOne = 1.0000000000000004

// BBox is an axis-aligned bounding box. The empty BBox uses +Inf/-Inf
// sentinels for Min/Max so Union is associative and has an identity
// element (spec.md §3).
type BBox struct {
	Min, Max Vec3
}

// EmptyBBox returns the identity element for Union.
func EmptyBBox() BBox {
	inf := math.Inf(1)
	return BBox{Min: Vec3{X: inf, Y: inf, Z: inf}, Max: Vec3{X: -inf, Y: -inf, Z: -inf}}
}

// NewBBox creates a BBox from explicit corners.
func NewBBox(min, max Vec3) BBox { return BBox{Min: min, Max: max} }

// NewBBoxFromPoints returns a BBox bounding all given points.
func NewBBoxFromPoints(points ...Vec3) BBox {
	b := EmptyBBox()
	for _, p := range points {
		b = b.ExpandPoint(p)
	}
	return b
}

// ExpandPoint returns a BBox that also bounds p.
func (b BBox) ExpandPoint(p Vec3) BBox {
	return BBox{
		Min: Vec3{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)},
		Max: Vec3{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)},
	}
}

// Union returns a BBox that bounds both b and other.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		Min: Vec3{X: math.Min(b.Min.X, other.Min.X), Y: math.Min(b.Min.Y, other.Min.Y), Z: math.Min(b.Min.Z, other.Min.Z)},
		Max: Vec3{X: math.Max(b.Max.X, other.Max.X), Y: math.Max(b.Max.Y, other.Max.Y), Z: math.Max(b.Max.Z, other.Max.Z)},
	}
}

// Extent returns max - min along each axis.
func (b BBox) Extent() Vec3 { return b.Max.Subtract(b.Min) }

// Center returns the midpoint of the box.
func (b BBox) Center() Vec3 { return b.Min.Add(b.Max).Multiply(0.5) }

// SurfaceArea returns 2(ex*ey + ey*ez + ez*ex).
func (b BBox) SurfaceArea() float64 {
	e := b.Extent()
	if e.X < 0 || e.Y < 0 || e.Z < 0 {
		return 0
	}
	return 2.0 * (e.X*e.Y + e.Y*e.Z + e.Z*e.X)
}

// LongestAxis returns the axis (0=X,1=Y,2=Z) with the largest extent.
func (b BBox) LongestAxis() int {
	e := b.Extent()
	if e.X > e.Y && e.X > e.Z {
		return 0
	}
	if e.Y > e.Z {
		return 1
	}
	return 2
}

// Axis returns the (min, max) extent of the box along the given axis.
func (b BBox) Axis(axis int) (float64, float64) {
	switch axis {
	case 0:
		return b.Min.X, b.Max.X
	case 1:
		return b.Min.Y, b.Max.Y
	default:
		return b.Min.Z, b.Max.Z
	}
}

// IsValid reports whether Min <= Max on every axis.
func (b BBox) IsValid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// Expand returns a BBox grown by amount in every direction.
func (b BBox) Expand(amount float64) BBox {
	e := NewVec3(amount, amount, amount)
	return BBox{Min: b.Min.Subtract(e), Max: b.Max.Add(e)}
}

// bounds lets Hit pick Min or Max by the ray's sign bit (0 = Min, 1 = Max).
func (b BBox) bounds() [2]Vec3 { return [2]Vec3{b.Min, b.Max} }

// Hit implements the three-slab test (spec.md §4.1): per axis, select
// bounds[ray.Sign[i]] vs bounds[1-ray.Sign[i]] using the ray's precomputed
// sign, combine as tmin = max(t0, max_i txmin), tmax = min(t1, min_i txmax),
// inflate tmax by one ulp, and report a hit iff tmin <= tmax. On hit the
// tightened interval is returned.
func (b BBox) Hit(ray Ray, t0, t1 float64) (tMin, tMax float64, hit bool) {
	bounds := b.bounds()
	tMin, tMax = t0, t1

	for i := 0; i < 3; i++ {
		var lo, hi float64
		switch i {
		case 0:
			lo, hi = bounds[ray.Sign[0]].X, bounds[1-ray.Sign[0]].X
		case 1:
			lo, hi = bounds[ray.Sign[1]].Y, bounds[1-ray.Sign[1]].Y
		default:
			lo, hi = bounds[ray.Sign[2]].Z, bounds[1-ray.Sign[2]].Z
		}

		var origin, invd float64
		switch i {
		case 0:
			origin, invd = ray.Origin.X, ray.InvD.X
		case 1:
			origin, invd = ray.Origin.Y, ray.InvD.Y
		default:
			origin, invd = ray.Origin.Z, ray.InvD.Z
		}

		txMin := (lo - origin) * invd
		txMax := (hi - origin) * invd
		txMax *= oneUlpAboveOne

		tMin = math.Max(tMin, txMin)
		tMax = math.Min(tMax, txMax)
		if tMin > tMax {
			return tMin, tMax, false
		}
	}

	return tMin, tMax, true
}

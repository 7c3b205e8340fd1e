package primitive

import (
	"math"

	"github.com/lumenray/tracer/pkg/core"
)

// Disc is a circular disc, grounded on the teacher's pkg/geometry/disc.go.
type Disc struct {
	Center core.Vec3
	Normal core.Vec3
	Radius float64
	BSDF   core.BSDF

	right, up core.Vec3
	bbox      core.BBox
}

func NewDisc(center, normal core.Vec3, radius float64, bsdf core.BSDF) *Disc {
	n := normal.Normalize()

	var right core.Vec3
	if math.Abs(n.X) > 0.1 {
		right = core.Vec3{Y: 1}
	} else {
		right = core.Vec3{X: 1}
	}
	right = right.Cross(n).Normalize()
	up := n.Cross(right).Normalize()

	r := core.Vec3{X: radius, Y: radius, Z: radius}
	bbox := core.NewBBox(center.Subtract(r), center.Add(r)).Expand(1e-4)

	return &Disc{Center: center, Normal: n, Radius: radius, BSDF: bsdf, right: right, up: up, bbox: bbox}
}

func (d *Disc) BoundingBox() core.BBox { return d.bbox }

func (d *Disc) Area() float64 { return math.Pi * d.Radius * d.Radius }

func (d *Disc) hit(ray *core.Ray) (float64, bool) {
	denom := d.Normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-8 {
		return 0, false
	}
	tHit := d.Normal.Dot(d.Center.Subtract(ray.Origin)) / denom
	if tHit < ray.MinT || tHit > ray.MaxT {
		return 0, false
	}
	hitPoint := ray.At(tHit)
	if hitPoint.Subtract(d.Center).LengthSquared() > d.Radius*d.Radius {
		return 0, false
	}
	return tHit, true
}

func (d *Disc) Hit(ray *core.Ray) (*core.Intersection, bool) {
	tHit, ok := d.hit(ray)
	if !ok {
		return nil, false
	}
	ray.MaxT = tHit

	isect := &core.Intersection{
		T:         tHit,
		Point:     ray.At(tHit),
		Primitive: d,
		BSDF:      d.BSDF,
	}
	isect.SetFaceNormal(*ray, d.Normal)
	return isect, true
}

func (d *Disc) Occluded(ray *core.Ray) bool {
	_, ok := d.hit(ray)
	return ok
}

// SamplePoint returns a uniformly sampled point on the disc via the
// concentric-disc mapping (core.UniformSampleDisk) and the disc's normal.
func (d *Disc) SamplePoint(u core.Vec2) (point, normal core.Vec3) {
	local := core.UniformSampleDisk(u).Multiply(d.Radius)
	p := d.Center.Add(d.right.Multiply(local.X)).Add(d.up.Multiply(local.Y))
	return p, d.Normal
}

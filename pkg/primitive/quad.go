package primitive

import (
	"math"

	"github.com/lumenray/tracer/pkg/core"
)

// Quad is a parallelogram defined by a corner and two edge vectors,
// grounded on the teacher's pkg/geometry/quad.go plane/uv test.
type Quad struct {
	Corner core.Vec3
	U, V   core.Vec3
	BSDF   core.BSDF

	normal core.Vec3
	w      core.Vec3 // 1/(n . n) helper for the plane-basis test
	d      float64
	area   float64
	bbox   core.BBox
}

func NewQuad(corner, u, v core.Vec3, bsdf core.BSDF) *Quad {
	n := u.Cross(v)
	normal := n.Normalize()
	d := normal.Dot(corner)
	w := n.Multiply(1.0 / n.Dot(n))

	corners := []core.Vec3{corner, corner.Add(u), corner.Add(v), corner.Add(u).Add(v)}
	bbox := core.NewBBoxFromPoints(corners[0], corners[1], corners[2], corners[3]).Expand(1e-4)

	return &Quad{
		Corner: corner, U: u, V: v, BSDF: bsdf,
		normal: normal, w: w, d: d,
		area: n.Length(),
		bbox: bbox,
	}
}

func (q *Quad) BoundingBox() core.BBox { return q.bbox }

func (q *Quad) Area() float64 { return q.area }

func (q *Quad) hit(ray *core.Ray) (tHit, alpha, beta float64, ok bool) {
	denom := q.normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-8 {
		return 0, 0, 0, false
	}

	tHit = (q.d - q.normal.Dot(ray.Origin)) / denom
	if tHit < ray.MinT || tHit > ray.MaxT {
		return 0, 0, 0, false
	}

	hitPoint := ray.At(tHit)
	planarHit := hitPoint.Subtract(q.Corner)
	alpha = q.w.Dot(planarHit.Cross(q.V))
	beta = q.w.Dot(q.U.Cross(planarHit))

	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return 0, 0, 0, false
	}
	return tHit, alpha, beta, true
}

func (q *Quad) Hit(ray *core.Ray) (*core.Intersection, bool) {
	tHit, alpha, beta, ok := q.hit(ray)
	if !ok {
		return nil, false
	}
	ray.MaxT = tHit

	isect := &core.Intersection{
		T:         tHit,
		Point:     ray.At(tHit),
		UV:        core.Vec2{X: alpha, Y: beta},
		Primitive: q,
		BSDF:      q.BSDF,
	}
	isect.SetFaceNormal(*ray, q.normal)
	return isect, true
}

func (q *Quad) Occluded(ray *core.Ray) bool {
	_, _, _, ok := q.hit(ray)
	return ok
}

// SamplePoint returns a uniformly sampled point and its geometric normal,
// used by area lights built on top of a Quad (spec.md §4.5).
func (q *Quad) SamplePoint(u core.Vec2) (point, normal core.Vec3) {
	return q.Corner.Add(q.U.Multiply(u.X)).Add(q.V.Multiply(u.Y)), q.normal
}

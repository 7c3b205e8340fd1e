// Package primitive implements the ray-intersectable scene geometry of
// spec.md §4.2 (Triangle and Sphere), grounded on the teacher's
// pkg/geometry/{triangle,sphere}.go, adapted to build core.Intersection
// records and consult a core.BSDF rather than a material.Material.
package primitive

import (
	"github.com/lumenray/tracer/pkg/core"
)

// Triangle is a single triangle with optional per-vertex shading normals
// (flat-shaded triangles repeat the geometric normal at every corner).
type Triangle struct {
	V0, V1, V2    core.Vec3
	N0, N1, N2    core.Vec3 // shading normals, pre-normalized
	UV0, UV1, UV2 core.Vec2
	BSDF          core.BSDF
	Texture       core.Texture // optional; overrides BSDF's albedo per-hit when set

	geomNormal core.Vec3
	bbox       core.BBox
}

// NewTriangle creates a flat-shaded triangle (all three shading normals
// equal the geometric normal).
func NewTriangle(v0, v1, v2 core.Vec3, bsdf core.BSDF) *Triangle {
	n := v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	return &Triangle{
		V0: v0, V1: v1, V2: v2,
		N0: n, N1: n, N2: n,
		BSDF:       bsdf,
		geomNormal: n,
		bbox:       core.NewBBoxFromPoints(v0, v1, v2),
	}
}

// NewTriangleSmooth creates a triangle with independent per-vertex
// shading normals, interpolated barycentrically on hit (spec.md §4.2).
func NewTriangleSmooth(v0, v1, v2, n0, n1, n2 core.Vec3, bsdf core.BSDF) *Triangle {
	geomN := v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	return &Triangle{
		V0: v0, V1: v1, V2: v2,
		N0: n0.Normalize(), N1: n1.Normalize(), N2: n2.Normalize(),
		BSDF:       bsdf,
		geomNormal: geomN,
		bbox:       core.NewBBoxFromPoints(v0, v1, v2),
	}
}

func (t *Triangle) BoundingBox() core.BBox { return t.bbox }

// hit is the shared Möller-style intersection test (spec.md §4.2): plane
// equation + barycentric test, rejecting t outside [ray.MinT, ray.MaxT]
// and requiring beta, gamma in [0,1] with beta+gamma <= 1.
func (t *Triangle) hit(ray *core.Ray) (tHit, beta, gamma float64, ok bool) {
	const epsilon = 1e-8

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return 0, 0, 0, false // ray parallel to triangle plane
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	beta = f * s.Dot(h)
	if beta < 0.0 || beta > 1.0 {
		return 0, 0, 0, false
	}

	q := s.Cross(edge1)
	gamma = f * ray.Direction.Dot(q)
	if gamma < 0.0 || beta+gamma > 1.0 {
		return 0, 0, 0, false
	}

	tHit = f * edge2.Dot(q)
	if tHit < ray.MinT || tHit > ray.MaxT {
		return 0, 0, 0, false
	}

	return tHit, beta, gamma, true
}

func (t *Triangle) Hit(ray *core.Ray) (*core.Intersection, bool) {
	tHit, beta, gamma, ok := t.hit(ray)
	if !ok {
		return nil, false
	}
	ray.MaxT = tHit

	alpha := 1.0 - beta - gamma
	shadingNormal := t.N0.Multiply(alpha).Add(t.N1.Multiply(beta)).Add(t.N2.Multiply(gamma)).Normalize()
	uv := t.UV0.Multiply(alpha).Add(t.UV1.Multiply(beta)).Add(t.UV2.Multiply(gamma))
	point := ray.At(tHit)

	isect := &core.Intersection{
		T:         tHit,
		Point:     point,
		UV:        uv,
		Primitive: t,
		BSDF:      resolveBSDF(t.BSDF, t.Texture, uv, point),
	}
	isect.SetFaceNormal(*ray, shadingNormal)
	return isect, true
}

func (t *Triangle) Occluded(ray *core.Ray) bool {
	_, _, _, ok := t.hit(ray)
	return ok
}

package primitive

import (
	"math"

	"github.com/lumenray/tracer/pkg/core"
)

// Sphere is a ray-intersectable sphere, grounded on the teacher's
// pkg/geometry/sphere.go quadratic-root solver.
type Sphere struct {
	Center  core.Vec3
	Radius  float64
	BSDF    core.BSDF
	Texture core.Texture // optional; overrides BSDF's albedo per-hit when set
}

func NewSphere(center core.Vec3, radius float64, bsdf core.BSDF) *Sphere {
	return &Sphere{Center: center, Radius: radius, BSDF: bsdf}
}

func (s *Sphere) BoundingBox() core.BBox {
	r := core.Vec3{X: s.Radius, Y: s.Radius, Z: s.Radius}
	return core.NewBBox(s.Center.Subtract(r), s.Center.Add(r))
}

// solve returns the smallest root of the sphere's quadratic that lies
// within [ray.MinT, ray.MaxT].
func (s *Sphere) solve(ray *core.Ray) (float64, bool) {
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, false
	}
	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root < ray.MinT || root > ray.MaxT {
		root = (-halfB + sqrtD) / a
		if root < ray.MinT || root > ray.MaxT {
			return 0, false
		}
	}
	return root, true
}

func (s *Sphere) Hit(ray *core.Ray) (*core.Intersection, bool) {
	tHit, ok := s.solve(ray)
	if !ok {
		return nil, false
	}
	ray.MaxT = tHit

	point := ray.At(tHit)
	outwardNormal := point.Subtract(s.Center).Multiply(1.0 / s.Radius)
	uv := sphereUV(outwardNormal)

	isect := &core.Intersection{
		T:         tHit,
		Point:     point,
		UV:        uv,
		Primitive: s,
		BSDF:      resolveBSDF(s.BSDF, s.Texture, uv, point),
	}
	isect.SetFaceNormal(*ray, outwardNormal)
	return isect, true
}

func (s *Sphere) Occluded(ray *core.Ray) bool {
	_, ok := s.solve(ray)
	return ok
}

// sphereUV maps a point on the unit sphere to (u, v) via standard
// spherical coordinates, used for equirectangular texture lookup.
func sphereUV(p core.Vec3) core.Vec2 {
	theta := math.Acos(-p.Y)
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return core.Vec2{X: phi / (2 * math.Pi), Y: theta / math.Pi}
}

// Area returns the sphere's surface area, for use as an area light.
func (s *Sphere) Area() float64 { return 4 * math.Pi * s.Radius * s.Radius }

// SamplePoint draws a uniform point on the sphere's surface, grounded on
// the teacher's pkg/geometry/sphere_light.go uniform-sphere sampling.
func (s *Sphere) SamplePoint(u core.Vec2) (point, normal core.Vec3) {
	normal = core.UniformSampleSphere(u)
	point = s.Center.Add(normal.Multiply(s.Radius))
	return point, normal
}

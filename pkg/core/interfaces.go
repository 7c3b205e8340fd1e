package core

// Logger is the structured-logging sink used throughout the renderer,
// implemented in pkg/rtlog over zerolog.
type Logger interface {
	Printf(format string, args ...interface{})
}

// BSDF is the bidirectional scattering distribution function contract
// (spec.md §4.4). All directions are in the local shading frame, z=normal.
type BSDF interface {
	// F returns the BSDF value for the given local wo, wi pair. Delta
	// BSDFs return zero for any wi (IsDelta() reports true instead).
	F(wo, wi Vec3) Spectrum

	// SampleF samples an outgoing local direction given wo, returning its
	// BSDF value and pdf (solid-angle measure unless IsDelta()).
	SampleF(wo Vec3, sampler Sampler) (wi Vec3, f Spectrum, pdf float64)

	// PDF returns the solid-angle pdf of sampling wi via SampleF from wo.
	PDF(wo, wi Vec3) float64

	// IsDelta reports whether this BSDF's scattering is concentrated on a
	// measure-zero set of directions (mirror, refraction, glass).
	IsDelta() bool
}

// Emitter is implemented by BSDFs attached to emissive surfaces.
type Emitter interface {
	Emit(wo Vec3) Spectrum
}

// Texture supplies a spatially-varying color, sampled either by surface UV
// (image textures) or by world point (procedural textures), per the
// teacher's material.ColorSource contract.
type Texture interface {
	Evaluate(uv Vec2, point Vec3) Spectrum
}

// Intersection carries the result of a closest-hit query: parametric t,
// the shading normal oriented toward the incident ray, the hit point, a
// back-pointer to the primitive, and the primitive's BSDF (spec.md §3).
type Intersection struct {
	T         float64
	Point     Vec3
	Normal    Vec3 // unit, oriented opposite the incident ray
	FrontFace bool
	UV        Vec2
	Primitive Primitive
	BSDF      BSDF
}

// SetFaceNormal orients Normal against the incident ray direction and
// records which face was hit.
func (isect *Intersection) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	isect.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if isect.FrontFace {
		isect.Normal = outwardNormal
	} else {
		isect.Normal = outwardNormal.Negate()
	}
}

// Primitive is a ray-intersectable scene object (triangle or sphere,
// spec.md §3). BoundingBox must be stable for the primitive's lifetime so
// the BVH can index it by handle.
type Primitive interface {
	// Hit performs a closest-hit query, narrowing [ray.MinT, ray.MaxT].
	Hit(ray *Ray) (*Intersection, bool)

	// Occluded performs an occlusion-only query (no Intersection built).
	Occluded(ray *Ray) bool

	BoundingBox() BBox
}

// Camera generates primary rays and maps world points back to screen
// space for BDPT's camera-splat connection (spec.md §6).
type Camera interface {
	GenerateRay(u, v float64, sampler Sampler) Ray
	Position() Vec3
	Forward() Vec3
	GetScreenPos(worldPoint Vec3) (u, v float64, onScreen bool)
	// PDFs returns the (positional, directional) sampling pdf for a ray
	// generated by this camera, needed by BDPT to weight camera vertices.
	PDFs(ray Ray) (posPdf, dirPdf float64)
}

// SamplingConfig carries the ambient rendering knobs that are not part of
// the transport math proper but are threaded through every integrator
// call (spec.md §3).
type SamplingConfig struct {
	Width  int
	Height int

	SamplesPerPixel int // ns_aa
	NsAreaLight     int // ns_area_light: NEE samples per light
	MaxDepth        int

	RussianRouletteMinBounces int
}

// Clamp1 clamps x to [0,1]; used for Russian-roulette continue probability.
func Clamp1(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

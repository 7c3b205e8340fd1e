// Package scene assembles the shapes/lights/camera a render needs into an
// integrator.Scene, grounded on the teacher's pkg/scene/scene.go. The
// procedural builders in this package (cornell.go, default_scene.go,
// spheregrid.go) are adapted from the teacher's same-named files to
// construct pkg/primitive shapes and pkg/bsdf materials instead of
// pkg/geometry/pkg/material ones; pkg/loaders is the other producer of a
// Scene, parsing PBRT/PLY/glTF scene descriptions into the same shape.
package scene

import (
	"github.com/lumenray/tracer/pkg/bsdf"
	"github.com/lumenray/tracer/pkg/bvh"
	"github.com/lumenray/tracer/pkg/core"
	"github.com/lumenray/tracer/pkg/integrator"
	"github.com/lumenray/tracer/pkg/light"
	"github.com/lumenray/tracer/pkg/primitive"
)

// Scene is the mutable, builder-facing scene description: a flat list of
// primitives and lights plus the camera and sampling knobs, matching the
// teacher's Scene struct but over core.Primitive/light.Light instead of
// geometry.Shape/lights.Light.
type Scene struct {
	Camera core.Camera
	Shapes []core.Primitive
	Lights []light.Light
	Config core.SamplingConfig

	// BuildStrategy selects the BVH build algorithm; StrategySAH unless
	// a caller overrides it (e.g. to exercise StrategyMorton).
	BuildStrategy bvh.Strategy
}

// NewGroundQuad builds a large horizontal quad centered at center, replacing
// an infinite ground plane with a finite one the BVH can bound, matching
// the teacher's scene.NewGroundQuad.
func NewGroundQuad(center core.Vec3, size float64, surface core.BSDF) *primitive.Quad {
	corner := core.Vec3{X: center.X - size/2, Y: center.Y, Z: center.Z - size/2}
	u := core.Vec3{X: size}
	v := core.Vec3{Z: size}
	return primitive.NewQuad(corner, u, v, surface)
}

// AddQuadLight adds a rectangular area light and its emitting quad to the
// scene, mirroring the teacher's Scene.AddQuadLight.
func (s *Scene) AddQuadLight(corner, u, v core.Vec3, emission core.Spectrum) {
	quad := primitive.NewQuad(corner, u, v, bsdf.NewEmissive(emission))
	s.Shapes = append(s.Shapes, quad)
	s.Lights = append(s.Lights, light.NewAreaQuad(quad, emission))
}

// AddDiscLight adds a circular area light and its emitting disc to the scene.
func (s *Scene) AddDiscLight(center, normal core.Vec3, radius float64, emission core.Spectrum) {
	disc := primitive.NewDisc(center, normal, radius, bsdf.NewEmissive(emission))
	s.Shapes = append(s.Shapes, disc)
	s.Lights = append(s.Lights, light.NewAreaDisc(disc, emission))
}

// AddPointLight adds a delta-distribution point light (no emitting surface:
// a point light has no area for a primary ray to hit).
func (s *Scene) AddPointLight(position core.Vec3, emission core.Spectrum) {
	s.Lights = append(s.Lights, light.NewPoint(position, emission))
}

// AddDirectionalLight adds a delta-distribution directional light.
func (s *Scene) AddDirectionalLight(direction core.Vec3, emission core.Spectrum) {
	s.Lights = append(s.Lights, light.NewDirectional(direction, emission))
}

// AddEnvironmentLight adds an infinite environment-map light, importance
// sampled over the map's per-texel luminance.
func (s *Scene) AddEnvironmentLight(m *light.EnvMap) {
	s.Lights = append(s.Lights, light.NewEnvironment(m))
}

// lightPower estimates a light's scalar power for the alias sampler's
// weighting, using each light's public Emission field where one exists and
// falling back to a flat weight for lights (like Environment) that carry
// no single emission value.
func lightPower(l light.Light) float64 {
	switch v := l.(type) {
	case *light.Point:
		return core.Illum(v.Emission)
	case *light.Directional:
		return core.Illum(v.Emission)
	case *light.Area:
		return core.Illum(v.Emission) * v.Shape.Area()
	default:
		return 1.0
	}
}

// Build finalizes the scene into an integrator.Scene: it builds the BVH
// over Shapes and constructs an alias-sampled light.Sampler over Lights,
// preprocessing every light that needs the finite scene bounds (the
// environment light's world radius), mirroring the teacher's
// Scene.Preprocess.
func (s *Scene) Build() *integrator.Scene {
	tree := bvh.Build(s.Shapes, s.BuildStrategy)

	for _, l := range s.Lights {
		if pre, ok := l.(light.Preprocess); ok {
			pre.Preprocess(tree.Center, tree.Radius)
		}
	}

	sampler := light.NewAliasLightSampler(s.Lights, lightPower)

	return &integrator.Scene{
		BVH:          tree,
		Lights:       s.Lights,
		LightSampler: sampler,
		Camera:       s.Camera,
		Config:       s.Config,
	}
}

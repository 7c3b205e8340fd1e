// Package integrator implements the rendering equation estimators of
// spec.md §4.6: unidirectional path tracing (PathTracer.TraceRay) and
// bidirectional path tracing (BDPT.TraceRay), grounded on the teacher's
// pkg/integrator/{path_tracing,bdpt,bdpt_mis}.go.
package integrator

import (
	"github.com/lumenray/tracer/pkg/bvh"
	"github.com/lumenray/tracer/pkg/core"
	"github.com/lumenray/tracer/pkg/light"
)

// Scene bundles everything an integrator needs to trace a ray: the
// acceleration structure, the light set and its sampler, and the ambient
// config, replacing the teacher's core.Scene (which this pack's retrieved
// snapshot referenced but never defined).
type Scene struct {
	BVH          *bvh.BVH
	Lights       []light.Light
	LightSampler light.Sampler
	Camera       core.Camera
	Config       core.SamplingConfig
}

func (s *Scene) hit(ray *core.Ray) (*core.Intersection, bool) {
	if s.BVH == nil {
		return nil, false
	}
	return s.BVH.Hit(ray)
}

func (s *Scene) occluded(ray *core.Ray) bool {
	if s.BVH == nil {
		return false
	}
	return s.BVH.Occluded(ray)
}

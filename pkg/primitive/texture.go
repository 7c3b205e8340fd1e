package primitive

import (
	"github.com/lumenray/tracer/pkg/bsdf"
	"github.com/lumenray/tracer/pkg/core"
)

// resolveBSDF returns base unchanged unless tex is set, in which case it
// rebuilds a diffuse BSDF with the texture's per-hit color. Textures only
// apply to diffuse surfaces in this renderer (spec.md §4.4 names texture
// mapping only as an albedo source, not as a modifier of mirror/glass
// Fresnel parameters), grounded on the teacher's material.ColorSource
// being consumed exclusively by Lambertian in pkg/material/lambertian.go.
func resolveBSDF(base core.BSDF, tex core.Texture, uv core.Vec2, point core.Vec3) core.BSDF {
	if tex == nil {
		return base
	}
	return bsdf.NewDiffuse(tex.Evaluate(uv, point))
}

package material

import (
	"github.com/lumenray/tracer/pkg/bsdf"
	"github.com/lumenray/tracer/pkg/core"
)

// DefaultRegistry registers the five BSDF kinds spec.md §4.4 names,
// mirroring the teacher's loaders/pbrt.go switch over material statement
// names but as a data-driven table rather than an inline type switch.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("diffuse", func(d Desc) core.BSDF { return bsdf.NewDiffuse(d.Albedo) })
	r.Register("mirror", func(d Desc) core.BSDF { return bsdf.NewMirror(d.Reflectance) })
	r.Register("refraction", func(d Desc) core.BSDF { return bsdf.NewRefraction(d.Transmittance, d.IOR) })
	r.Register("glass", func(d Desc) core.BSDF { return bsdf.NewGlass(d.Reflectance, d.Transmittance, d.IOR) })
	r.Register("emissive", func(d Desc) core.BSDF { return bsdf.NewEmissive(d.Radiance) })
	return r
}

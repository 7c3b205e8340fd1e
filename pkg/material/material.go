// Package material is the thin adapter layer between scene-description
// records (PBRT "Material" statements) and
// pkg/bsdf, per SPEC_FULL.md §4.4. It intentionally carries no scattering
// logic of its own; every BSDF lives in pkg/bsdf, grounded on the
// teacher's former pkg/material/{lambertian,metal,dielectric,emissive}.go.
package material

import "github.com/lumenray/tracer/pkg/core"

// Desc is a loader-facing, serializable material description: a name plus
// the parameters each BSDF kind needs. The PBRT scene converter
// (pkg/scene/pbrt_scene.go) builds these from parsed Material statements;
// the glTF loader reads no materials. Build turns one into a core.BSDF.
type Desc struct {
	Kind          string // "diffuse" | "mirror" | "refraction" | "glass" | "emissive"
	Albedo        core.Spectrum
	Reflectance   core.Spectrum
	Transmittance core.Spectrum
	Radiance      core.Spectrum
	IOR           float64
}

// Builder constructs a core.BSDF from a Desc. Kept as a function value
// (not a hard-coded switch importing pkg/bsdf directly in the loader) so
// new BSDF kinds can register themselves without editing every loader.
type Builder func(Desc) core.BSDF

// Registry maps description kind names to their Builder, the same
// name-lookup pattern the teacher's loaders/pbrt.go uses for shape and
// material statement dispatch.
type Registry struct {
	builders map[string]Builder
}

func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

func (r *Registry) Register(kind string, b Builder) { r.builders[kind] = b }

func (r *Registry) Build(d Desc) (core.BSDF, bool) {
	b, ok := r.builders[d.Kind]
	if !ok {
		return nil, false
	}
	return b(d), true
}

package integrator

import "github.com/lumenray/tracer/pkg/core"

// Integrator is the common contract the scheduler's worker pool renders
// through, letting a render job pick PathTracer or BDPT without knowing
// which (spec.md §4.6). Grounded on the teacher's own Integrator interface,
// narrowed to this package's Scene type and TraceRay signature.
type Integrator interface {
	TraceRay(ray core.Ray, sampler core.Sampler) core.Spectrum
}

var (
	_ Integrator = (*PathTracer)(nil)
	_ Integrator = (*BDPT)(nil)
)

package integrator

import (
	"math"

	"github.com/lumenray/tracer/pkg/core"
)

// PathTracer implements unidirectional path tracing with next-event
// estimation, grounded on the teacher's
// pkg/integrator/path_tracing.go, restructured to spec.md §4.6.1's
// numbered steps: per-bounce Russian roulette, NEE over every light with
// nsAreaLight samples each, and an explicit includeEmission flag so a
// delta bounce's emission and a later NEE sample of the same light are
// never both counted.
type PathTracer struct {
	Scene *Scene
}

func NewPathTracer(scene *Scene) *PathTracer { return &PathTracer{Scene: scene} }

// TraceRay estimates incident radiance along ray.
func (pt *PathTracer) TraceRay(ray core.Ray, sampler core.Sampler) core.Spectrum {
	return pt.traceRay(ray, sampler, pt.Scene.Config.MaxDepth, core.Spectrum{X: 1, Y: 1, Z: 1}, true)
}

func (pt *PathTracer) traceRay(ray core.Ray, sampler core.Sampler, depth int, throughput core.Spectrum, includeEmission bool) core.Spectrum {
	if depth <= 0 {
		return core.BlackSpectrum
	}

	bounce := pt.Scene.Config.MaxDepth - depth
	if bounce >= pt.Scene.Config.RussianRouletteMinBounces {
		survival := core.Clamp1(core.Illum(throughput))
		if survival < 0.05 {
			survival = 0.05
		}
		if sampler.Get1D() > survival {
			return core.BlackSpectrum
		}
		throughput = throughput.Multiply(1.0 / survival)
	}

	isect, hit := pt.Scene.hit(&ray)
	if !hit {
		if !includeEmission {
			return core.BlackSpectrum
		}
		return pt.environmentRadiance(ray)
	}

	var emitted core.Spectrum
	if includeEmission {
		if emitter, ok := isect.BSDF.(core.Emitter); ok {
			emitted = emitter.Emit(worldToLocal(isect.Normal, ray.Direction.Negate()))
		}
	}

	if isect.BSDF == nil {
		return emitted
	}

	frame := core.MakeCoordSpace(isect.Normal)
	wo := frame.MulVec(ray.Direction.Negate())

	var direct core.Spectrum
	if !isect.BSDF.IsDelta() {
		direct = pt.sampleLights(isect, frame, wo, sampler)
	}

	wiLocal, f, pdf := isect.BSDF.SampleF(wo, sampler)
	if pdf <= 0 || core.Illum(f) <= 0 {
		return emitted.Add(direct)
	}

	wiWorld := frame.Transpose().MulVec(wiLocal)
	cosTheta := math.Abs(wiLocal.Z)

	newThroughput := throughput.MultiplyVec(f).Multiply(cosTheta / pdf)
	bounceRay := core.NewRay(isect.Point, wiWorld)
	incoming := pt.traceRay(bounceRay, sampler, depth-1, newThroughput, isect.BSDF.IsDelta())

	indirect := f.Multiply(cosTheta / pdf).MultiplyVec(incoming)
	return emitted.Add(direct).Add(indirect)
}

// sampleLights performs NEE with pt.Scene.Config.NsAreaLight samples per
// light, each contributing the full L*f*cosTheta/pdf estimator: the
// BSDF-sampled continuation never collects emission from a non-delta
// bounce (includeEmission above), so there is no complementary term for
// an MIS weight to balance against here.
func (pt *PathTracer) sampleLights(isect *core.Intersection, frame core.Mat3, wo core.Vec3, sampler core.Sampler) core.Spectrum {
	ns := pt.Scene.Config.NsAreaLight
	if ns <= 0 {
		ns = 1
	}

	var sum core.Spectrum
	for _, l := range pt.Scene.Lights {
		var lightSum core.Spectrum
		for i := 0; i < ns; i++ {
			sample := l.SampleL(isect.Point, isect.Normal, sampler.Get2D())
			if sample.PDF <= 0 || core.Illum(sample.Emission) <= 0 {
				continue
			}

			wiLocal := frame.MulVec(sample.Direction)
			if wiLocal.Z <= 0 {
				continue
			}

			shadowRay := core.NewRayBounded(isect.Point, sample.Direction, 1e-4, sample.Distance-1e-3)
			if pt.Scene.occluded(&shadowRay) {
				continue
			}

			f := isect.BSDF.F(wo, wiLocal)
			if core.Illum(f) <= 0 {
				continue
			}

			contribution := f.MultiplyVec(sample.Emission).Multiply(wiLocal.Z / sample.PDF)
			lightSum = lightSum.Add(contribution)
		}
		sum = sum.Add(lightSum.Multiply(1.0 / float64(ns)))
	}
	return sum
}

func (pt *PathTracer) environmentRadiance(ray core.Ray) core.Spectrum {
	var sum core.Spectrum
	for _, l := range pt.Scene.Lights {
		if l.IsInfinite() {
			sum = sum.Add(l.Emit(ray))
		}
	}
	return sum
}

// worldToLocal transforms a world-space direction into the local shading
// frame defined by normal (z-up).
func worldToLocal(normal, worldDir core.Vec3) core.Vec3 {
	return core.MakeCoordSpace(normal).MulVec(worldDir)
}

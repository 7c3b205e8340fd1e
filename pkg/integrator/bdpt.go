package integrator

import (
	"math"

	"github.com/lumenray/tracer/pkg/core"
	"github.com/lumenray/tracer/pkg/light"
)

// Vertex is one node of an eye or light subpath (spec.md §3/§4.6.2):
// position, normal, local incident/outgoing directions, the BSDF at that
// surface (nil for the light-origin vertex of a light subpath), and the
// cumulative throughput from the path's start up to this vertex (not yet
// multiplied by this vertex's own BSDF value). Grounded on the teacher's much larger Vertex (pkg/integrator/
// bdpt.go), stripped of the forward/reverse-PDF bookkeeping that exists
// there only to support the full balance-heuristic MIS this renderer
// deliberately simplifies away (spec.md §4.6.2/§9, see bdpt_mis.go).
type Vertex struct {
	Point  core.Vec3
	Normal core.Vec3
	Wi     core.Vec3 // local frame, direction back toward the previous vertex
	Wo     core.Vec3 // local frame, direction toward the next vertex (if any)
	BSDF   core.BSDF
	Light  light.Light
	Beta   core.Spectrum
}

const minConnectionDistSq = 0.05

// BDPT implements bidirectional path tracing, connecting an eye subpath
// and a light subpath across all four of spec.md §4.6.2's path classes.
type BDPT struct {
	Scene        *Scene
	MaxDepth     int
	MISWeightFn  func(i, j int) float64
	onPixelSplat func(x, y int, contribution core.Spectrum)
}

// NewBDPT builds a BDPT integrator using the deliberately simplified
// w(i,j)=1/(i+j+1) MIS weight as the default (spec.md §4.6.2/§9); pass a
// different weight function (see bdpt_mis.go's BalanceHeuristicWeight) to
// study the alternative.
func NewBDPT(scene *Scene, onPixelSplat func(x, y int, contribution core.Spectrum)) *BDPT {
	return &BDPT{
		Scene:        scene,
		MaxDepth:     30,
		MISWeightFn:  simpleMISWeight,
		onPixelSplat: onPixelSplat,
	}
}

func simpleMISWeight(i, j int) float64 { return 1.0 / float64(i+j+1) }

// samplesPerPixel returns the scheduled samples-per-pixel count, used to
// scale each case-III splat per spec.md §4.6.2's closing paragraph: every
// accumulated contribution is divided by ns_aa so that averaging over
// ns_aa TraceRay calls per pixel (one light subpath, and so at most one
// splat per connection, generated per call) yields the unbiased
// estimator, rather than growing without bound as samples-per-pixel
// increases.
func (b *BDPT) samplesPerPixel() float64 {
	if b.Scene.Config.SamplesPerPixel <= 0 {
		return 1
	}
	return float64(b.Scene.Config.SamplesPerPixel)
}

// TraceRay evaluates the BDPT estimator for one camera ray, returning the
// sum of contributions from cases I, II, and IV (case III splats directly
// to arbitrary pixels via onPixelSplat rather than returning through this
// call, per spec.md §4.6.2/§4.7).
func (b *BDPT) TraceRay(ray core.Ray, sampler core.Sampler) core.Spectrum {
	eyePath := b.randomWalk(ray, core.Spectrum{X: 1, Y: 1, Z: 1}, sampler, nil)
	lightPath, lightVertex0 := b.generateLightSubpath(sampler)

	var total core.Spectrum

	// Case I: any eye vertex that lands on emissive geometry adds its emission.
	for i, v := range eyePath {
		if emitter, ok := v.BSDF.(core.Emitter); ok {
			emitted := emitter.Emit(v.Wi)
			if core.Illum(emitted) > 0 {
				contribution := v.Beta.MultiplyVec(emitted)
				total = total.Add(contribution.Multiply(b.MISWeightFn(i, 0)))
			}
		}
	}

	// Case II: NEE from every non-delta eye vertex to every light.
	for i, v := range eyePath {
		if v.BSDF == nil || v.BSDF.IsDelta() {
			continue
		}
		direct := b.directLighting(v, sampler)
		if core.Illum(direct) > 0 {
			total = total.Add(direct.Multiply(b.MISWeightFn(i, 1)))
		}
	}

	// Case III: connect every light-subpath vertex to the camera directly,
	// splatting to its reprojected pixel instead of this pixel's radiance.
	if lightVertex0 != nil {
		b.connectToCamera(*lightVertex0, 0)
		for j, v := range lightPath {
			b.connectToCamera(v, j+1)
		}
	}

	// Case IV: connect every eye vertex to every light vertex.
	for i, ev := range eyePath {
		if ev.BSDF == nil || ev.BSDF.IsDelta() {
			continue
		}
		for j, lv := range lightPath {
			contribution := b.connect(ev, lv)
			if core.Illum(contribution) > 0 {
				total = total.Add(contribution.Multiply(b.MISWeightFn(i, j+2)))
			}
		}
	}

	return total
}

// randomWalk builds a subpath by recursively sampling the BSDF at each
// intersection, terminating on throughput luminance < 1e-7, depth > 30, or
// a scene miss (spec.md §4.6.2).
func (b *BDPT) randomWalk(ray core.Ray, beta core.Spectrum, sampler core.Sampler, seed *Vertex) []Vertex {
	var path []Vertex
	if seed != nil {
		path = append(path, *seed)
	}

	for depth := 0; depth < b.MaxDepth; depth++ {
		if core.Illum(beta) < 1e-7 {
			break
		}
		isect, hit := b.Scene.hit(&ray)
		if !hit {
			break
		}

		frame := core.MakeCoordSpace(isect.Normal)
		wi := frame.MulVec(ray.Direction.Negate())

		v := Vertex{Point: isect.Point, Normal: isect.Normal, Wi: wi, BSDF: isect.BSDF, Beta: beta}

		if isect.BSDF == nil {
			path = append(path, v)
			break
		}

		wo, f, pdf := isect.BSDF.SampleF(wi, sampler)
		if pdf <= 0 || core.Illum(f) <= 0 {
			path = append(path, v)
			break
		}
		v.Wo = wo
		path = append(path, v)

		cosTheta := math.Abs(wo.Z)
		beta = beta.MultiplyVec(f).Multiply(cosTheta / pdf)
		ray = core.NewRay(isect.Point, frame.Transpose().MulVec(wo))
	}

	return path
}

// generateLightSubpath samples an emission point from a light drawn by the
// scene's LightSampler and random-walks it through the scene, returning the walk's
// continuation vertices plus the light-origin vertex separately (the
// origin vertex has no BSDF, so it cannot be stored in the []Vertex chain
// the same way interior vertices are).
func (b *BDPT) generateLightSubpath(sampler core.Sampler) ([]Vertex, *Vertex) {
	if b.Scene.LightSampler == nil || b.Scene.LightSampler.Count() == 0 {
		return nil, nil
	}

	l, pmf, _ := b.Scene.LightSampler.SampleLight(sampler.Get1D())
	if pmf <= 0 {
		return nil, nil
	}

	es := l.SampleEmission(sampler.Get2D(), sampler.Get2D())
	if es.AreaPDF <= 0 || es.DirectionPDF <= 0 {
		return nil, nil
	}

	cosTheta := math.Max(0, es.Direction.Dot(es.Normal))
	beta := es.Emission.Multiply(cosTheta / (pmf * es.AreaPDF * es.DirectionPDF))

	origin := Vertex{Point: es.Point, Normal: es.Normal, Wo: es.Direction, Light: l, Beta: beta}
	ray := core.NewRay(es.Point, es.Direction)
	rest := b.randomWalk(ray, beta, sampler, nil)
	return rest, &origin
}

// directLighting evaluates NEE from a single eye vertex (spec.md §4.6.2
// Case II): the unweighted L*f*cosTheta/pdf estimator averaged over
// NsAreaLight samples per light, with no MIS weight.
func (b *BDPT) directLighting(v Vertex, sampler core.Sampler) core.Spectrum {
	ns := b.Scene.Config.NsAreaLight
	if ns <= 0 {
		ns = 1
	}
	frame := core.MakeCoordSpace(v.Normal)

	var sum core.Spectrum
	for _, l := range b.Scene.Lights {
		for i := 0; i < ns; i++ {
			sample := l.SampleL(v.Point, v.Normal, sampler.Get2D())
			if sample.PDF <= 0 || core.Illum(sample.Emission) <= 0 {
				continue
			}
			wiLocal := frame.MulVec(sample.Direction)
			if wiLocal.Z <= 0 {
				continue
			}
			shadowRay := core.NewRayBounded(v.Point, sample.Direction, 1e-4, sample.Distance-1e-3)
			if b.Scene.occluded(&shadowRay) {
				continue
			}
			f := v.BSDF.F(v.Wi, wiLocal)
			if core.Illum(f) <= 0 {
				continue
			}
			contribution := v.Beta.MultiplyVec(f).MultiplyVec(sample.Emission).Multiply(wiLocal.Z / sample.PDF)
			sum = sum.Add(contribution)
		}
	}
	return sum.Multiply(1.0 / float64(ns))
}

// connect joins an eye vertex and a light vertex with a shadow ray
// (spec.md §4.6.2 Case IV), rejecting near-singular connections below a
// squared distance of 0.05.
func (b *BDPT) connect(eye, lightV Vertex) core.Spectrum {
	if eye.BSDF == nil || eye.BSDF.IsDelta() {
		return core.BlackSpectrum
	}

	delta := lightV.Point.Subtract(eye.Point)
	distSq := delta.LengthSquared()
	if distSq < minConnectionDistSq {
		return core.BlackSpectrum
	}
	dist := math.Sqrt(distSq)
	dirEyeToLight := delta.Multiply(1.0 / dist)

	shadowRay := core.NewRayBounded(eye.Point, dirEyeToLight, 1e-4, dist-1e-3)
	if b.Scene.occluded(&shadowRay) {
		return core.BlackSpectrum
	}

	eyeFrame := core.MakeCoordSpace(eye.Normal)
	wiEye := eyeFrame.MulVec(dirEyeToLight)
	if wiEye.Z <= 0 {
		return core.BlackSpectrum
	}
	fEye := eye.BSDF.F(eye.Wi, wiEye)
	if core.Illum(fEye) <= 0 {
		return core.BlackSpectrum
	}

	cosEye := wiEye.Z
	var fLight core.Spectrum
	var cosLight float64
	if lightV.BSDF != nil {
		lightFrame := core.MakeCoordSpace(lightV.Normal)
		wiLight := lightFrame.MulVec(dirEyeToLight.Negate())
		if wiLight.Z <= 0 {
			return core.BlackSpectrum
		}
		fLight = lightV.BSDF.F(lightV.Wi, wiLight)
		cosLight = wiLight.Z
	} else {
		// Light-origin vertex: its "BSDF" is the emission's cosine lobe,
		// already folded into Beta by generateLightSubpath.
		fLight = core.Spectrum{X: 1, Y: 1, Z: 1}
		cosLight = math.Max(0, lightV.Normal.Dot(dirEyeToLight.Negate()))
	}
	if core.Illum(fLight) <= 0 {
		return core.BlackSpectrum
	}

	g := cosEye * cosLight / distSq
	return eye.Beta.MultiplyVec(fEye).MultiplyVec(lightV.Beta).MultiplyVec(fLight).Multiply(g)
}

// connectToCamera implements Case III: connect a light-subpath vertex
// directly to the camera lens, splatting the contribution to the
// reprojected pixel via onPixelSplat (spec.md §4.6.2/§4.7).
func (b *BDPT) connectToCamera(v Vertex, j int) {
	if b.onPixelSplat == nil || b.Scene.Camera == nil {
		return
	}

	toCamera := b.Scene.Camera.Position().Subtract(v.Point)
	distSq := toCamera.LengthSquared()
	if distSq < minConnectionDistSq {
		return
	}
	dist := math.Sqrt(distSq)
	dir := toCamera.Multiply(1.0 / dist)

	u, vv, onScreen := b.Scene.Camera.GetScreenPos(v.Point)
	if !onScreen {
		return
	}

	shadowRay := core.NewRayBounded(v.Point, dir, 1e-4, dist-1e-3)
	if b.Scene.occluded(&shadowRay) {
		return
	}

	var f core.Spectrum
	var cosSurface float64
	if v.BSDF != nil {
		frame := core.MakeCoordSpace(v.Normal)
		wiLocal := frame.MulVec(dir)
		if wiLocal.Z <= 0 {
			return
		}
		f = v.BSDF.F(v.Wi, wiLocal)
		cosSurface = wiLocal.Z
	} else {
		f = core.Spectrum{X: 1, Y: 1, Z: 1}
		cosSurface = math.Max(0, v.Normal.Dot(dir))
	}
	if core.Illum(f) <= 0 {
		return
	}

	_, camDirPdf := b.Scene.Camera.PDFs(shadowRay)
	if camDirPdf <= 0 {
		return
	}

	g := cosSurface / distSq
	contribution := v.Beta.MultiplyVec(f).Multiply(g * b.MISWeightFn(0, j) / b.samplesPerPixel())

	px := int(u * float64(b.Scene.Config.Width))
	py := int(vv * float64(b.Scene.Config.Height))
	b.onPixelSplat(px, py, contribution)
}

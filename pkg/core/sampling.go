package core

import "math"

// Sampler supplies the random numbers consumed by BSDFs, lights, and
// integrators. Each worker owns its own Sampler instance (spec.md §5:
// per-worker PRNG state, never shared) so concurrent renders need no
// synchronization here.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// PowerHeuristic implements the beta=2 power heuristic for multiple
// importance sampling between two strategies.
func PowerHeuristic(nf int, fPdf float64, ng int, gPdf float64) float64 {
	if fPdf == 0 {
		return 0
	}
	f := float64(nf) * fPdf
	g := float64(ng) * gPdf
	return (f * f) / (f*f + g*g)
}

// BalanceHeuristic implements the balance heuristic for multiple
// importance sampling between two strategies.
func BalanceHeuristic(nf int, fPdf float64, ng int, gPdf float64) float64 {
	if fPdf == 0 {
		return 0
	}
	f := float64(nf) * fPdf
	g := float64(ng) * gPdf
	return f / (f + g)
}

// UniformSampleDisk maps a uniform 2D sample to a uniform point on the
// unit disk via the concentric (Shirley-Chiu) mapping.
func UniformSampleDisk(u Vec2) Vec2 {
	ox := 2*u.X - 1
	oy := 2*u.Y - 1
	if ox == 0 && oy == 0 {
		return Vec2{}
	}
	var r, theta float64
	if math.Abs(ox) > math.Abs(oy) {
		r = ox
		theta = (math.Pi / 4) * (oy / ox)
	} else {
		r = oy
		theta = math.Pi/2 - (math.Pi/4)*(ox/oy)
	}
	return Vec2{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

// RandomCosineDirectionLocal samples a direction in the local +z
// hemisphere with pdf = cosTheta/pi, used directly by BSDFs whose sampling
// already operates in the local shading frame (spec.md §4.4).
func RandomCosineDirectionLocal(u Vec2) Vec3 {
	d := UniformSampleDisk(u)
	z := math.Sqrt(math.Max(0, 1-d.X*d.X-d.Y*d.Y))
	return Vec3{X: d.X, Y: d.Y, Z: z}
}

// CosineHemispherePDF returns cosTheta/pi for a local-frame direction w.
func CosineHemispherePDF(cosTheta float64) float64 {
	if cosTheta <= 0 {
		return 0
	}
	return cosTheta / math.Pi
}

// RandomCosineDirection samples a cosine-weighted direction in the
// hemisphere around a world-space normal, for callers that have not
// transformed into the local frame.
func RandomCosineDirection(normal Vec3, u Vec2) Vec3 {
	frame := MakeCoordSpace(normal) // rows (x, y, z=normal)
	local := RandomCosineDirectionLocal(u)
	// frame maps world -> local; we need local -> world, i.e. the transpose.
	world := frame.Transpose().MulVec(local)
	return world.Normalize()
}

// UniformSampleSphere samples a direction uniformly over the full sphere.
func UniformSampleSphere(u Vec2) Vec3 {
	z := 1 - 2*u.X
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * u.Y
	return Vec3{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
}

// DecomposeSquares decomposes n into a sum of perfect squares, greedily
// taking the largest remaining square first (spec.md §4.6.3). Returns the
// side length of each square grid in decomposition order, e.g. 13 -> [3,2]
// (9 + 4).
func DecomposeSquares(n int) []int {
	var sides []int
	remaining := n
	for remaining > 0 {
		side := int(math.Sqrt(float64(remaining)))
		if side < 1 {
			side = 1
		}
		sides = append(sides, side)
		remaining -= side * side
	}
	return sides
}

// StratifiedGridSamples returns n*n jittered 2D samples for an n x n
// stratified grid covering the unit square, consuming one Get2D() per cell.
func StratifiedGridSamples(side int, sampler Sampler) []Vec2 {
	samples := make([]Vec2, 0, side*side)
	inv := 1.0 / float64(side)
	for j := 0; j < side; j++ {
		for i := 0; i < side; i++ {
			jitter := sampler.Get2D()
			samples = append(samples, Vec2{
				X: (float64(i) + jitter.X) * inv,
				Y: (float64(j) + jitter.Y) * inv,
			})
		}
	}
	return samples
}

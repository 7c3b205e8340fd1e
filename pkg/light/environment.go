package light

import (
	"math"

	"github.com/lumenray/tracer/pkg/core"
)

// EnvMap is a decoded equirectangular texture: Pixels is row-major RGB,
// Width columns by Height rows (Pixels[y*Width+x]).
type EnvMap struct {
	Width, Height int
	Pixels        []core.Spectrum
}

// Lookup bilinearly samples the map at (u, v) in [0,1)x[0,1], wrapping u
// around the seam and clamping v at the poles.
func (m *EnvMap) Lookup(u, v float64) core.Spectrum {
	if m == nil || len(m.Pixels) == 0 {
		return core.BlackSpectrum
	}
	u -= math.Floor(u)
	v = math.Min(math.Max(v, 0), 1)

	fx := u*float64(m.Width) - 0.5
	fy := v*float64(m.Height) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	at := func(x, y int) core.Spectrum {
		x = ((x % m.Width) + m.Width) % m.Width
		if y < 0 {
			y = 0
		}
		if y >= m.Height {
			y = m.Height - 1
		}
		return m.Pixels[y*m.Width+x]
	}

	c00, c10 := at(x0, y0), at(x0+1, y0)
	c01, c11 := at(x0, y0+1), at(x0+1, y0+1)

	top := c00.Multiply(1 - tx).Add(c10.Multiply(tx))
	bottom := c01.Multiply(1 - tx).Add(c11.Multiply(tx))
	return top.Multiply(1 - ty).Add(bottom.Multiply(ty))
}

// Environment is an infinite dome light backed by an equirectangular
// texture and importance-sampled over per-texel solid angle via an
// AliasTable, replacing the teacher's pkg/lights.UniformInfiniteLight
// (constant-color, cosine-hemisphere sampled) and
// pkg/lights/gradient_infinite_light.go (two-color vertical gradient, no
// importance sampling at all), per spec.md §4.5.
type Environment struct {
	Map         *EnvMap
	alias       *core.AliasTable
	worldCenter core.Vec3
	worldRadius float64
}

// NewEnvironment builds the per-texel luminance*solidAngle alias table. A
// texel's solid angle is Δφ*(cosθ1-cosθ2) for the two colatitude bounds of
// its row, matching the equirectangular differential-area element.
func NewEnvironment(m *EnvMap) *Environment {
	weights := make([]float64, m.Width*m.Height)
	dphi := 2 * math.Pi / float64(m.Width)
	for y := 0; y < m.Height; y++ {
		theta0 := math.Pi * float64(y) / float64(m.Height)
		theta1 := math.Pi * float64(y+1) / float64(m.Height)
		solidAngle := dphi * (math.Cos(theta0) - math.Cos(theta1))
		for x := 0; x < m.Width; x++ {
			lum := core.Illum(m.Pixels[y*m.Width+x])
			weights[y*m.Width+x] = lum * solidAngle
		}
	}
	return &Environment{Map: m, alias: core.NewAliasTable(weights)}
}

func (e *Environment) Preprocess(worldCenter core.Vec3, worldRadius float64) {
	e.worldCenter = worldCenter
	e.worldRadius = worldRadius
}

func dirToUV(d core.Vec3) (u, v float64) {
	theta := math.Acos(core.Clamp1(d.Y))
	phi := math.Atan2(d.Z, d.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return phi / (2 * math.Pi), theta / math.Pi
}

func uvToDir(u, v float64) core.Vec3 {
	phi := u * 2 * math.Pi
	theta := v * math.Pi
	sinTheta := math.Sin(theta)
	return core.Vec3{X: sinTheta * math.Cos(phi), Y: math.Cos(theta), Z: sinTheta * math.Sin(phi)}
}

func (e *Environment) directionPDF(direction core.Vec3) float64 {
	u, v := dirToUV(direction)
	x := int(u * float64(e.Map.Width))
	y := int(v * float64(e.Map.Height))
	if x >= e.Map.Width {
		x = e.Map.Width - 1
	}
	if y >= e.Map.Height {
		y = e.Map.Height - 1
	}
	idx := y*e.Map.Width + x
	theta := math.Pi * (float64(y) + 0.5) / float64(e.Map.Height)
	sinTheta := math.Sin(theta)
	if sinTheta <= 0 {
		return 0
	}
	// PMF over texels -> PDF over solid angle: divide by the texel's own
	// solid angle (its weight already embeds it, so pmf/solidAngle cancels
	// the per-texel area and leaves the density per steradian).
	dphi := 2 * math.Pi / float64(e.Map.Width)
	dtheta := math.Pi / float64(e.Map.Height)
	texelSolidAngle := dphi * dtheta * sinTheta
	return e.alias.PMF(idx) / texelSolidAngle
}

func (e *Environment) SampleL(point, normal core.Vec3, u core.Vec2) Sample {
	idx, _ := e.alias.Sample(u.X, u.Y)
	x := idx % e.Map.Width
	y := idx / e.Map.Width

	su := (float64(x) + 0.5) / float64(e.Map.Width)
	sv := (float64(y) + 0.5) / float64(e.Map.Height)
	direction := uvToDir(su, sv)

	pdf := e.directionPDF(direction)
	if pdf == 0 {
		return Sample{PDF: 0}
	}

	return Sample{
		Point:     point.Add(direction.Multiply(2 * e.worldRadius)),
		Normal:    direction.Negate(),
		Direction: direction,
		Distance:  math.Inf(1),
		Emission:  e.Map.Lookup(su, sv),
		PDF:       pdf,
	}
}

func (e *Environment) PDF(point, normal, direction core.Vec3) float64 {
	return e.directionPDF(direction)
}

func (e *Environment) SampleEmission(uPoint, uDirection core.Vec2) EmissionSample {
	sample := e.SampleL(core.Vec3{}, core.Vec3{}, uPoint)
	return EmissionSample{
		Point:        e.worldCenter.Subtract(sample.Direction.Multiply(e.worldRadius)),
		Normal:       sample.Direction,
		Direction:    sample.Direction,
		Emission:     sample.Emission,
		AreaPDF:      1.0 / (math.Pi * e.worldRadius * e.worldRadius),
		DirectionPDF: sample.PDF,
	}
}

func (e *Environment) EmissionPDF(point, direction core.Vec3) float64 {
	if e.worldRadius <= 0 {
		return 0
	}
	return 1.0 / (math.Pi * e.worldRadius * e.worldRadius)
}

// Emit evaluates the map along a ray that escaped the scene.
func (e *Environment) Emit(ray core.Ray) core.Spectrum {
	u, v := dirToUV(ray.Direction)
	return e.Map.Lookup(u, v)
}

func (e *Environment) IsInfinite() bool { return true }

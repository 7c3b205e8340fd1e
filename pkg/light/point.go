package light

import "github.com/lumenray/tracer/pkg/core"

// Point is a zero-size, delta-distribution light at a fixed world position,
// grounded on the teacher's pkg/geometry/point_spot_light.go with the cone
// falloff dropped (spec.md §4.5 names only an omnidirectional point light).
type Point struct {
	Position core.Vec3
	Emission core.Spectrum
}

func NewPoint(position core.Vec3, emission core.Spectrum) *Point {
	return &Point{Position: position, Emission: emission}
}

func (p *Point) SampleL(point, normal core.Vec3, u core.Vec2) Sample {
	toLight := p.Position.Subtract(point)
	distance := toLight.Length()
	if distance == 0 {
		return Sample{Point: p.Position, PDF: 0}
	}
	direction := toLight.Multiply(1.0 / distance)
	emission := p.Emission.Multiply(1.0 / (distance * distance))

	return Sample{
		Point:     p.Position,
		Normal:    direction.Negate(),
		Direction: direction,
		Distance:  distance,
		Emission:  emission,
		PDF:       1.0,
	}
}

// PDF is zero off the single sampled direction: a delta light can never be
// reached by any other sampling strategy, so callers must not MIS-weight it.
func (p *Point) PDF(point, normal, direction core.Vec3) float64 { return 0 }

func (p *Point) SampleEmission(uPoint, uDirection core.Vec2) EmissionSample {
	direction := core.UniformSampleSphere(uDirection)
	return EmissionSample{
		Point:        p.Position,
		Normal:       direction,
		Direction:    direction,
		Emission:     p.Emission,
		AreaPDF:      1.0,
		DirectionPDF: 1.0 / (4.0 * 3.141592653589793),
	}
}

func (p *Point) EmissionPDF(point, direction core.Vec3) float64 { return 1.0 }

func (p *Point) Emit(ray core.Ray) core.Spectrum { return core.BlackSpectrum }

func (p *Point) IsInfinite() bool { return false }

// Directional is a delta-distribution light with parallel rays from a fixed
// world direction (e.g. sunlight), per spec.md §4.5.
type Directional struct {
	Direction core.Vec3 // direction the light travels (point -> -Direction is toward the light)
	Emission  core.Spectrum
}

func NewDirectional(direction core.Vec3, emission core.Spectrum) *Directional {
	return &Directional{Direction: direction.Normalize(), Emission: emission}
}

func (d *Directional) SampleL(point, normal core.Vec3, u core.Vec2) Sample {
	toLight := d.Direction.Negate()
	return Sample{
		Point:     point.Add(toLight.Multiply(1e6)),
		Normal:    d.Direction,
		Direction: toLight,
		Distance:  1e6,
		Emission:  d.Emission,
		PDF:       1.0,
	}
}

func (d *Directional) PDF(point, normal, direction core.Vec3) float64 { return 0 }

func (d *Directional) SampleEmission(uPoint, uDirection core.Vec2) EmissionSample {
	return EmissionSample{
		Point:        core.Vec3{},
		Normal:       d.Direction,
		Direction:    d.Direction,
		Emission:     d.Emission,
		AreaPDF:      1.0,
		DirectionPDF: 1.0,
	}
}

func (d *Directional) EmissionPDF(point, direction core.Vec3) float64 { return 1.0 }

func (d *Directional) Emit(ray core.Ray) core.Spectrum { return core.BlackSpectrum }

func (d *Directional) IsInfinite() bool { return true }

package scene

import (
	"math"

	"github.com/lumenray/tracer/pkg/bsdf"
	"github.com/lumenray/tracer/pkg/camera"
	"github.com/lumenray/tracer/pkg/core"
	"github.com/lumenray/tracer/pkg/primitive"
)

// oklchToRGB converts OKLCH color values to RGB, grounded on the teacher's
// same-named helper (an approximate, not colorimetrically exact, OKLAB
// inversion).
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	r = math.Max(0, math.Min(1, r))
	g = math.Max(0, math.Min(1, g))
	blue = math.Max(0, math.Min(1, blue))

	return core.NewVec3(r, g, blue)
}

// NewSphereGridScene creates a scene with a grid of metallic spheres in
// varied hues, adapted from the teacher's same-named builder onto a
// finite ground quad (this module has no infinite-plane primitive) and a
// roughness-free Mirror BSDF (no per-sphere roughness parameter).
func NewSphereGridScene(overrides ...camera.Config) *Scene {
	cfg := camera.Config{
		Center:      core.NewVec3(4.5, 6, 18),
		LookAt:      core.NewVec3(4.5, 0.8, 4.5),
		Up:          core.NewVec3(0, 1, 0),
		Width:       800,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
		Aperture:    0.02,
	}
	if len(overrides) > 0 {
		cfg = overrides[0]
	}

	s := &Scene{
		Camera: camera.New(cfg),
		Config: core.SamplingConfig{
			Width:                     cfg.Width,
			Height:                    int(float64(cfg.Width) / cfg.AspectRatio),
			SamplesPerPixel:           100,
			NsAreaLight:               4,
			MaxDepth:                  40,
			RussianRouletteMinBounces: 12,
		},
	}

	s.AddSphereLight(core.NewVec3(20, 25, 20), 8, core.NewVec3(12.0, 11.5, 10.0))

	groundQuad := NewGroundQuad(core.NewVec3(4.5, 0, 4.5), 10000.0, bsdf.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)))
	s.Shapes = append(s.Shapes, groundQuad)

	const gridSize = 20
	const targetArea = 9.0
	spacing := targetArea / float64(gridSize-1)

	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))
	const baseLightness = 0.65
	const minChroma, maxChroma = 0.05, 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5
			position := core.NewVec3(x, sphereRadius, z)

			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			sphere := primitive.NewSphere(position, sphereRadius, bsdf.NewMirror(color))
			s.Shapes = append(s.Shapes, sphere)
		}
	}

	s.AddEnvironmentLight(skyGradientMap(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1.0, 1.0, 1.0)))

	return s
}

package scene

import (
	"github.com/lumenray/tracer/pkg/bsdf"
	"github.com/lumenray/tracer/pkg/camera"
	"github.com/lumenray/tracer/pkg/core"
	"github.com/lumenray/tracer/pkg/light"
	"github.com/lumenray/tracer/pkg/primitive"
)

// NewDefaultScene creates a default scene with spheres, ground, and camera,
// adapted from the teacher's same-named builder onto this module's BSDF
// set (diffuse/mirror/refraction/glass/emissive has no layered-material
// equivalent to the teacher's glass-over-lambertian coat, and this
// module's Sphere does not support the teacher's negative-radius
// hollow-shell trick, so both are replaced with a plain glass sphere).
func NewDefaultScene(overrides ...camera.Config) *Scene {
	cfg := camera.Config{
		Center:        core.NewVec3(0, 0.75, 2),
		LookAt:        core.NewVec3(0, 0.5, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0,
		Aperture:      0.05,
		FocusDistance: 0.0,
	}
	if len(overrides) > 0 {
		cfg = overrides[0]
	}

	s := &Scene{
		Camera: camera.New(cfg),
		Config: core.SamplingConfig{
			Width:                     cfg.Width,
			Height:                    int(float64(cfg.Width) / cfg.AspectRatio),
			SamplesPerPixel:           200,
			NsAreaLight:               4,
			MaxDepth:                  50,
			RussianRouletteMinBounces: 20,
		},
	}

	green := bsdf.NewDiffuse(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	red := bsdf.NewDiffuse(core.NewVec3(0.65, 0.25, 0.2))
	silver := bsdf.NewMirror(core.NewVec3(0.8, 0.8, 0.8))
	gold := bsdf.NewMirror(core.NewVec3(0.8, 0.6, 0.2))
	glass := bsdf.NewGlass(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), 1.5)

	sphereCenter := primitive.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, red)
	sphereLeft := primitive.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, silver)
	sphereRight := primitive.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, gold)
	solidGlassSphere := primitive.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, glass)
	smallGlassSphere := primitive.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25, glass)

	groundQuad := NewGroundQuad(core.NewVec3(0, 0, 0), 10000.0, green)

	s.AddSphereLight(core.NewVec3(30, 30.5, 15), 10, core.NewVec3(15.0, 14.0, 13.0))
	s.Shapes = append(s.Shapes, sphereCenter, sphereLeft, sphereRight, groundQuad,
		solidGlassSphere, smallGlassSphere)

	s.AddEnvironmentLight(skyGradientMap(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1.0, 1.0, 1.0)))

	return s
}

// AddSphereLight adds a spherical area light to the scene, mirroring the
// teacher's Scene.AddSphereLight.
func (s *Scene) AddSphereLight(center core.Vec3, radius float64, emission core.Spectrum) {
	sphere := primitive.NewSphere(center, radius, bsdf.NewEmissive(emission))
	s.Shapes = append(s.Shapes, sphere)
	s.Lights = append(s.Lights, light.NewAreaSphere(sphere, emission))
}

// skyGradientMap builds a coarse vertical-gradient environment map,
// replacing the teacher's two-color, non-importance-sampled
// GradientInfiniteLight with a small EnvMap the Environment light's
// existing alias-table machinery can importance sample directly.
func skyGradientMap(top, bottom core.Spectrum) *light.EnvMap {
	const rows = 16
	pixels := make([]core.Spectrum, rows)
	for y := 0; y < rows; y++ {
		t := float64(y) / float64(rows-1)
		pixels[y] = top.Multiply(1 - t).Add(bottom.Multiply(t))
	}
	wide := make([]core.Spectrum, rows*4)
	for y := 0; y < rows; y++ {
		for x := 0; x < 4; x++ {
			wide[y*4+x] = pixels[y]
		}
	}
	return &light.EnvMap{Width: 4, Height: rows, Pixels: wide}
}

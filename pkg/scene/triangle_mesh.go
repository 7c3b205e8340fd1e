package scene

import (
	"math"

	"github.com/lumenray/tracer/pkg/bsdf"
	"github.com/lumenray/tracer/pkg/camera"
	"github.com/lumenray/tracer/pkg/core"
	"github.com/lumenray/tracer/pkg/primitive"
)

// NewTriangleMeshScene creates a scene showcasing triangle mesh geometry: a
// UV-sphere built from triangles next to a regular Sphere primitive of the
// same radius, for visual/performance comparison, adapted from the
// teacher's same-named builder.
func NewTriangleMeshScene(complexity int, overrides ...camera.Config) *Scene {
	cfg := camera.Config{
		Center:      core.NewVec3(0, 2, 6),
		LookAt:      core.NewVec3(0, 1, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       600,
		AspectRatio: 16.0 / 9.0,
		VFov:        45.0,
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
			SamplesPerPixel:           150,
			NsAreaLight:               4,
			MaxDepth:                  40,
			RussianRouletteMinBounces: 10,
		},
	}

	s.AddSphereLight(core.NewVec3(0, 6, 0), 1.5, core.NewVec3(15.0, 15.0, 15.0))
	s.AddSphereLight(core.NewVec3(-4, 4, 3), 0.8, core.NewVec3(8.0, 8.0, 8.0))
	s.AddSphereLight(core.NewVec3(4, 4, 3), 0.8, core.NewVec3(8.0, 8.0, 8.0))
	s.AddEnvironmentLight(skyGradientMap(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1.0, 1.0, 1.0)))

	groundQuad := NewGroundQuad(core.NewVec3(0, 0, 0), 10000.0, bsdf.NewDiffuse(core.NewVec3(0.7, 0.7, 0.7)))
	s.Shapes = append(s.Shapes, groundQuad)

	goldMetal := bsdf.NewMirror(core.NewVec3(0.8, 0.6, 0.2))

	latitudeSubdivisions := (complexity * 3) / 4
	if latitudeSubdivisions < 3 {
		latitudeSubdivisions = 3
	}
	meshTriangles := newSphereMesh(core.NewVec3(-1.5, 1, 0), 1.0, complexity, latitudeSubdivisions, goldMetal)
	s.Shapes = append(s.Shapes, meshTriangles...)

	regularSphere := primitive.NewSphere(core.NewVec3(1.5, 1, 0), 1.0, goldMetal)
	s.Shapes = append(s.Shapes, regularSphere)

	return s
}

// newSphereMesh generates a UV-sphere triangle mesh by spherical-coordinate
// subdivision, grounded on the teacher's createSphereMesh.
func newSphereMesh(center core.Vec3, radius float64, longitudeSubdivisions, latitudeSubdivisions int, surface core.BSDF) []core.Primitive {
	vertices := make([]core.Vec3, 0, (latitudeSubdivisions+1)*(longitudeSubdivisions+1))

	for lat := 0; lat <= latitudeSubdivisions; lat++ {
		theta := float64(lat) * math.Pi / float64(latitudeSubdivisions)
		sinTheta, cosTheta := math.Sin(theta), math.Cos(theta)

		for lon := 0; lon <= longitudeSubdivisions; lon++ {
			phi := float64(lon) * 2.0 * math.Pi / float64(longitudeSubdivisions)
			sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)

			x := radius * sinTheta * cosPhi
			y := radius * cosTheta
			z := radius * sinTheta * sinPhi
			vertices = append(vertices, center.Add(core.NewVec3(x, y, z)))
		}
	}

	faces := make([]int, 0, latitudeSubdivisions*longitudeSubdivisions*6)
	for lat := 0; lat < latitudeSubdivisions; lat++ {
		for lon := 0; lon < longitudeSubdivisions; lon++ {
			current := lat*(longitudeSubdivisions+1) + lon
			next := current + longitudeSubdivisions + 1

			faces = append(faces, current, next, current+1)
			faces = append(faces, current+1, next, next+1)
		}
	}

	return primitive.NewTriangleMesh(vertices, faces, surface, nil)
}

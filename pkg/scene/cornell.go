package scene

import (
	"github.com/lumenray/tracer/pkg/bsdf"
	"github.com/lumenray/tracer/pkg/camera"
	"github.com/lumenray/tracer/pkg/core"
	"github.com/lumenray/tracer/pkg/primitive"
)

// NewCornellScene creates a classic Cornell box scene with quad walls and
// area lighting, used as the S6 sanity scenario: mean pixel luminance of
// the lit floor region should be positive and finite under both
// integrators.
func NewCornellScene() *Scene {
	cam := camera.New(camera.Config{
		Center:      core.NewVec3(278, 278, -800),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 1.0,
		VFov:        40.0,
	})

	s := &Scene{
		Camera: cam,
		Config: core.SamplingConfig{
			Width:                     400,
			Height:                    400,
			SamplesPerPixel:           150,
			NsAreaLight:               16,
			MaxDepth:                  40,
			RussianRouletteMinBounces: 4,
		},
	}

	white := bsdf.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73))
	red := bsdf.NewDiffuse(core.NewVec3(0.65, 0.05, 0.05))
	green := bsdf.NewDiffuse(core.NewVec3(0.12, 0.45, 0.15))

	boxSize := 555.0

	floor := primitive.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white)
	ceiling := primitive.NewQuad(core.NewVec3(0, boxSize, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white)
	backWall := primitive.NewQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), white)
	leftWall := primitive.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0), red)
	rightWall := primitive.NewQuad(core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), green)

	s.Shapes = append(s.Shapes, floor, ceiling, backWall, leftWall, rightWall)

	lightSize := 130.0
	lightOffset := (boxSize - lightSize) / 2.0
	s.AddQuadLight(
		core.NewVec3(lightOffset, boxSize-1, lightOffset),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
		core.NewVec3(15.0, 15.0, 15.0),
	)

	leftSphere := primitive.NewSphere(core.NewVec3(185, 82.5, 169), 82.5, bsdf.NewMirror(core.NewVec3(0.8, 0.8, 0.9)))
	rightSphere := primitive.NewSphere(core.NewVec3(370, 90, 351), 90, bsdf.NewGlass(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), 1.5))

	s.Shapes = append(s.Shapes, leftSphere, rightSphere)

	return s
}

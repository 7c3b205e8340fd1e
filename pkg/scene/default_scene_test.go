package scene

import (
	"testing"

	"github.com/lumenray/tracer/pkg/camera"
	"github.com/lumenray/tracer/pkg/core"
)

func TestNewDefaultScene_BuildsRenderableScene(t *testing.T) {
	s := NewDefaultScene()

	if len(s.Shapes) == 0 {
		t.Fatal("expected a ground quad and at least one sphere")
	}
	if len(s.Lights) == 0 {
		t.Fatal("expected at least the sky environment light")
	}

	rs := s.Build()
	if rs.Camera == nil {
		t.Fatal("expected Build to carry the camera through")
	}
}

func TestNewDefaultScene_Overrides(t *testing.T) {
	override := camera.Config{
		Center: core.NewVec3(0, 1, 5), LookAt: core.NewVec3(0, 0, 0), Up: core.NewVec3(0, 1, 0),
		Width: 200, AspectRatio: 1.0, VFov: 60.0,
	}
	s := NewDefaultScene(override)

	if s.Config.Width != 200 {
		t.Fatalf("expected overridden width 200, got %d", s.Config.Width)
	}
}

func TestAddSphereLight_AddsShapeAndLight(t *testing.T) {
	s := &Scene{}
	s.AddSphereLight(core.NewVec3(0, 5, 0), 1.0, core.NewVec3(10, 10, 10))

	if len(s.Shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(s.Shapes))
	}
	if len(s.Lights) != 1 {
		t.Fatalf("expected 1 light, got %d", len(s.Lights))
	}
}

func TestSkyGradientMap_LooksUpBothEnds(t *testing.T) {
	top := core.NewVec3(0.1, 0.2, 0.9)
	bottom := core.NewVec3(1, 1, 1)
	m := skyGradientMap(top, bottom)

	// v=0 is straight up (d.Y=1 under dirToUV's acos convention), v=1 is
	// straight down.
	upward := m.Lookup(0, 0)
	downward := m.Lookup(0, 1)

	if upward.Subtract(top).Length() > 0.5 {
		t.Errorf("expected upward lookup near top color, got %v", upward)
	}
	if downward.Subtract(bottom).Length() > 0.5 {
		t.Errorf("expected downward lookup near bottom color, got %v", downward)
	}
}

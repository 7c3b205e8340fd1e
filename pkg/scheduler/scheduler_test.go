package scheduler

import (
	"context"
	"testing"

	"github.com/lumenray/tracer/pkg/core"
)

// constColorIntegrator returns a fixed color for every ray, enough to
// exercise the scheduler's wiring without a full scene.
type constColorIntegrator struct {
	color core.Spectrum
}

func (c *constColorIntegrator) TraceRay(ray core.Ray, sampler core.Sampler) core.Spectrum {
	return c.color
}

// stubCamera is a pinhole stand-in implementing core.Camera for scheduler
// tests, which only need GenerateRay to be callable.
type stubCamera struct{}

func (c *stubCamera) GenerateRay(u, v float64, sampler core.Sampler) core.Ray {
	return core.NewRay(core.Vec3{}, core.Vec3{X: 0, Y: 0, Z: -1})
}
func (c *stubCamera) Position() core.Vec3 { return core.Vec3{} }
func (c *stubCamera) Forward() core.Vec3  { return core.Vec3{X: 0, Y: 0, Z: -1} }
func (c *stubCamera) GetScreenPos(worldPoint core.Vec3) (float64, float64, bool) {
	return 0.5, 0.5, true
}
func (c *stubCamera) PDFs(ray core.Ray) (float64, float64) { return 1, 1 }

func testConfig(w, h int) core.SamplingConfig {
	return core.SamplingConfig{Width: w, Height: h, SamplesPerPixel: 4, NsAreaLight: 1, MaxDepth: 5, RussianRouletteMinBounces: 3}
}

func TestScheduler_Start_FillsEveryPixel(t *testing.T) {
	integ := &constColorIntegrator{color: core.Spectrum{X: 0.5, Y: 0.5, Z: 0.5}}
	s := NewScheduler(integ, &stubCamera{}, testConfig(16, 16), 2)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if s.State() != StateDone {
		t.Fatalf("state = %v, want DONE", s.State())
	}

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if s.Buffer.SampleCount(x, y) == 0 {
				t.Fatalf("pixel (%d,%d) received no samples", x, y)
			}
		}
	}
}

func TestScheduler_Start_MissingConfigReturnsError(t *testing.T) {
	s := NewScheduler(nil, nil, core.SamplingConfig{}, 1)
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected an error, not a panic, for an unconfigured scheduler")
	}
}

func TestScheduler_Start_CancelledContext(t *testing.T) {
	integ := &constColorIntegrator{color: core.Spectrum{X: 1, Y: 1, Z: 1}}
	s := NewScheduler(integ, &stubCamera{}, testConfig(64, 64), 4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Start(ctx)
	if err == nil {
		t.Fatal("expected Start to return the cancellation error")
	}
	if s.State() != StateReady {
		t.Fatalf("state after cancellation = %v, want READY so a retry is possible", s.State())
	}
}

func TestScheduler_Reset_AllowsRerender(t *testing.T) {
	integ := &constColorIntegrator{color: core.Spectrum{X: 1, Y: 1, Z: 1}}
	s := NewScheduler(integ, &stubCamera{}, testConfig(8, 8), 1)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("first Start failed: %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if s.State() != StateReady {
		t.Fatalf("state after Reset = %v, want READY", s.State())
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("second Start after Reset failed: %v", err)
	}
}

func TestScheduler_Visualize_DoesNotAdvanceToDone(t *testing.T) {
	integ := &constColorIntegrator{color: core.Spectrum{X: 1, Y: 1, Z: 1}}
	s := NewScheduler(integ, &stubCamera{}, testConfig(8, 8), 1)

	fb, err := s.Visualize(context.Background(), 1)
	if err != nil {
		t.Fatalf("Visualize failed: %v", err)
	}
	if fb == nil || len(fb.Pixels) != 64 {
		t.Fatalf("expected a resolved 8x8 preview frame, got %v", fb)
	}
	if s.State() != StateReady {
		t.Fatalf("state after Visualize = %v, want READY", s.State())
	}
}

// splattingIntegrator stands in for BDPT: it reports black for TraceRay
// but splats a fixed color onto a neighboring pixel via the callback
// threaded in at construction time.
type splattingIntegrator struct {
	splat func(x, y int, color core.Spectrum)
}

func (s *splattingIntegrator) TraceRay(ray core.Ray, sampler core.Sampler) core.Spectrum {
	s.splat(0, 0, core.Spectrum{X: 1, Y: 1, Z: 1})
	return core.Spectrum{}
}

func TestScheduler_Prepare_AllowsSplatIntegratorWiring(t *testing.T) {
	s := NewScheduler(nil, &stubCamera{}, testConfig(8, 8), 1)

	if err := s.Prepare(); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if s.State() != StateReady {
		t.Fatalf("state after Prepare = %v, want READY", s.State())
	}
	if s.Buffer == nil {
		t.Fatal("expected Prepare to allocate Buffer")
	}

	s.Integrator = &splattingIntegrator{splat: s.Buffer.UpdatePixelAdd}

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if s.Buffer.Color(0, 0) == (core.Spectrum{}) {
		t.Error("expected splats routed through Buffer.UpdatePixelAdd to land in pixel (0,0)")
	}
}

func TestScheduler_Prepare_WrongStateErrors(t *testing.T) {
	integ := &constColorIntegrator{color: core.Spectrum{X: 1, Y: 1, Z: 1}}
	s := NewScheduler(integ, &stubCamera{}, testConfig(8, 8), 1)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := s.Prepare(); err == nil {
		t.Fatal("expected Prepare to error outside of INIT state")
	}
}
